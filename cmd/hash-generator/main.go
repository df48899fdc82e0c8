// Command hash-generator prints the bcrypt hash for each password given on
// the command line. Useful for seeding user rows by hand.
package main

import (
	"fmt"
	"os"

	"github.com/rafaelmacedos/show-me-the-tickets/internal/service/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator <password> [password...]")
		os.Exit(1)
	}

	hasher := auth.NewBcryptVerifier()
	for _, password := range os.Args[1:] {
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error hashing password: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
	}
}
