package auth

import "errors"

// Common authentication errors.
var (
	// ErrInvalidToken is returned when a token is malformed, has an invalid
	// signature, or fails validation for any reason other than expiry.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token expired")

	// ErrTokenNotYetValid is returned when a token's NotBefore claim is in the future.
	ErrTokenNotYetValid = errors.New("token not yet valid")

	// ErrWrongTokenType is returned when a token of the wrong type is presented,
	// e.g. something other than an access token on an API call.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrInvalidCredentials is returned when an email/password pair does not
	// match a known, active user.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
