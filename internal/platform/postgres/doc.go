// Package postgres provides PostgreSQL implementations of the store
// interfaces. All implementations work against the store.DBTX abstraction
// so they can run on a plain connection or inside a transaction.
package postgres
