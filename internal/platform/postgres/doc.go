// Package postgres provides PostgreSQL-backed implementations of the
// persistence interfaces defined in internal/store. All implementations
// accept a store.DBTX so they can run against either a connection pool or
// an open transaction.
package postgres
