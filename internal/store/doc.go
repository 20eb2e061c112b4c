// Package store defines the persistence interfaces consumed by the service
// layer, along with shared error types, the DBTX abstraction, and
// transaction helpers. Concrete implementations live in
// internal/platform/postgres.
package store
