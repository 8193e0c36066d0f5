// Package store defines the persistence interfaces used by the review engine
// and the composite keys they are addressed by. Implementations live under
// internal/platform; an in-memory implementation is provided here for tests
// and local development.
package store
