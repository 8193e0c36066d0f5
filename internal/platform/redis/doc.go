// Package redis provides Redis-backed implementations of the store
// interfaces. Review records are stored as TTL'd JSON values under composite
// keys; atomic read-modify-writes use optimistic WATCH transactions retried
// on contention.
package redis
