// Package redis provides a GraphStore backed by Redis, with optional TTL
// for stored records.
package redis
