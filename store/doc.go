// Package store defines persistence for policy-graph structures.
//
// A graph is serialized to JSON and saved as a Record through a GraphStore.
// Backends live in the subpackages memory, sqlite, redis and postgres.
package store
