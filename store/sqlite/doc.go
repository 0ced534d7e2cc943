// Package sqlite provides a GraphStore backed by a local SQLite database.
package sqlite
