// Package postgres provides a GraphStore backed by PostgreSQL via pgx.
package postgres
