// Package log defines the Logger interface used by policy-graph assembly,
// with a standard-library default and a kataras/golog backend.
package log
