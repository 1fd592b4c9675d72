// Package userdata manages per-user state kept outside any project: the
// preferences document holding the last-used scope choices, keyed by command
// name. The Store interface lets callers swap the YAML-backed FileStore for an
// in-memory one.
package userdata
