// Package store persists the reading position as string key/value pairs.
// Backends range from an in-memory map to badger and SQLite databases.
package store
