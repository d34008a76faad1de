// Package store groups the persistence.Store implementations: memory, bolt
// (bbolt file), redis and postgres. Open selects one by driver name.
package store
