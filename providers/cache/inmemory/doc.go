// Package inmemory provides a process-local [cache.Store] backed by
// RWMutex-guarded maps. It is the default store and the test fake.
package inmemory
