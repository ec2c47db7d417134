// Package rediscache implements [cache.Store] on Redis hashes using
// go-redis v9.
//
// A page is stored under "<prefix>url:<url>" with fields html and
// fetched_at; a result list under "<prefix>query:<query>" with fields
// results and fetched_at. Keys carry no TTL.
package rediscache
