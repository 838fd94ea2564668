// Package cache provides a generic, thread-safe LRU cache.
//
// The validation engine keeps compiled schema plans here, keyed by schema
// instance, so a schema declared once at startup is compiled on first use and
// reused by every later call:
//
//	plans := cache.NewLRUCache[*schema.Schema, *schema.Compiled](256)
//	plan, err := plans.Load(s, func() (*schema.Compiled, error) {
//	    return schema.Compile(s)
//	})
//
// Get, Put and Remove are O(1). OnEvict registers a callback for entries
// dropped by capacity pressure, Remove or Clear.
package cache
