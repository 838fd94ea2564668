// Package redis connects to Redis and stores schema documents in it.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which retries the connection using the supplied configuration.
//   - Storage, a namespaced key-value store used to share schema
//     descriptions between service instances.
//   - Healthcheck, for liveness and readiness probes.
//
// Configuration is described by Config, whose fields can be populated from
// environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		// handle error, probably terminate the application
//	}
//	defer client.Close()
//
//	store := redis.NewStorageWithConfig(client, cfg)
//	if err := store.Put(ctx, "signup", data); err != nil {
//		log.Fatal(err)
//	}
//
//	names, err := store.List(ctx)
//
// # Errors
//
// Sentinel errors such as ErrNotReady and ErrKeyNotFound wrap go-redis
// errors using errors.Join, so they can be matched with errors.Is.
package redis
