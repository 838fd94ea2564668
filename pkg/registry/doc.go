// Package registry keeps named, pre-compiled schemas for a validation
// service.
//
// Schemas come from a directory (LoadFS), from a Store such as Redis or a
// plain folder of JSON files (Sync), or from callers (Register, Save).
// Every schema is compiled when it is registered, so a broken description
// never replaces a working one.
//
//	reg := registry.New(registry.WithValidator(v))
//	if _, err := reg.LoadFS(ctx, os.DirFS(dir), "."); err != nil {
//		// some files were skipped
//	}
//	go reg.Watch(ctx, dir)
//
//	res, err := reg.Validate(ctx, "signup", payload)
package registry
