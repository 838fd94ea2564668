package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/dmitrymomot/schemakit/pkg/logger"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// LoadFS registers every *.json, *.yaml and *.yml file in dir of fsys under
// its file stem. Files that fail to parse or compile are skipped and their
// errors joined into the returned error; the rest are still registered.
// It returns the number of schemas registered.
func (r *Registry) LoadFS(ctx context.Context, fsys fs.FS, dir string) (int, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		r.reloaded(r.Len(), err)
		return 0, fmt.Errorf("read schema dir: %w", err)
	}

	var (
		loaded int
		errs   []error
	)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return loaded, err
		}
		if e.IsDir() {
			continue
		}
		name, format, ok := schemaFile(e.Name())
		if !ok {
			continue
		}

		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
			continue
		}
		if err := r.registerRaw(name, data, format); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
			continue
		}
		loaded++
	}

	err = errors.Join(errs...)
	r.logger.InfoContext(ctx, "schemas loaded",
		logger.Component("registry"),
		"dir", dir,
		"loaded", loaded,
		logger.Errors(errs...))
	r.reloaded(r.Len(), err)
	return loaded, err
}

// Sync registers every schema held by store.
// Like LoadFS it keeps going past broken entries.
func (r *Registry) Sync(ctx context.Context, store Store) (int, error) {
	if store == nil {
		return 0, ErrNoStore
	}
	names, err := store.List(ctx)
	if err != nil {
		r.reloaded(r.Len(), err)
		return 0, fmt.Errorf("list stored schemas: %w", err)
	}

	var (
		loaded int
		errs   []error
	)
	for _, name := range names {
		data, err := store.Get(ctx, name)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return loaded, ctxErr
			}
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		if err := r.registerRaw(name, data, schema.FormatJSON); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		loaded++
	}

	err = errors.Join(errs...)
	r.logger.InfoContext(ctx, "schemas synced",
		logger.Component("registry"),
		"loaded", loaded,
		logger.Errors(errs...))
	r.reloaded(r.Len(), err)
	return loaded, err
}

func (r *Registry) registerRaw(name string, data []byte, format schema.Format) error {
	s, err := schema.Parse(data, format)
	if err != nil {
		return err
	}
	return r.Register(name, s)
}

// schemaFile splits a file name into a schema name and its format.
func schemaFile(filename string) (string, schema.Format, bool) {
	if strings.HasPrefix(filename, ".") {
		return "", "", false
	}
	format, ok := schema.FormatFromPath(filename)
	if !ok {
		return "", "", false
	}
	name := strings.TrimSuffix(filename, path.Ext(filename))
	return name, format, ValidName(name)
}
