package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dmitrymomot/schemakit/pkg/redis"
)

// Store persists JSON schema descriptions by name.
// Implementations return ErrNotFound for unknown names.
type Store interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// FSStore keeps one <name>.json file per schema in a directory.
type FSStore struct {
	dir string
}

// NewFSStore returns a store rooted at dir. The directory is created on the
// first Put.
func NewFSStore(dir string) *FSStore {
	return &FSStore{dir: dir}
}

func (s *FSStore) path(name string) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name+".json"), nil
}

// Get reads the description stored under name or returns ErrNotFound.
func (s *FSStore) Get(_ context.Context, name string) ([]byte, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return data, err
}

// Put writes through a temporary file so readers never see a partial schema.
func (s *FSStore) Put(_ context.Context, name string, data []byte) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes the file of name or returns ErrNotFound.
func (s *FSStore) Delete(_ context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return err
	}
	return nil
}

// List returns the stored names in sorted order. A missing directory is
// an empty store.
func (s *FSStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if name := strings.TrimSuffix(e.Name(), ".json"); ValidName(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// RedisStore keeps schema descriptions in Redis.
type RedisStore struct {
	storage *redis.Storage
}

// NewRedisStore keeps descriptions under the key prefix of storage.
func NewRedisStore(storage *redis.Storage) *RedisStore {
	return &RedisStore{storage: storage}
}

func (s *RedisStore) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := s.storage.Get(ctx, name)
	return data, s.mapErr(name, err)
}

func (s *RedisStore) Put(ctx context.Context, name string, data []byte) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return s.storage.Put(ctx, name, data)
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	return s.mapErr(name, s.storage.Delete(ctx, name))
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	return s.storage.List(ctx)
}

func (s *RedisStore) mapErr(name string, err error) error {
	if errors.Is(err, redis.ErrKeyNotFound) {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return err
}
