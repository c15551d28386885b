package storage

import (
	"context"
	"testing"
)

type storageFactory struct {
	name string
	new  func(t *testing.T) (Storage, func())
}

func factories() []storageFactory {
	return []storageFactory{
		{
			name: "memory",
			new: func(t *testing.T) (Storage, func()) {
				s := NewMemoryStorage()
				return s, func() { _ = s.Close() }
			},
		},
		{
			name: "file",
			new: func(t *testing.T) (Storage, func()) {
				t.Helper()
				s, err := NewFileStorage(t.TempDir())
				if err != nil {
					t.Fatalf("NewFileStorage() error = %v", err)
				}
				return s, func() { _ = s.Close() }
			},
		},
		{
			name: "redis",
			new: func(t *testing.T) (Storage, func()) {
				t.Helper()
				return newRedisStorageForTest(t)
			},
		},
	}
}

func TestStorageContract(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			store, cleanup := f.new(t)
			defer cleanup()

			contractMissingKey(t, store)
			contractSetGetOverwrite(t, store)
			contractDelete(t, store)
			contractKeysByPrefix(t, store)
		})
	}
}

func contractMissingKey(t *testing.T, s Storage) {
	t.Helper()
	v, err := s.Get(context.Background(), "contract:missing")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if v != nil {
		t.Fatalf("Get() of missing key = %q, want nil", v)
	}
}

func contractSetGetOverwrite(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()
	if err := s.Set(ctx, "contract:value", []byte(`{"evs":[],"till":0}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set(ctx, "contract:value", []byte(`{"evs":[],"till":5}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	v, err := s.Get(ctx, "contract:value")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(v) != `{"evs":[],"till":5}` {
		t.Errorf("Get() = %q, want the overwritten value", v)
	}
}

func contractDelete(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()
	if err := s.Set(ctx, "contract:gone", []byte("x")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Delete(ctx, "contract:gone"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "contract:gone"); err != nil {
		t.Fatalf("Delete() of missing key error = %v", err)
	}
	v, _ := s.Get(ctx, "contract:gone")
	if v != nil {
		t.Errorf("Get() after Delete = %q, want nil", v)
	}
}

func contractKeysByPrefix(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()
	for _, k := range []string{"lib:b", "lib:a", "other:c", "lib*:literal"} {
		if err := s.Set(ctx, k, []byte("1")); err != nil {
			t.Fatalf("Set(%q) error = %v", k, err)
		}
	}

	keys, err := s.Keys(ctx, "lib:")
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	want := []string{"lib:a", "lib:b"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	keys, err = s.Keys(ctx, "lib*")
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != 1 || keys[0] != "lib*:literal" {
		t.Errorf("Keys(\"lib*\") = %v, want [lib*:literal]", keys)
	}
}
