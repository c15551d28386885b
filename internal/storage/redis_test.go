package storage

import (
	"context"
	"testing"

	"github.com/holoplot/go-evdev"

	"github.com/SmitUplenchwar2687/Toca/internal/action"
)

func TestNormalizeRedisConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *RedisConfig
		wantErr bool
	}{
		{"nil", nil, true},
		{"single ok", &RedisConfig{Host: "localhost", Port: 6379}, false},
		{"single missing host", &RedisConfig{Port: 6379}, true},
		{"single bad port", &RedisConfig{Host: "localhost"}, true},
		{"cluster ok", &RedisConfig{Cluster: true, ClusterNodes: []string{"a:1", "b:2"}}, false},
		{"cluster without nodes", &RedisConfig{Cluster: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := normalizeRedisConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("normalizeRedisConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if conf.PoolSize != defaultRedisPoolSize {
				t.Errorf("PoolSize = %d, want %d", conf.PoolSize, defaultRedisPoolSize)
			}
			if conf.MaxRetries != defaultRedisMaxRetries {
				t.Errorf("MaxRetries = %d, want %d", conf.MaxRetries, defaultRedisMaxRetries)
			}
			if conf.DialTimeout != defaultRedisDialTimeout {
				t.Errorf("DialTimeout = %v, want %v", conf.DialTimeout, defaultRedisDialTimeout)
			}
		})
	}
}

func TestEscapeGlob(t *testing.T) {
	if got, want := escapeGlob(`a*b?[c]\`), `a\*b\?\[c\]\\`; got != want {
		t.Errorf("escapeGlob() = %q, want %q", got, want)
	}
}

func TestRedisStorage_Library(t *testing.T) {
	s, cleanup := newRedisStorageForTest(t)
	defer cleanup()

	ctx := context.Background()
	lib := NewLibrary(s, nil)
	a := action.Keyboard{
		Events: []action.KeyEv{{Code: evdev.KEY_H, Press: true, Timestamp: 10}},
		Till:   20,
	}
	if err := lib.SaveKeyboard(ctx, "greeting", a); err != nil {
		t.Fatalf("SaveKeyboard() error = %v", err)
	}
	got, err := lib.LoadKeyboard(ctx, "greeting")
	if err != nil {
		t.Fatalf("LoadKeyboard() error = %v", err)
	}
	if len(got.Events) != 1 || got.Till != 20 {
		t.Errorf("LoadKeyboard() = %+v, want one event and till 20", got)
	}

	entries, err := lib.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "greeting" {
		t.Errorf("List() = %+v", entries)
	}
}
