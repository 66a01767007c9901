package database

import (
	"testing"
	"time"

	"quiz_backend/internal/config"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisOptionsFromFields(t *testing.T) {
	opts, err := RedisOptions(&config.RedisConfig{Host: "cache", Port: 6380, DB: 2, PoolSize: 7})
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Addr != "cache:6380" || opts.DB != 2 || opts.PoolSize != 7 {
		t.Fatalf("unexpected options: addr=%s db=%d pool=%d", opts.Addr, opts.DB, opts.PoolSize)
	}
	if opts.DialTimeout != 5*time.Second {
		t.Fatalf("expected default 5s timeout, got %s", opts.DialTimeout)
	}
}

func TestRedisOptionsURLWins(t *testing.T) {
	opts, err := RedisOptions(&config.RedisConfig{
		Host:           "ignored",
		Port:           1,
		URL:            "redis://:secret@example.com:6390/3",
		TimeoutSeconds: 2,
	})
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Addr != "example.com:6390" || opts.Password != "secret" || opts.DB != 3 {
		t.Fatalf("url not applied: addr=%s db=%d", opts.Addr, opts.DB)
	}
	if opts.ReadTimeout != 2*time.Second {
		t.Fatalf("expected 2s timeout, got %s", opts.ReadTimeout)
	}

	if _, err := RedisOptions(&config.RedisConfig{URL: "http://nope"}); err == nil {
		t.Fatal("expected invalid scheme to fail")
	}
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	url := "redis://" + mr.Addr() + "/0"

	rdb, err := InitRedis(&config.RedisConfig{URL: url})
	if err != nil {
		t.Fatalf("init redis: %v", err)
	}
	rdb.Close()

	mr.Close()
	if _, err := InitRedis(&config.RedisConfig{URL: url, TimeoutSeconds: 1}); err == nil {
		t.Fatal("expected ping failure once the server is gone")
	}
}
