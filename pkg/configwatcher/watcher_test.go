package configwatcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"quiz_backend/internal/config"
)

const baseConfig = `
server:
  mode: %s
database:
  driver: sqlite
jwt:
  secret: watcher-secret
`

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	for _, key := range []string{"SERVER_MODE", "JWT_SECRET", "DATABASE_DRIVER"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte(fmt.Sprintf(baseConfig, "debug")), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	started := make(chan struct{})
	go func() {
		close(started)
		_ = WatchConfig(ctx, file, func(cfg *config.Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()
	<-started
	// 等待 watcher 注册完成
	time.Sleep(200 * time.Millisecond)

	if err := os.WriteFile(file, []byte(fmt.Sprintf(baseConfig, "release-candidate")), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Server.Mode != "release-candidate" {
			t.Fatalf("expected reloaded mode, got %q", cfg.Server.Mode)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("config was not reloaded")
	}
}
