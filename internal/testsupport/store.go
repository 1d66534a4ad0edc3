package testsupport

import (
	"testing"

	"vidsub/internal/config"
	"vidsub/internal/history"
)

// MustOpenHistory opens cfg's run history and closes it when the test ends.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		t.Fatalf("open history %s: %v", cfg.History.Path, err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}
