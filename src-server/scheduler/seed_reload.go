package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"eventdesk/src-server/utils"
)

// SeedReload re-applies the seed file whenever its content changes.
type SeedReload struct {
	as *utils.AppState

	mu       sync.Mutex
	lastHash string
}

// NewSeedReload remembers the current seed file hash, which was applied at
// startup.
func NewSeedReload(as *utils.AppState) *SeedReload {
	r := &SeedReload{as: as}
	hash, err := utils.GetFileHash(as.Config.GetSeedFile())
	if err != nil {
		slog.Warn("can't hash seed file", "error", err)
	}
	r.lastHash = hash
	return r
}

func (r *SeedReload) Run() {
	r.mu.Lock()
	defer r.mu.Unlock()

	hash, err := utils.GetFileHash(r.as.Config.GetSeedFile())
	if err != nil {
		slog.Warn("can't hash seed file", "error", err)
		return
	}
	if hash == r.lastHash {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := r.as.ApplySeed(ctx); err != nil {
		slog.Error("can't reload seed file", "error", err)
		return
	}
	r.lastHash = hash
}
