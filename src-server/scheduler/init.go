package scheduler

import (
	"log/slog"
	"time"

	"eventdesk/src-server/utils"

	"github.com/robfig/cron/v3"
)

// Init starts the background jobs and stops them on graceful shutdown.
func Init(as *utils.AppState) *cron.Cron {
	c := cron.New()

	sweepEvery := as.Config.GetSessionTTL() / 2
	if sweepEvery < time.Minute {
		sweepEvery = time.Minute
	}
	if _, err := c.AddFunc("@every "+sweepEvery.String(), func() { SessionSweep(as) }); err != nil {
		slog.Error("can't schedule session sweep", "error", err)
	}

	if as.Config.GetSeedFile() != "" {
		reload := NewSeedReload(as)
		if _, err := c.AddFunc("@every 30s", reload.Run); err != nil {
			slog.Error("can't schedule seed reload", "error", err)
		}
	}

	c.Start()
	go func() {
		<-*as.CreateGracefulShutdownChan()
		<-c.Stop().Done()
		slog.Debug("scheduler stopped")
	}()
	return c
}
