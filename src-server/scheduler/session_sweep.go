package scheduler

import (
	"log/slog"

	"eventdesk/src-server/utils"
)

// SessionSweep drops expired list and detail views.
func SessionSweep(as *utils.AppState) {
	lists := as.ListViews.Sweep()
	details := as.DetailViews.Sweep()
	if len(lists)+len(details) > 0 {
		slog.Info("expired views removed", "list", len(lists), "detail", len(details))
	}
}
