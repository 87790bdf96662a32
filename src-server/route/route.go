package route

import (
	"net/http"

	"eventdesk/src-server/utils"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New returns the HTTP surface of the app.
func New(as *utils.AppState) http.Handler {
	muxer := http.NewServeMux()
	muxer.Handle("GET /metrics", promhttp.Handler())
	Ping(muxer, as)
	Events(muxer, as)
	EventDetail(muxer, as)
	Records(muxer, as)
	RPC(muxer, as)
	return LogMiddleware(muxer)
}
