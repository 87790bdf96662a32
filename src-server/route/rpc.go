package route

import (
	"net/http"
	"time"

	"eventdesk/src-server/rpc"
	"eventdesk/src-server/utils"
)

// RPC serves the local event store to remote views.
func RPC(muxer *http.ServeMux, as *utils.AppState) {
	handler := rpc.Handler(as.Store)
	muxer.HandleFunc("POST /rpc/{method}", func(w http.ResponseWriter, r *http.Request) {
		startTimer := time.Now()
		handler(w, r)
		as.MetricChans.Observe(as.MetricChans.DatabaseRead, time.Since(startTimer))
	})
}
