package route

import (
	"net/http"
	"runtime"

	"eventdesk/src-server/utils"
)

func Ping(muxer *http.ServeMux, as *utils.AppState) {
	type PingRespBody struct {
		Status    string `json:"status"`
		Uptime    string `json:"uptime"`
		GoVersion string `json:"goVersion"`
	}

	muxer.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, PingRespBody{
			Status:    "pong",
			Uptime:    as.GetUptime().String(),
			GoVersion: runtime.Version(),
		})
	})
}
