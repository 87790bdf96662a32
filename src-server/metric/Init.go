package metric

import (
	"log/slog"
	"time"

	"eventdesk/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
)

func register(name string, c prometheus.Collector) bool {
	if err := prometheus.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register "+name+" metric", "error", err)
			return false
		}
	}
	slog.Debug(name + " metric registered")
	return true
}

func unregister(name string, c prometheus.Collector) {
	switch prometheus.Unregister(c) {
	case true:
		slog.Debug(name + " metric unregistered")
	case false:
		slog.Warn(name + " metric not registered")
	}
}

func viewFetch(as *utils.AppState) {
	const latencyName = "eventdesk_view_fetch_microsec"
	const failureName = "eventdesk_view_fetch_failures_total"
	fetchLatency := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: latencyName,
		Help: "The latency of the last backend call of a view in microseconds",
	}, []string{"action"})
	fetchFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: failureName,
		Help: "The number of failed backend calls of the views",
	}, []string{"action"})
	register(latencyName, fetchLatency)
	register(failureName, fetchFailures)

	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(latencyName, fetchLatency)
				unregister(failureName, fetchFailures)
				return
			case sample := <-as.MetricChans.FetchLatency:
				fetchLatency.WithLabelValues(sample.Action).Set(float64(sample.Latency.Microseconds()))
				if sample.Failed {
					fetchFailures.WithLabelValues(sample.Action).Inc()
				}
			}
		}
	}()
}

func openViews(as *utils.AppState, tickerInterval time.Duration) {
	const name = "eventdesk_open_views"
	views := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: name,
		Help: "The number of view sessions held in memory",
	}, []string{"view"})
	register(name, views)

	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(name, views)
				return
			case <-ticker.C:
				views.WithLabelValues("list").Set(float64(as.ListViews.Len()))
				views.WithLabelValues("detail").Set(float64(as.DetailViews.Len()))
			}
		}
	}()
}

func databaseEmptyRead(as *utils.AppState, tickerInterval time.Duration) {
	const name = "eventdesk_database_empty_read_microsec"
	databaseEmptyRead := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: "The latency of an empty database read in microseconds",
	})
	if register(name, databaseEmptyRead) {
		databaseEmptyRead.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(name, databaseEmptyRead)
				return
			case <-ticker.C:
				latency, err := database(as)
				if err != nil {
					slog.Error("can't get database latency", "error", err)
					continue
				}
				databaseEmptyRead.Set(float64(latency.Microseconds()))
			}
		}
	}()
}

// latencyGauge mirrors the samples of ch and drops back to 0 when no
// sample arrives within clearTickerInterval.
func latencyGauge(as *utils.AppState, name, help string, ch chan float64, clearTickerInterval time.Duration) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	})
	if register(name, gauge) {
		gauge.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(name, gauge)
				return
			case latency := <-ch:
				gauge.Set(latency)
				clearTicker.Reset(clearTickerInterval)
			case <-clearTicker.C:
				gauge.Set(0)
			}
		}
	}()
}

func discordHeartbeatLatency(as *utils.AppState, tickerInterval time.Duration) {
	const name = "eventdesk_discord_heartbeat_latency_microsec"
	discordHeartbeatLatency := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: "The latency of a discord heartbeat in microseconds",
	})
	if register(name, discordHeartbeatLatency) {
		discordHeartbeatLatency.Set(0)
	}
	go func() {
		ticker := time.NewTicker(tickerInterval)
		defer ticker.Stop()
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		for {
			select {
			case <-*gracefulShutdownCh:
				unregister(name, discordHeartbeatLatency)
				return
			case <-ticker.C:
				latency := as.DgSession.HeartbeatLatency().Microseconds()
				discordHeartbeatLatency.Set(float64(latency))
			}
		}
	}()
}

func Init(as *utils.AppState) {
	tickerInterval := as.Config.GetMetricCollectionInterval()
	clearTickerInterval := as.Config.GetMetricCollectionInterval() * 2

	viewFetch(as)
	openViews(as, tickerInterval)
	databaseEmptyRead(as, tickerInterval)
	latencyGauge(as, "eventdesk_database_write_microsec",
		"The latency of a database write in microseconds",
		as.MetricChans.DatabaseWrite, clearTickerInterval)
	latencyGauge(as, "eventdesk_database_read_microsec",
		"The latency of a database read in microseconds",
		as.MetricChans.DatabaseRead, clearTickerInterval)
	if as.DgSession != nil {
		latencyGauge(as, "eventdesk_discord_send_message_microsec",
			"The latency of a discord message send in microseconds",
			as.MetricChans.DiscordSendMessage, clearTickerInterval)
		discordHeartbeatLatency(as, tickerInterval)
	}
}
