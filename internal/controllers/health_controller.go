package controllers

import (
	"elevate/internal/query"
	"elevate/internal/storage"
	"elevate/internal/structures"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

// NotifierStats exposes the change notifier counters reported by /health.
type NotifierStats interface {
	Origin() string
	Published() uint64
	Received() uint64
}

type HealthController struct {
	conf      *structures.Config
	backend   storage.Backend
	queries   *query.Client
	notifier  NotifierStats
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Backend       string  `json:"backend"`
	Collections   int     `json:"collections"`
	CachedQueries int     `json:"cached_queries"`
	Origin        string  `json:"origin"`
	Published     uint64  `json:"published"`
	Received      uint64  `json:"received"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	status := http.StatusOK
	resp := healthResponse{Status: "ok", Backend: hc.conf.Storage.Backend}

	keys, err := hc.backend.Keys()
	if err != nil {
		status = http.StatusServiceUnavailable
		resp.Status = "degraded"
	}
	resp.Collections = len(keys)

	uptime := time.Since(hc.startTime)
	resp.Uptime = formatDuration(uptime)
	resp.UptimeSeconds = uptime.Seconds()
	resp.CachedQueries = len(hc.queries.Cached())
	resp.Origin = hc.notifier.Origin()
	resp.Published = hc.notifier.Published()
	resp.Received = hc.notifier.Received()

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(conf *structures.Config, backend storage.Backend, queries *query.Client, notifier NotifierStats) *HealthController {
	return &HealthController{
		conf:      conf,
		backend:   backend,
		queries:   queries,
		notifier:  notifier,
		startTime: time.Now(),
	}
}
