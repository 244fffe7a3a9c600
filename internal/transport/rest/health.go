package rest

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Check is a dependency pinged by /ready and /health.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type HealthHandler struct {
	checks  []Check
	version string
	timeout time.Duration
}

func NewHealthHandler(version string, checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks, version: version, timeout: 3 * time.Second}
}

type HealthResponse struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]ComponentStatus `json:"components,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
}

type ComponentStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live answers 200 as long as the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusUp, Timestamp: time.Now().UTC()})
}

// Ready reports 503 while any dependency is down, without details.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	_, up := h.checkAll(r.Context())
	writeJSON(w, httpStatus(up), HealthResponse{Status: statusWord(up), Timestamp: time.Now().UTC()})
}

// Health is Ready plus the version and a per-dependency breakdown.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components, up := h.checkAll(r.Context())
	writeJSON(w, httpStatus(up), HealthResponse{
		Status:     statusWord(up),
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now().UTC(),
	})
}

const (
	statusUp   = "ok"
	statusDown = "down"
)

func statusWord(up bool) string {
	if up {
		return statusUp
	}
	return statusDown
}

func httpStatus(up bool) int {
	if up {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

// checkAll pings every check concurrently under one shared timeout.
func (h *HealthHandler) checkAll(ctx context.Context) (map[string]ComponentStatus, bool) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var (
		mu  sync.Mutex
		g   errgroup.Group
		out = make(map[string]ComponentStatus, len(h.checks))
		up  = true
	)
	for _, c := range h.checks {
		g.Go(func() error {
			start := time.Now()
			err := c.Ping(ctx)

			st := ComponentStatus{Status: statusUp, Latency: time.Since(start).Round(time.Microsecond).String()}
			if err != nil {
				st = ComponentStatus{Status: statusDown, Error: err.Error()}
			}

			mu.Lock()
			defer mu.Unlock()
			out[c.Name] = st
			up = up && err == nil
			return nil
		})
	}
	_ = g.Wait()
	return out, up
}
