// Package health serves liveness and readiness endpoints for a running node.
//
// The block runner publishes every commit to the Checker; the HTTP handlers
// only read that snapshot, so they never touch the multistore.
//
//   - /health          liveness
//   - /health/ready    ready once a block is committed and no block failed
//   - /health/detailed last commit, block failure and staleness
package health

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/gorilla/mux"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// ComponentHealth represents the health status of a single component
type ComponentHealth struct {
	Status  Status         `json:"status"`
	Message string         `json:"message,omitempty"`
	Metrics map[string]any `json:"metrics,omitempty"`
}

// HealthCheck represents the overall health check response
type HealthCheck struct {
	Status     Status                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// Config holds configuration for the health checker
type Config struct {
	// MaxCommitAge marks the node degraded when no block was committed for
	// longer. Zero disables the check.
	MaxCommitAge time.Duration
}

// DefaultConfig returns the default health check configuration
func DefaultConfig() Config {
	return Config{MaxCommitAge: time.Minute}
}

// Checker tracks the last committed block and the last block failure.
type Checker struct {
	logger log.Logger
	cfg    Config
	now    func() time.Time

	mu         sync.RWMutex
	height     int64
	appHash    []byte
	committed  time.Time
	blockError error
}

// NewChecker creates a new health checker
func NewChecker(logger log.Logger, cfg Config) *Checker {
	return &Checker{logger: logger, cfg: cfg, now: time.Now}
}

// RecordCommit records a committed block.
func (c *Checker) RecordCommit(height int64, appHash []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.height = height
	c.appHash = append([]byte(nil), appHash...)
	c.committed = c.now()
}

// RecordBlockError records a block that could not be applied. A nil error
// clears it.
func (c *Checker) RecordBlockError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blockError = err
}

// Check builds the health report from the recorded state.
func (c *Checker) Check() *HealthCheck {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	components := map[string]ComponentHealth{
		"state":  c.checkState(now),
		"blocks": c.checkBlocks(),
	}
	return &HealthCheck{
		Status:     calculateOverallStatus(components),
		Timestamp:  now,
		Components: components,
	}
}

func (c *Checker) checkState(now time.Time) ComponentHealth {
	if c.height == 0 {
		return ComponentHealth{Status: StatusUnhealthy, Message: "no block committed"}
	}

	metrics := map[string]any{
		"height":   c.height,
		"app_hash": hex.EncodeToString(c.appHash),
	}
	age := now.Sub(c.committed)
	if c.cfg.MaxCommitAge > 0 && age > c.cfg.MaxCommitAge {
		return ComponentHealth{Status: StatusDegraded, Message: "last commit is stale", Metrics: metrics}
	}
	return ComponentHealth{Status: StatusHealthy, Metrics: metrics}
}

func (c *Checker) checkBlocks() ComponentHealth {
	if c.blockError != nil {
		return ComponentHealth{Status: StatusUnhealthy, Message: c.blockError.Error()}
	}
	return ComponentHealth{Status: StatusHealthy}
}

func calculateOverallStatus(components map[string]ComponentHealth) Status {
	status := StatusHealthy
	for _, component := range components {
		switch component.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			status = StatusDegraded
		}
	}
	return status
}

// RegisterRoutes registers health check endpoints on router
func (c *Checker) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", c.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", c.handleHealthReady).Methods(http.MethodGet)
	router.HandleFunc("/health/detailed", c.handleHealthDetailed).Methods(http.MethodGet)
}

func (c *Checker) handleHealth(w http.ResponseWriter, _ *http.Request) {
	c.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": c.now().Format(time.RFC3339),
	})
}

func (c *Checker) handleHealthReady(w http.ResponseWriter, _ *http.Request) {
	health := c.Check()
	statusCode := http.StatusOK
	if health.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	c.writeJSON(w, statusCode, map[string]any{"status": health.Status})
}

func (c *Checker) handleHealthDetailed(w http.ResponseWriter, _ *http.Request) {
	health := c.Check()
	statusCode := http.StatusOK
	if health.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	c.writeJSON(w, statusCode, health)
}

func (c *Checker) writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		c.logger.Error("failed to write health response", "error", err)
	}
}
