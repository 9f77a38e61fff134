package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cosmossdk.io/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hydra-chain/hydra/app/health"
)

// newHTTPServer serves the Prometheus metrics and the health endpoints of the
// node on port.
func newHTTPServer(port int, checker *health.Checker) *http.Server {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	checker.RegisterRoutes(router)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// startHTTPServer runs server in a background goroutine. Errors after startup
// (like port in use) are logged but not fatal.
func startHTTPServer(server *http.Server, logger log.Logger) {
	go func() {
		logger.Info("serving metrics and health", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
}

func shutdownHTTPServer(server *http.Server, logger log.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("failed to shut down http server", "error", err)
	}
}
