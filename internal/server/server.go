package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

const shutdownGrace = 5 * time.Second

// Listen serves the sign-in callback on addr until ctx is cancelled, then
// shuts the listener down gracefully. Alongside the redirect endpoint a
// /health route answers liveness probes while the flow is pending.
func Listen(ctx context.Context, addr string, logger *log.Logger, flow *Flow) error {
	mux := http.NewServeMux()
	mux.Handle("GET /callback", flow)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"ok"}`)
	})

	srv := &http.Server{Addr: addr, Handler: logRequests(logger, mux)}

	failed := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			failed <- err
		}
	}()

	select {
	case err := <-failed:
		return fmt.Errorf("callback server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// logRequests records each request at debug level.
func logRequests(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("handled request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}
