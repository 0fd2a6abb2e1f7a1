// Package health serves liveness, readiness and version endpoints for the
// long-running watch command.
//
//   - /health: the process is running
//   - /ready: every registered check passes (503 otherwise)
//   - /version: build information
//
// Checks are plain functions registered by name:
//
//	checker := health.New(time.Second)
//	checker.RegisterCheck("config", func(ctx context.Context) error {
//	    return session.lastReloadError()
//	})
//	health.Register(mux, checker, health.VersionInfo{Version: "0.1.0"})
//
// Checks run concurrently, each bounded by the checker's timeout.
package health
