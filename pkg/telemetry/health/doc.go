// Package health provides health check endpoints for a long-running mdsync
// process.
//
// # Endpoints
//
//   - /health: the process is serving
//   - /ready: every check passes
//   - /version: version, commit, build time
//
// # Usage
//
//	checker := health.New(5*time.Second,
//	    health.Check{Name: "database", Run: exec.Ping},
//	    health.Check{Name: "sync_path", Run: func(ctx context.Context) error {
//	        _, err := store.SyncPath()
//	        return err
//	    }},
//	)
//
//	mux := http.NewServeMux()
//	health.Register(mux, checker, version, commit, buildTime)
//
// Checks run concurrently, each bounded by the checker's timeout. A check
// that does not return in time is reported with its context error.
package health
