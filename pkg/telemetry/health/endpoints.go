package health

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"
)

// VersionInfo contains build and version information.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// Register adds the health paths to mux:
//   - /health: 200 while the process is serving
//   - /ready: 200 when every check passes, 503 otherwise
//   - /version: build information
//
// Example /ready response (degraded):
//
//	{
//	    "status": "degraded",
//	    "checks": [
//	        {"name": "database", "ok": true, "elapsed_ns": 210000},
//	        {"name": "sync_path", "ok": false, "error": "configuration error [key=sync_path]: no sync path configured", "elapsed_ns": 9000}
//	    ],
//	    "timestamp": "2026-10-15T10:30:00Z"
//	}
func Register(mux *http.ServeMux, checker *Checker, version, commit, buildTime string) {
	info := VersionInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}

	mux.HandleFunc("/health", getOnly(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]any{"status": "ok", "timestamp": time.Now()})
	}))
	mux.HandleFunc("/ready", getOnly(func(w http.ResponseWriter, r *http.Request) {
		report := checker.Ready(r.Context())
		code := http.StatusOK
		if report.Status != "ready" {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, r, code, report)
	}))
	mux.HandleFunc("/version", getOnly(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, info)
	}))
}

func getOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if r.Method != http.MethodHead {
		_ = json.NewEncoder(w).Encode(body)
	}
}
