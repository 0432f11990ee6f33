package handler

import (
	"net/http"
)

// HealthCheckHandler answers liveness probes with HTTP 200 while a
// search run is in progress.
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
