package http

import (
	"database/sql"
	"net/http"
)

type HealthResponse struct {
	Status      string `json:"status"`
	DBConnected bool   `json:"dbConnected"`
}

// HealthCheck reports liveness and database connectivity.
func HealthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbConnected := db.PingContext(r.Context()) == nil

		status := "healthy"
		code := http.StatusOK
		if !dbConnected {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, HealthResponse{Status: status, DBConnected: dbConnected})
	}
}
