package handler

import (
	"context"
	"net/http"

	"github.com/coachpad/coachpad/internal/api/response"
)

// DBPinger is the slice of the connection pool the health check needs.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	db      DBPinger
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db DBPinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

type healthData struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data := healthData{
		Status:   "healthy",
		Version:  h.version,
		Database: "connected",
	}
	if err := h.db.Ping(r.Context()); err != nil {
		data.Status = "degraded"
		data.Database = "unreachable"
	}
	response.JSON(w, http.StatusOK, data)
}
