package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ArenaSlots/internal/api/handlers"
)

const (
	pingTimeout      = 2 * time.Second
	msgDBUnavailable = "база данных недоступна"
	statusOK         = "ok"
)

type Handler struct {
	db     Pinger
	logger Logger
}

func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
	}
}

// Status ответ health-check
type Status struct {
	Status string `json:"status"`
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("GET /health - Database ping failed: %v", err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgDBUnavailable)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Status{Status: statusOK})
}
