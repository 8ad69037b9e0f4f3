package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports database reachability and, when configured, Redis.
type HealthHandler struct {
	db    Pinger
	redis *redis.Client
}

func NewHealthHandler(db Pinger, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "healthy", "database": "up", "redis": "disabled"}
	code := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		status["status"] = "unhealthy"
		status["database"] = "down"
		code = http.StatusServiceUnavailable
	}

	if h.redis != nil {
		status["redis"] = "up"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			// Events are best effort, so a missing Redis only degrades.
			status["redis"] = "down"
			if code == http.StatusOK {
				status["status"] = "degraded"
			}
		}
	}

	writeJSON(w, code, status)
}
