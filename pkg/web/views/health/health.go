package health

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Health is a simple health check.
func Health(g *gin.Context) {
	g.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Live is a lightweight liveness probe, the process is alive.
func Live(g *gin.Context) {
	g.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready returns a readiness probe that requires the program backend to answer.
func Ready(backend Pinger) gin.HandlerFunc {
	return func(g *gin.Context) {
		checks := gin.H{}
		healthy := true

		if backend == nil {
			checks["backend"] = "not_initialized"
			healthy = false
		} else if err := backend.Ping(g.Request.Context()); err != nil {
			checks["backend"] = "unhealthy"
			healthy = false
		} else {
			checks["backend"] = "ok"
		}

		status := http.StatusOK
		msg := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			msg = "not_ready"
		}

		g.JSON(status, gin.H{
			"status": msg,
			"checks": checks,
		})
	}
}
