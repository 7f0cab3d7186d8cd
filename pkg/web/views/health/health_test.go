package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestProbes(t *testing.T) {
	tcs := map[string]struct {
		backend Pinger
		path    string
		status  int
		state   string
		check   string
	}{
		"health": {path: "/health", status: http.StatusOK, state: "ok"},
		"live":   {path: "/live", status: http.StatusOK, state: "ok"},
		"ready": {
			backend: pingFunc(func(context.Context) error { return nil }),
			path:    "/ready",
			status:  http.StatusOK,
			state:   "ready",
			check:   "ok",
		},
		"backend down": {
			backend: pingFunc(func(context.Context) error { return errors.New("refused") }),
			path:    "/ready",
			status:  http.StatusServiceUnavailable,
			state:   "not_ready",
			check:   "unhealthy",
		},
		"no backend": {
			path:   "/ready",
			status: http.StatusServiceUnavailable,
			state:  "not_ready",
			check:  "not_initialized",
		},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			g := gin.New()
			g.GET("/health", Health)
			g.GET("/live", Live)
			g.GET("/ready", Ready(tc.backend))

			w := httptest.NewRecorder()
			g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.status, w.Code)

			var body struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.state, body.Status)
			assert.Equal(t, tc.check, body.Checks["backend"])
		})
	}
}
