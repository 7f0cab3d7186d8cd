package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/piwarmer/internal/config"
	"github.com/scienceol/piwarmer/pkg/common"
	"github.com/scienceol/piwarmer/pkg/common/code"
	impl "github.com/scienceol/piwarmer/pkg/core/program/program"
	"github.com/scienceol/piwarmer/pkg/repo/backend"
	programView "github.com/scienceol/piwarmer/pkg/web/views/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStack(t *testing.T) (*gin.Engine, *[]string) {
	t.Helper()
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.Method + " " + r.URL.Path {
		case "GET /api/program/9":
			_, _ = w.Write([]byte(`{"id":9,"name":"<i>Anneal</i>","driver":2,"scientist":"carol",` +
				`"steps":"{\"2\":{\"mode\":\"hold\",\"temperature\":4},\"1\":{\"mode\":\"linear\",\"start_temperature\":95,\"end_temperature\":55,\"duration\":120}}"}`))
		case "GET /api/driver/2":
			_, _ = w.Write([]byte(`{"id":2,"name":"Block B"}`))
		case "GET /api/program/big":
			_, _ = w.Write([]byte(`{"id":"big","name":"Loop","driver":2,"steps":` +
				`"{\"1\":{\"mode\":\"set\",\"duration\":5},\"2\":{\"mode\":\"repeat\",\"num_repeats\":2000},` +
				`\"3\":{\"mode\":\"repeat\",\"num_repeats\":2000}}"}`))
		case "DELETE /api/program/9":
			w.WriteHeader(http.StatusOK)
		case "HEAD /api/":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	client := backend.NewClient(config.Backend{Addr: srv.URL + "/api/"})
	svc := impl.NewProgramWithRepo(backend.NewProgramRepo(client), false)

	gin.SetMode(gin.TestMode)
	g := gin.New()
	installMiddleware(g)
	installURL(g, programView.NewProgramHandleWith(svc), client)
	return g, &calls
}

func do(g *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestDetailPageEndToEnd(t *testing.T) {
	g, calls := newStack(t)
	w := do(g, httptest.NewRequest(http.MethodGet, "/program/detail?id=9", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `<h1 id="program-title"><i>Anneal</i></h1>`)
	assert.Contains(t, body, `<h3 id="driver-name">Driver: Block B</h3>`)
	assert.Contains(t, body, "<tr><td>1</td><td>Ramp from 95°C to 55°C over 120 seconds.</td></tr>"+
		"<tr><td>2</td><td>Hold at 4°C</td></tr>")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, []string{"GET /api/program/9", "GET /api/driver/2"}, *calls)
}

func TestMissingProgramSkipsDriver(t *testing.T) {
	g, calls := newStack(t)
	w := do(g, httptest.NewRequest(http.MethodGet, "/program/detail?id=404", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<h1 id="program-title"></h1>`)
	assert.Contains(t, w.Body.String(), `<h3 id="driver-name"></h3>`)
	assert.Equal(t, []string{"GET /api/program/404"}, *calls)
}

func TestDeleteFormEndToEnd(t *testing.T) {
	g, calls := newStack(t)
	form := url.Values{"id": {"9"}, "scientist": {"carol"}, "confirmed": {"true"}}
	req := httptest.NewRequest(http.MethodPost, "/program/detail/delete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := do(g, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/program?user=carol", w.Header().Get("Location"))
	assert.Equal(t, []string{"DELETE /api/program/9"}, *calls)
}

func TestTimelineEndToEnd(t *testing.T) {
	g, _ := newStack(t)
	w := do(g, httptest.NewRequest(http.MethodGet, "/api/v1/program/timeline?id=9&elapsed=60&next=2", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"desired_temperature":75`)
	assert.Contains(t, w.Body.String(), `"seconds_left":60`)
}

func TestTimelineErrorCodes(t *testing.T) {
	tcs := map[string]struct {
		id   string
		want code.ErrCode
	}{
		"missing program": {id: "404", want: code.RecordNotFound},
		"runaway repeats": {id: "big", want: code.TimelineErr},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			g, _ := newStack(t)
			w := do(g, httptest.NewRequest(http.MethodGet, "/api/v1/program/timeline?id="+tc.id, nil))
			require.Equal(t, http.StatusOK, w.Code)

			var resp common.Resp
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.want, resp.Code)
		})
	}
}

func TestSwaggerDoc(t *testing.T) {
	g, _ := newStack(t)
	w := do(g, httptest.NewRequest(http.MethodGet, "/api/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v1/program/timeline")
	assert.Contains(t, w.Body.String(), `"title": "piwarmer"`)
}

func TestReadyEndToEnd(t *testing.T) {
	g, _ := newStack(t)
	w := do(g, httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
