package program

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/piwarmer/pkg/common/code"
	"github.com/scienceol/piwarmer/pkg/core/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	detail    *program.DetailResp
	detailErr error
	deleteErr error
	deletes   []*program.DeleteReq
	timeline  *program.TimelineReq
}

func (s *stubService) Detail(_ context.Context, req *program.DetailReq) (*program.DetailResp, error) {
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	resp := *s.detail
	resp.ProgramID = req.ProgramID
	return &resp, nil
}

func (s *stubService) Delete(_ context.Context, req *program.DeleteReq) (*program.DeleteResp, error) {
	s.deletes = append(s.deletes, req)
	if s.deleteErr != nil {
		return nil, s.deleteErr
	}
	if !req.Confirmed {
		return &program.DeleteResp{}, nil
	}
	return &program.DeleteResp{Deleted: true, Location: "/program?user=" + req.Scientist}, nil
}

func (s *stubService) Timeline(_ context.Context, req *program.TimelineReq) (*program.TimelineResp, error) {
	s.timeline = req
	return &program.TimelineResp{TotalDuration: 60, SecondsLeft: 60}, nil
}

func newEngine(svc program.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	h := NewProgramHandleWith(svc)
	g.GET("/program/detail", h.Page)
	g.POST("/program/detail/delete", h.DeleteForm)
	g.GET("/api/v1/program/detail", h.Detail)
	g.DELETE("/api/v1/program/:id", h.Delete)
	g.GET("/api/v1/program/timeline", h.Timeline)
	return g
}

func loadedService() *stubService {
	return &stubService{detail: &program.DetailResp{
		Scientist:      "alice",
		ConfirmMessage: "Are you sure you want to delete this program?",
		Page: program.Page{
			Title:      "<b>PCR</b>",
			DriverName: "Driver: Peltier",
			Details:    "<tr><td>1</td><td>Hold at 4°C</td></tr>",
		},
	}}
}

func serve(g *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestPage(t *testing.T) {
	g := newEngine(loadedService())
	w := serve(g, httptest.NewRequest(http.MethodGet, "/program/detail?id=42", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `<h1 id="program-title"><b>PCR</b></h1>`)
	assert.Contains(t, body, `<h3 id="driver-name">Driver: Peltier</h3>`)
	assert.Contains(t, body, `<table id="program-details"><tr><td>1</td><td>Hold at 4°C</td></tr></table>`)
	assert.Contains(t, body, `<input type="hidden" name="id" value="42">`)
	assert.Contains(t, body, `<input type="hidden" name="scientist" value="alice">`)
	assert.Contains(t, body, "confirm(")
	assert.Contains(t, body, "Are you sure you want to delete this program?")
}

func TestPageServiceFailureRendersEmpty(t *testing.T) {
	g := newEngine(&stubService{detailErr: code.RPCHttpErr})
	w := serve(g, httptest.NewRequest(http.MethodGet, "/program/detail?id=42", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<h1 id="program-title"></h1>`)
	assert.Contains(t, w.Body.String(), `<table id="program-details"></table>`)
}

func TestPageMissingID(t *testing.T) {
	g := newEngine(loadedService())
	w := serve(g, httptest.NewRequest(http.MethodGet, "/program/detail", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteForm(t *testing.T) {
	tcs := map[string]struct {
		form     url.Values
		failing  bool
		status   int
		location string
	}{
		"declined": {
			form:   url.Values{"id": {"42"}, "scientist": {"alice"}, "confirmed": {"false"}},
			status: http.StatusNoContent,
		},
		"confirmed": {
			form:     url.Values{"id": {"42"}, "scientist": {"alice"}, "confirmed": {"true"}},
			status:   http.StatusFound,
			location: "/program?user=alice",
		},
		"backend fails": {
			form:    url.Values{"id": {"42"}, "scientist": {"alice"}, "confirmed": {"true"}},
			failing: true,
			status:  http.StatusNoContent,
		},
		"missing id": {
			form:   url.Values{"scientist": {"alice"}, "confirmed": {"true"}},
			status: http.StatusBadRequest,
		},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			svc := loadedService()
			if tc.failing {
				svc.deleteErr = code.RPCHttpCodeErr
			}
			req := httptest.NewRequest(http.MethodPost, "/program/detail/delete", strings.NewReader(tc.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := serve(newEngine(svc), req)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.location, w.Header().Get("Location"))
		})
	}
}

func TestDetailJSON(t *testing.T) {
	g := newEngine(loadedService())
	w := serve(g, httptest.NewRequest(http.MethodGet, "/api/v1/program/detail?id=7", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code code.ErrCode        `json:"code"`
		Data *program.DetailResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, code.Success, resp.Code)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "7", resp.Data.ProgramID)
	assert.Equal(t, "<b>PCR</b>", resp.Data.Page.Title)
}

func TestDeleteJSON(t *testing.T) {
	svc := loadedService()
	g := newEngine(svc)
	w := serve(g, httptest.NewRequest(http.MethodDelete, "/api/v1/program/42?scientist=bob", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"location":"/program?user=bob"`)
	require.Len(t, svc.deletes, 1)
	assert.Equal(t, &program.DeleteReq{ProgramID: "42", Scientist: "bob", Confirmed: true}, svc.deletes[0])
}

func TestTimelineParams(t *testing.T) {
	svc := loadedService()
	g := newEngine(svc)

	w := serve(g, httptest.NewRequest(http.MethodGet, "/api/v1/program/timeline?id=42&elapsed=12.5&next=3", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, &program.TimelineReq{ProgramID: "42", Elapsed: 12.5, Next: 3}, svc.timeline)

	w = serve(g, httptest.NewRequest(http.MethodGet, "/api/v1/program/timeline?id=42&elapsed=-1", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(g, httptest.NewRequest(http.MethodGet, "/api/v1/program/timeline", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
