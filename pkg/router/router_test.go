package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRoute(t *testing.T) {
	cases := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"/api/v1/runs", "/api/v1/runs", true},
		{"/api/v1/runs/abc", "/api/v1/runs/*", true},
		{"/api/v1/runs/abc/errors", "/api/v1/runs/*/errors", true},
		// A trailing wildcard covers deeper paths and the bare prefix.
		{"/api/v1/runs/abc/errors", "/api/v1/runs/*", true},
		{"/api/v1/runs", "/api/v1/runs/*", true},
		{"/swagger", "/swagger/*", true},
		{"/swagger/", "/swagger/*", true},
		{"/swagger/index.html", "/swagger/*", true},
		{"/swagger/doc/spec.json", "/swagger/*", true},
		{"/api/v1", "/api/v1/runs/*", false},
		{"/other", "/api/v1/runs", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, matchRoute(tc.path, tc.pattern), "%s vs %s", tc.path, tc.pattern)
	}
}

func TestRegisterRoutes(t *testing.T) {
	r := New()
	handler := func(w http.ResponseWriter, req *http.Request) {}

	r.GET("/api/v1/runs", handler)
	r.POST("/api/v1/runs", handler)
	r.GET("/api/v1/runs/*", handler)

	routes := r.Routes()
	assert.Contains(t, routes, "GET:/api/v1/runs")
	assert.Contains(t, routes, "POST:/api/v1/runs")
	assert.Contains(t, routes, "GET:/api/v1/runs/*")
	// Same path registered twice keeps one entry in the match order.
	assert.Len(t, r.paths, 2)
}

func TestDispatchFirstRegisteredWins(t *testing.T) {
	r := New()
	var hit string
	name := func(n string) HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) { hit = n }
	}

	r.GET("/api/v1/runs", name("list"))
	r.GET("/api/v1/runs/*/errors", name("errors"))
	r.GET("/api/v1/runs/*", name("run"))
	r.Handle(http.MethodGet, "/swagger/*", http.HandlerFunc(name("swagger")))

	cases := []struct {
		path string
		want string
	}{
		{"/api/v1/runs", "list"},
		{"/api/v1/runs/abc", "run"},
		{"/api/v1/runs/abc/errors", "errors"},
		{"/swagger/", "swagger"},
		{"/swagger/index.html", "swagger"},
	}
	for _, tc := range cases {
		hit = ""
		r.dispatch(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.want, hit, tc.path)
	}
}

func TestDispatchErrors(t *testing.T) {
	r := New()
	r.GET("/api/v1/runs", func(w http.ResponseWriter, req *http.Request) {})

	rec := httptest.NewRecorder()
	r.dispatch(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.dispatch(rec, httptest.NewRequest(http.MethodPost, "/api/v1/runs", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
