package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/paid-media-etl/pkg/apiErrors"
)

func TestRouter_MiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	rt := New(WithRoutes(Route{
		Path:   "/v1/thing",
		Method: http.MethodGet,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			order = append(order, "handler")
		}),
		Middlewares: []func(http.Handler) http.Handler{tag("first"), tag("second")},
	}))

	rt.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/thing", nil))
	assert.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestRouter_Unmatched(t *testing.T) {
	rt := New(WithRoutes(Route{Path: "/v1/thing", Method: http.MethodGet, Handler: http.NotFoundHandler()}))

	recorder := httptest.NewRecorder()
	rt.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/other", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.True(t, strings.Contains(recorder.Body.String(), apiErrors.ErrNotFound))

	recorder = httptest.NewRecorder()
	rt.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/v1/thing", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	assert.True(t, strings.Contains(recorder.Body.String(), apiErrors.ErrMethodNotAllowed))
}
