package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	})
}

func serve(h http.Handler, method string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, "/test", nil))
	return rr
}

func TestRouterProvider_GetAddsRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/test", dummyHandler("ok"))

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/test", routes[0].Url)
}

func TestRouterProvider_MultipleRoutesKeepOrder(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/a", dummyHandler("a"))
	rp.Post("/b", dummyHandler("b"))
	rp.Get("/c", dummyHandler("c"))

	routes := rp.GetRoutes()
	require.Len(t, routes, 3)
	assert.Equal(t, "/a", routes[0].Url)
	assert.Equal(t, "/b", routes[1].Url)
	assert.Equal(t, "/c", routes[2].Url)
}

func TestRouterProvider_MethodsShareOneRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/postings", dummyHandler("get"))
	rp.Post("/postings", dummyHandler("post"))
	rp.Put("/postings", dummyHandler("put"))
	rp.Delete("/postings", dummyHandler("delete"))

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)

	h := routes[0].Handler
	assert.Equal(t, "get", serve(h, http.MethodGet).Body.String())
	assert.Equal(t, "post", serve(h, http.MethodPost).Body.String())
	assert.Equal(t, "put", serve(h, http.MethodPut).Body.String())
	assert.Equal(t, "delete", serve(h, http.MethodDelete).Body.String())
}

func TestMethodHandler_WrongMethod(t *testing.T) {
	handler := methodHandler(map[string]http.Handler{http.MethodGet: dummyHandler("ok")})

	assert.Equal(t, http.StatusOK, serve(handler, http.MethodGet).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(handler, http.MethodPost).Code)
}

func TestRouterProvider_PostRouteRejectsGet(t *testing.T) {
	rp := NewRouterProvider()
	rp.Post("/submit", dummyHandler("ok"))

	rr := serve(rp.GetRoutes()[0].Handler, http.MethodGet)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
