package providers

import (
	"elevate/internal/structures"
	"net/http"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	Put(url string, handler http.Handler)
	Delete(url string, handler http.Handler)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	routes  []structures.Route
	methods map[string]map[string]http.Handler
	order   []string
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.add(http.MethodGet, url, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.add(http.MethodPost, url, handler)
}

func (rp *RouterProvider) Put(url string, handler http.Handler) {
	rp.add(http.MethodPut, url, handler)
}

func (rp *RouterProvider) Delete(url string, handler http.Handler) {
	rp.add(http.MethodDelete, url, handler)
}

// add keeps one route per url; several methods on the same url share it.
func (rp *RouterProvider) add(method, url string, handler http.Handler) {
	if _, ok := rp.methods[url]; !ok {
		rp.methods[url] = make(map[string]http.Handler)
		rp.order = append(rp.order, url)
	}
	rp.methods[url][method] = handler

	rp.routes = rp.routes[:0]
	for _, u := range rp.order {
		rp.routes = append(rp.routes, structures.Route{
			Url:     u,
			Handler: methodHandler(rp.methods[u]),
		})
	}
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{methods: make(map[string]map[string]http.Handler)}
}

func methodHandler(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler, ok := handlers[r.Method]
		if !ok {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
