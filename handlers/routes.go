package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Identity interface {
		identityResolver
		configStore
	}
	Resolver interface {
		streamResolver
		catalogResolver
	}
	BaseURL string
}

// Register mounts all addon routes on the router.
func Register(r *mux.Router, deps Deps) {
	r.HandleFunc("/manifest.json", Manifest(deps.BaseURL)).Methods(http.MethodGet)

	stream := Stream(deps.Identity, deps.Resolver)
	r.HandleFunc("/stream/{type}/{id}", stream).Methods(http.MethodGet)

	catalog := Catalog(deps.Identity, deps.Resolver)
	r.HandleFunc("/catalog/{type}/{catalogID}/{extra}", catalog).Methods(http.MethodGet)
	r.HandleFunc("/catalog/{type}/{catalogID}", catalog).Methods(http.MethodGet)

	r.HandleFunc("/configure", Configure(deps.Identity)).Methods(http.MethodGet, http.MethodPost)
}
