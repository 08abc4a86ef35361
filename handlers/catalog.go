package handlers

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"tb7stream/models"
	"tb7stream/services/identity"
	"tb7stream/services/resolver"
)

type catalogResolver interface {
	Catalog(ctx context.Context, id models.Identity, addr, kind, query string, skip, limit int) ([]models.MetaPreview, error)
}

var _ catalogResolver = (*resolver.Service)(nil)

type catalogResponse struct {
	Metas []models.MetaPreview `json:"metas"`
	// Error is a human-readable note set when listing failed; the metas
	// list is present (and empty) regardless.
	Error string `json:"error,omitempty"`
}

// Catalog serves /catalog/{type}/{id}.json and the extra-bearing variant
// /catalog/{type}/{id}/{extra}.json where extra carries search and skip
// as an urlencoded segment, per the catalog protocol.
func Catalog(ids identityResolver, res catalogResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		kind := vars["type"]

		query, skip := parseExtra(strings.TrimSuffix(vars["extra"], ".json"))

		caller := ids.Resolve(w, r)
		addr := identity.ClientAddress(r)

		metas, err := res.Catalog(r.Context(), caller, addr, kind, query, skip, resolver.DefaultCatalogLimit)
		if err != nil {
			log.Printf("[handlers] catalog listing failed: %v", err)
			writeJSON(w, http.StatusOK, catalogResponse{Metas: []models.MetaPreview{}, Error: "provider listing unavailable"})
			return
		}
		if metas == nil {
			metas = []models.MetaPreview{}
		}
		writeJSON(w, http.StatusOK, catalogResponse{Metas: metas})
	}
}

// parseExtra decodes the extra path segment ("search=kler&skip=100").
func parseExtra(extra string) (query string, skip int) {
	if extra == "" {
		return "", 0
	}
	values, err := url.ParseQuery(extra)
	if err != nil {
		return "", 0
	}
	query = values.Get("search")
	if s := values.Get("skip"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			skip = n
		}
	}
	return query, skip
}
