package handlers

import (
	"net/http"

	"tb7stream/models"
)

const (
	addonID      = "tb7-premium"
	addonVersion = "1.0.0"
	addonName    = "TB7 Premium"
)

// Manifest serves the static addon descriptor. baseURL may be empty, in
// which case the logo link is relative.
func Manifest(baseURL string) http.HandlerFunc {
	manifest := models.Manifest{
		ID:          addonID,
		Version:     addonVersion,
		Name:        addonName,
		Description: "Resolves IMDb ids into direct download links from a tb7.pl premium account.",
		Logo:        baseURL + "/logo.png",
		Resources:   []string{"catalog", "stream"},
		Types:       []string{"movie", "series"},
		IDPrefixes:  []string{"tt"},
		Catalogs: []models.Catalog{
			{
				Type: "movie", ID: "tb7-movie", Name: "TB7 Premium Movies",
				Extra: []models.CatalogExtra{{Name: "search"}, {Name: "skip"}},
			},
			{
				Type: "series", ID: "tb7-series", Name: "TB7 Premium Series",
				Extra: []models.CatalogExtra{{Name: "search"}, {Name: "skip"}},
			},
		},
		Behavior: &models.BehaviorHints{
			Configurable:          true,
			ConfigurationRequired: true,
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, manifest)
	}
}
