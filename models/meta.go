package models

// MetaPreview is one catalog entry as the Stremio client expects it.
// ID is an IMDb id when enrichment resolved one, otherwise the provider's
// display name so the entry stays addressable.
type MetaPreview struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Poster      string `json:"poster,omitempty"`
	ReleaseInfo string `json:"releaseInfo,omitempty"`
}
