package models

// Manifest is the addon descriptor served at /manifest.json. Field names
// are fixed by the Stremio addon protocol.
type Manifest struct {
	ID          string         `json:"id"`
	Version     string         `json:"version"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Logo        string         `json:"logo,omitempty"`
	Resources   []string       `json:"resources"`
	Types       []string       `json:"types"`
	IDPrefixes  []string       `json:"idPrefixes"`
	Catalogs    []Catalog      `json:"catalogs"`
	Behavior    *BehaviorHints `json:"behaviorHints,omitempty"`
}

// Catalog declares one catalog the addon can serve.
type Catalog struct {
	Type  string         `json:"type"`
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Extra []CatalogExtra `json:"extra,omitempty"`
}

// CatalogExtra declares a supported extra query parameter (e.g. search).
type CatalogExtra struct {
	Name       string `json:"name"`
	IsRequired bool   `json:"isRequired,omitempty"`
}

type BehaviorHints struct {
	Configurable          bool `json:"configurable"`
	ConfigurationRequired bool `json:"configurationRequired"`
}
