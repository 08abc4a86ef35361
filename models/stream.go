package models

// Stream is one resolved download location.
type Stream struct {
	// Name labels the providing addon in the client UI.
	Name string `json:"name"`
	// Title is the provider's filename-derived display string.
	Title string `json:"title"`
	// URL is the direct download link.
	URL string `json:"url"`
}
