package config

import (
	"os"
)

// Config carries all process configuration. Every value comes from the
// environment; missing values fall back to defaults that suit a local
// single-user deployment.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string

	// BaseURL is the public base URL of this addon, used in the manifest
	// for absolute asset links. Empty means relative links.
	BaseURL string

	// TB7BaseURL is the content provider's origin.
	TB7BaseURL string

	// TMDBAPIKey enables metadata lookups. Empty key means degraded mode:
	// raw IMDb ids are used as search titles.
	TMDBAPIKey string

	// TMDBLanguage selects the localized title field, e.g. "pl-PL".
	TMDBLanguage string

	RedisAddr     string
	RedisPassword string

	// TB7Login/TB7Password optionally pre-seed the global account so a
	// single-user deployment works without visiting /configure.
	TB7Login    string
	TB7Password string
}

func Load() Config {
	cfg := Config{
		ListenAddr: getenv("TB7_ADDR", ":7000"),
		BaseURL:    os.Getenv("TB7_PUBLIC_URL"),

		TB7BaseURL: getenv("TB7_BASE_URL", "https://tb7.pl"),

		TMDBAPIKey:   os.Getenv("TMDB_API_KEY"),
		TMDBLanguage: getenv("TMDB_LANGUAGE", "pl-PL"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		TB7Login:    os.Getenv("TB7_LOGIN"),
		TB7Password: os.Getenv("TB7_PASSWORD"),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
