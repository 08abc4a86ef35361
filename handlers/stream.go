package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"tb7stream/models"
	"tb7stream/services/identity"
	"tb7stream/services/resolver"
)

// streamResolver is the slice of the resolver service the stream endpoint needs.
type streamResolver interface {
	Streams(ctx context.Context, id models.Identity, addr, kind, videoID string) ([]models.Stream, error)
}

var _ streamResolver = (*resolver.Service)(nil)

// identityResolver derives the caller identity, possibly appending a
// set-cookie directive to the response.
type identityResolver interface {
	Resolve(w http.ResponseWriter, r *http.Request) models.Identity
}

var _ identityResolver = (*identity.Service)(nil)

type streamResponse struct {
	Streams []models.Stream `json:"streams"`
}

// Stream serves /stream/{type}/{id}.json. The response is always 200 with
// a streams list; resolution failures of any kind collapse to an empty
// list so clients treat them as "nothing found".
func Stream(ids identityResolver, res streamResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		kind := vars["type"]
		videoID := strings.TrimSuffix(vars["id"], ".json")

		if kind == "" || videoID == "" {
			writeJSON(w, http.StatusOK, streamResponse{Streams: []models.Stream{}})
			return
		}

		caller := ids.Resolve(w, r)
		addr := identity.ClientAddress(r)

		streams, err := res.Streams(r.Context(), caller, addr, kind, videoID)
		if err != nil {
			log.Printf("[handlers] stream resolution failed for %s: %v", videoID, err)
			streams = nil
		}
		if streams == nil {
			streams = []models.Stream{}
		}
		writeJSON(w, http.StatusOK, streamResponse{Streams: streams})
	}
}
