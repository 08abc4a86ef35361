// Package identity derives a stable per-caller identity and loads the
// provider credentials that apply to it.
package identity

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"tb7stream/models"
	"tb7stream/store"
)

const (
	// TokenCookie is the client-held identity token cookie.
	TokenCookie = "tb7uid"

	tokenMaxAge = int((365 * 24 * time.Hour) / time.Second)

	credsKeyPrefix  = "tb7:cfg:"
	globalCredsKey  = "tb7:cfg"
	ipBucketPrefix  = "tb7:user-ip:"
	unknownAddrName = "unknown"
)

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Resolve returns the caller's identity. A previously issued token is
// returned unchanged; otherwise a fresh token is minted and appended as a
// year-long cookie. Appending preserves any Set-Cookie directives already
// queued on the response. Resolution never fails.
func (s *Service) Resolve(w http.ResponseWriter, r *http.Request) models.Identity {
	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		return models.Identity{ID: c.Value, Source: models.IdentitySourceToken}
	}

	token := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   tokenMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
	return models.Identity{ID: token, Source: models.IdentitySourceToken}
}

// ClientAddress returns the caller's first forwarded address, falling back
// to the socket peer address.
func ClientAddress(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
		if first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return unknownAddrName
}

// Credentials loads the account record that applies to this caller and
// returns it together with the scope key that session caching is keyed by.
//
// The per-identity record wins; the global record is the fallback so a
// single-account deployment configured once serves every client. When the
// record selects IP mode, the credential bucket switches to the caller's
// address: the first caller seeds the bucket, later callers on the same
// address reuse it. Token presence always decides the identity itself.
func (s *Service) Credentials(ctx context.Context, id models.Identity, addr string) (models.Credentials, string, error) {
	scope := credsKeyPrefix + id.ID

	creds, err := s.readCreds(ctx, scope)
	if err != nil {
		return models.Credentials{}, "", err
	}
	if !creds.Configured() {
		creds, err = s.readCreds(ctx, globalCredsKey)
		if err != nil {
			return models.Credentials{}, "", err
		}
		scope = globalCredsKey
	}

	if creds.Mode != models.ModeIP {
		return creds, scope, nil
	}

	bucket := ipBucketPrefix + addr
	bucketCreds, err := s.readCreds(ctx, bucket)
	if err != nil {
		return models.Credentials{}, "", err
	}
	if !bucketCreds.Configured() {
		if creds.Configured() {
			if err := s.writeCreds(ctx, bucket, creds); err != nil {
				return models.Credentials{}, "", err
			}
		}
		bucketCreds = creds
	}
	bucketCreds.Mode = models.ModeIP
	return bucketCreds, bucket, nil
}

// SaveCredentials persists the configuration form. The record is written
// under the caller's identity and under the global fallback key.
func (s *Service) SaveCredentials(ctx context.Context, id models.Identity, creds models.Credentials) error {
	creds.Mode = models.NormalizeMode(creds.Mode)
	if err := s.writeCreds(ctx, credsKeyPrefix+id.ID, creds); err != nil {
		return err
	}
	return s.writeCreds(ctx, globalCredsKey, creds)
}

// StoredCredentials returns the record rendered back into the configure
// form, preferring the caller's own record.
func (s *Service) StoredCredentials(ctx context.Context, id models.Identity) (models.Credentials, error) {
	creds, err := s.readCreds(ctx, credsKeyPrefix+id.ID)
	if err != nil {
		return models.Credentials{}, err
	}
	if creds.Configured() {
		return creds, nil
	}
	return s.readCreds(ctx, globalCredsKey)
}

func (s *Service) readCreds(ctx context.Context, key string) (models.Credentials, error) {
	fields, err := s.store.HGetAll(ctx, key)
	if err != nil {
		return models.Credentials{}, err
	}
	return models.Credentials{
		Login:    fields["login"],
		Password: fields["password"],
		Mode:     models.NormalizeMode(fields["mode"]),
	}, nil
}

func (s *Service) writeCreds(ctx context.Context, key string, creds models.Credentials) error {
	return s.store.HSet(ctx, key, map[string]string{
		"login":    creds.Login,
		"password": creds.Password,
		"mode":     models.NormalizeMode(creds.Mode),
	})
}
