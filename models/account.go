package models

// Identity modes. Cookie mode keys stored credentials by a client-held
// token; IP mode keys them by the caller's forwarded network address so
// households sharing an address share one account record.
const (
	ModeCookie = "cookie"
	ModeIP     = "ip"
)

// NormalizeMode collapses any unknown mode value to cookie mode.
func NormalizeMode(mode string) string {
	if mode == ModeIP {
		return ModeIP
	}
	return ModeCookie
}

// Credentials is a provider account record as stored in the KV store.
type Credentials struct {
	Login    string
	Password string
	Mode     string
}

// Configured reports whether the record is complete enough to attempt a
// provider login. Partial records are treated as unconfigured.
func (c Credentials) Configured() bool {
	return c.Login != "" && c.Password != ""
}

// Identity is the caller-scoped key used to select stored credentials.
type Identity struct {
	// ID is the opaque token value (cookie source) or the network
	// address bucket (address source).
	ID string
	// Source is "token" or "address-bucket".
	Source string
}

const (
	IdentitySourceToken   = "token"
	IdentitySourceAddress = "address-bucket"
)
