package shiptrack

// AuthFlagKey is the fixed key the authentication flag is stored under.
const AuthFlagKey = "admin_auth"

const (
	adminUsername = "Admin"
	adminPassword = "Admin12345"
)

// CredentialVerifier decides whether a username/password pair grants
// admin access. The session gate never learns why a pair was rejected.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// StaticCredentials verifies against the single compiled-in admin pair.
type StaticCredentials struct{}

func (StaticCredentials) Verify(username, password string) bool {
	return username == adminUsername && password == adminPassword
}

// FlagStore is durable local key/value storage surviving process
// restart. It holds nothing but the authentication flag.
type FlagStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Session is the gate in front of the administration flow. It is
// constructed once at process start from the flag store and passed to
// whichever flow needs it; there is no ambient global state, no token
// and no expiry.
type Session struct {
	store         FlagStore
	verifier      CredentialVerifier
	authenticated bool
}

// NewSession restores a session from durable storage. The operator is
// considered authenticated only if the stored flag value is exactly
// "true"; a read failure or any other value means logged out.
func NewSession(store FlagStore, verifier CredentialVerifier) *Session {
	v, err := store.Get(AuthFlagKey)
	return &Session{
		store:         store,
		verifier:      verifier,
		authenticated: err == nil && v == "true",
	}
}

// Login verifies the pair and, on success, marks the session
// authenticated and persists the flag. On failure the session state is
// unchanged and no distinction between wrong user and wrong password is
// surfaced.
func (s *Session) Login(username, password string) bool {
	if !s.verifier.Verify(username, password) {
		return false
	}
	s.authenticated = true
	// A failed flag write only costs persistence across restarts; the
	// in-process session stays logged in either way.
	_ = s.store.Set(AuthFlagKey, "true")
	return true
}

// Logout clears the authenticated flag and removes it from durable
// storage. Idempotent.
func (s *Session) Logout() {
	s.authenticated = false
	_ = s.store.Delete(AuthFlagKey)
}

// IsAuthenticated reports whether the operator may enter the
// administration flow.
func (s *Session) IsAuthenticated() bool {
	return s.authenticated
}
