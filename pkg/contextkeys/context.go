package contextkeys

// Custom key type to avoid collisions with other context users.
type contextKey string

const (
	// CurrentUserKey is the gin context key under which the auth middleware
	// stores the re-fetched user record for downstream handlers.
	CurrentUserKey = contextKey("currentUser")

	// UserIDKey and RoleKey hold the claims extracted from the access token.
	UserIDKey = contextKey("userID")
	RoleKey   = contextKey("role")
)

// String returns the key as a plain string for gin's Get/Set, which only
// accept string keys.
func (k contextKey) String() string {
	return string(k)
}
