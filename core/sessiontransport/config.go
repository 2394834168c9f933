package sessiontransport

// Config provides environment-based configuration for the session cookie
// transport.
type Config struct {
	// Name is the session cookie name.
	Name string `env:"SSO_COOKIE_NAME" envDefault:"session"`

	// MaxAge is the cookie lifetime in seconds.
	MaxAge int `env:"SSO_COOKIE_MAX_AGE" envDefault:"604800"` // 7 days

	// Secure restricts the cookie to HTTPS. Enable in production.
	Secure bool `env:"SSO_COOKIE_SECURE" envDefault:"false"`
}

// DefaultConfig returns a Config with the standard cookie attributes.
func DefaultConfig() Config {
	return Config{
		Name:   "session",
		MaxAge: 7 * 24 * 60 * 60,
	}
}
