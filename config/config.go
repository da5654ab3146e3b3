package config

// AppConfig holds the application configuration, loaded once at startup.
type AppConfig struct {
	DBURL        string
	RedisAddress string
	// TokenSecret is the 32-byte symmetric key for session tokens.
	TokenSecret []byte
	// Environment toggles the cookie secure attribute ("production" => secure).
	Environment string
	Port        string
}

// SecureCookies reports whether session cookies must carry the secure flag.
func (c *AppConfig) SecureCookies() bool {
	return c.Environment == "production"
}
