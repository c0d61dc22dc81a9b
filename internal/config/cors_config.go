package config

type CorsConfig interface {
	GetAllowedOrigin() string
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type Cors struct{}

var _ CorsConfig = Cors{}

// GetAllowedOrigin returns the storefront origin. Credentials (cookies) are
// sent cross-origin, so a wildcard is never used here.
func (Cors) GetAllowedOrigin() string {
	return GetEnv("ALLOWED_ORIGIN", "http://localhost:3000")
}

func (Cors) GetAllowedMethods() string {
	return GetEnv("ALLOWED_METHODS", "GET, POST, PUT, DELETE, OPTIONS")
}

func (Cors) GetAllowedHeaders() string {
	return GetEnv("ALLOWED_HEADERS", "Content-Type, Authorization")
}
