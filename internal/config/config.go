package config

type Config interface {
	EnvConfig
	AuthConfig
	DatabaseConfig
	CorsConfig

	// Validate checks the configuration at process start. A failure here is
	// fatal; configuration problems are never surfaced at request time.
	Validate() error
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Auth
	Database
	Cors
}

func New() Config {
	return mainConfig{}
}

func (c mainConfig) Validate() error {
	if err := c.Auth.validate(); err != nil {
		return err
	}
	return c.Database.validate()
}
