package config

type Config struct {
	Port         int      `env:"PORT" envDefault:"8080"`
	TrustProxies []string `env:"TRUST_PROXIES"`

	// AllowedOrigins enables CORS for the listed origins. Empty means
	// same-origin only.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`

	// DBPath overrides the telemetry database location. Empty uses the
	// per-user default under XDG_DATA_HOME.
	DBPath string `env:"SQLCOACH_DB"`

	// SessionMaxIdleMinutes evicts browser sessions idle longer than
	// this. Zero keeps them for the process lifetime.
	SessionMaxIdleMinutes int `env:"SESSION_MAX_IDLE_MINUTES" envDefault:"120"`
}

func (c Config) Validate() error {
	return nil
}
