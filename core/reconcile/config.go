package reconcile

// Config holds configuration for the listing audit sweep.
type Config struct {
	// Enabled turns the scheduled sweep on or off.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Schedule is the cron expression for the periodic sweep.
	Schedule string `mapstructure:"schedule" default:"@every 30m"`
	// CacheTTLSeconds is how long built indices stay valid between sweeps.
	// Zero disables index caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"60"`
}
