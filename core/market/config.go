package market

// Config holds configuration for the marketplace client.
type Config struct {
	// BaseURL is the root of the marketplace HTTP API.
	BaseURL string `mapstructure:"base_url" default:"https://api.warframe.market/v1"`
	// Token is the bearer token of the trader's account.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
