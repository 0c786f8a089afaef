package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// WebhookURL is the optional endpoint change notifications are pushed to.
	// When empty, change events are only written to the application log.
	WebhookURL string `mapstructure:"webhook_url" default:""`
}
