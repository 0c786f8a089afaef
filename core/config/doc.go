// Package config provides configuration management for the Stock Manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, webhook endpoint)
//   - Database: MySQL connection details for the ledger and transaction log
//   - Storage: S3/MinIO credentials and the catalog bucket
//   - Market: marketplace API endpoint and bearer token
//   - Log: logging level and format
//   - ErrLog: durable error log location
//   - Audit: listing audit sweep schedule
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
