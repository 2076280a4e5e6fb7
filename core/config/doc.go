// Package config provides configuration management for the pharmacy manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file, with defaults declared as struct tags on the partial
// config structs.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Store: embedded store settings (driver, sqlite path, mysql connection)
//   - Storage: S3/MinIO credentials and bucket settings for snapshot backups
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Store.Driver)
package config
