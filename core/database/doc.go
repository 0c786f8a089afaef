// Package database handles the database connection for the stock ledger.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// MySQL connections based on the application's configuration. The ledger and the
// transaction log share one connection pool; repositories in feature packages
// receive the *gorm.DB as an explicit constructor dependency.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
