// internal/db/db.go
package db

import (
    "database/sql"
    "log"

    _ "github.com/lib/pq"
)

var DB *sql.DB

// Init opens the connection pool. The DSN comes from config so nothing
// below main ever touches the environment.
func Init(databaseURL string) {
    var err error
    DB, err = sql.Open("postgres", databaseURL)
    if err != nil {
        log.Fatalf("failed to connect to DB: %v", err)
    }

    if err = DB.Ping(); err != nil {
        log.Fatalf("failed to ping DB: %v", err)
    }

    log.Println("✅ Connected to database")
}
