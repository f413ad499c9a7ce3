package persistence

import (
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"stream-engage/infrastructure/configuration"

	_ "github.com/microsoft/go-mssqldb"
)

// NewMSSQLDB creates a sql.DB for Azure SQL / SQL Server, the production
// backing store for the join-log audit trail.
func NewMSSQLDB() (*sql.DB, error) {
	cfg := configuration.C.Database.Mssql

	q := url.Values{}
	if cfg.Name != "" {
		q.Set("database", cfg.Name)
	}
	// Azure SQL requires encrypt=true; local containers get a self-signed cert.
	q.Set("encrypt", "true")
	if cfg.Host == "localhost" || cfg.Host == "127.0.0.1" {
		q.Set("TrustServerCertificate", "true")
	}

	u := &url.URL{Scheme: "sqlserver", Host: fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)}
	if cfg.User != "" {
		if cfg.Password != "" {
			u.User = url.UserPassword(cfg.User, cfg.Password)
		} else {
			u.User = url.User(cfg.User)
		}
	}
	u.RawQuery = q.Encode()

	db, err := sql.Open("sqlserver", u.String())
	if err != nil {
		return nil, err
	}
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureJoinLogSchemaMSSQL creates the join_logs table when missing.
func EnsureJoinLogSchemaMSSQL(db *sql.DB) error {
	const ddl = `
IF NOT EXISTS (SELECT 1 FROM sys.tables WHERE name = 'join_logs')
CREATE TABLE join_logs (
    id        VARCHAR(36) NOT NULL PRIMARY KEY,
    stream_id VARCHAR(36) NOT NULL,
    user_id   VARCHAR(64) NOT NULL,
    role      VARCHAR(16) NOT NULL,
    joined_at DATETIME2 NOT NULL,
    left_at   DATETIME2 NULL
);`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("ensuring join_logs table failed: %w", err)
	}
	return nil
}
