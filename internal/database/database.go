// Package database opens the PostgreSQL pool used by the repositories.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"gedo/internal/config"
)

var sqlOpen = sql.Open

const defaultConnectTimeout = 5 * time.Second

var errIncompleteConfig = errors.New("database config requires DB_HOST, DB_PORT, DB_USER and DB_NAME")

// BuildPostgresDSN returns a postgres:// URL. The session carries the
// application name so the connections are identifiable in pg_stat_activity.
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	if c.Host == "" || c.Port == "" || c.User == "" || c.Name == "" {
		return "", errIncompleteConfig
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   c.Host + ":" + c.Port,
		Path:   c.Name,
		User:   url.User(c.User),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}

	q := url.Values{}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	if c.ApplicationName != "" {
		q.Set("application_name", c.ApplicationName)
	}
	if c.ConnectTimeoutSec > 0 {
		q.Set("connect_timeout", strconv.Itoa(c.ConnectTimeoutSec))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func connectTimeout(c config.DatabaseConfig) time.Duration {
	if c.ConnectTimeoutSec > 0 {
		return time.Duration(c.ConnectTimeoutSec) * time.Second
	}
	return defaultConnectTimeout
}

// NewPostgres opens a traced pool on the pgx stdlib driver and pings it
// within the connect timeout. The pool is closed again when the ping fails.
func NewPostgres(ctx context.Context, c config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return nil, err
	}

	driverName, err := otelsql.Register("pgx",
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL, semconv.DBName(c.Name)),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("register traced driver: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	applyPool(db, c)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout(c))
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping %s:%s: %w", c.Host, c.Port, err)
	}

	logger.InfoContext(ctx, "database connected",
		"db_host", c.Host,
		"db_name", c.Name,
		"application_name", c.ApplicationName,
		"max_open_conns", c.MaxOpenConns,
		"max_idle_conns", c.MaxIdleConns,
	)
	return db, nil
}

func applyPool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}
}
