package core

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type LogLevel int

const (
	LogLevelSilent LogLevel = iota + 1
	LogLevelError
	LogLevelWarn
	LogLevelInfo
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

var schemaPattern = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

// ParseLogLevel accepts silent, error, warn and info. Anything else is error.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return LogLevelSilent
	case "warn", "warning":
		return LogLevelWarn
	case "info", "debug":
		return LogLevelInfo
	default:
		return LogLevelError
	}
}

func (l LogLevel) gormLevel() logger.LogLevel {
	switch l {
	case LogLevelError:
		return logger.Error
	case LogLevelWarn:
		return logger.Warn
	case LogLevelInfo:
		return logger.Info
	case LogLevelSilent:
		return logger.Silent
	default:
		return logger.Info
	}
}

type DatabaseManager struct {
	SqlDB    *sql.DB
	Driver   string
	DSN      string
	LogLevel LogLevel
}

// New creates the global pool shared by every studio schema.
func New(driver, dsn string, maxConnection int) (*DatabaseManager, error) {
	if driver == "" {
		driver = DriverMySQL
	}

	sqlDriver := driver
	if driver == DriverPostgres {
		sqlDriver = "pgx"
	} else if driver != DriverMySQL {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	sqlDB, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open pool: %w", err)
	}

	sqlDB.SetMaxOpenConns(maxConnection)
	sqlDB.SetMaxIdleConns(maxConnection)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping pool: %w", err)
	}

	return &DatabaseManager{SqlDB: sqlDB, Driver: driver, DSN: dsn}, nil
}

// ResolveSchema maps a request host to a studio schema.
// "localhost" falls back to the database named in the DSN,
// "northside.gymdesk.io" becomes "northside".
func ResolveSchema(host, dsn string) string {
	if host == "localhost" || host == "127.0.0.1" {
		return DatabaseFromDSN(dsn)
	}
	return strings.Split(host, ".")[0]
}

// DatabaseFromDSN returns the database segment of a mysql or postgres DSN.
func DatabaseFromDSN(dsn string) string {
	withoutQuery := strings.SplitN(dsn, "?", 2)[0]

	// postgres key/value form: "host=... dbname=gym"
	if !strings.Contains(withoutQuery, "/") {
		for _, field := range strings.Fields(withoutQuery) {
			if name, ok := strings.CutPrefix(field, "dbname="); ok {
				return name
			}
		}
		return ""
	}

	segments := strings.Split(withoutQuery, "/")
	return segments[len(segments)-1]
}

func (dm *DatabaseManager) switchSchemaStatement(schema string) string {
	if dm.Driver == DriverPostgres {
		return `SET search_path TO "` + schema + `"`
	}
	return "USE `" + schema + "`"
}

// GetDB gets a *gorm.DB bound to a single connection with the studio schema selected.
// The caller closes the returned connection.
func (dm *DatabaseManager) GetDB(ctx context.Context, host string) (*gorm.DB, *sql.Conn, error) {
	schema := ResolveSchema(host, dm.DSN)
	if !schemaPattern.MatchString(schema) {
		return nil, nil, fmt.Errorf("invalid schema name %q", schema)
	}

	conn, err := dm.SqlDB.Conn(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get conn: %w", err)
	}

	if _, err := conn.ExecContext(ctx, dm.switchSchemaStatement(schema)); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to use schema %s: %w", schema, err)
	}

	var dialector gorm.Dialector
	if dm.Driver == DriverPostgres {
		dialector = postgres.New(postgres.Config{Conn: conn})
	} else {
		dialector = mysql.New(mysql.Config{Conn: conn})
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(dm.LogLevel.gormLevel()),
	})
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	return db, conn, nil
}

// Close closes the global pool
func (dm *DatabaseManager) Close() error {
	return dm.SqlDB.Close()
}

func (dm *DatabaseManager) Exec(ctx context.Context, schema string, fn func(db *gorm.DB) error) error {
	db, conn, err := dm.GetDB(ctx, schema)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(db)
}

func (dm *DatabaseManager) GetAllDatabases(ctx context.Context) ([]string, error) {
	query := "SHOW DATABASES"
	if dm.Driver == DriverPostgres {
		query = "SELECT schema_name FROM information_schema.schemata"
	}

	rows, err := dm.SqlDB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query databases: %w", err)
	}
	defer rows.Close()

	var databases []string
	for rows.Next() {
		var db string
		if err := rows.Scan(&db); err != nil {
			return nil, fmt.Errorf("failed to scan database name: %w", err)
		}

		if isSystemSchema(db) {
			continue
		}
		databases = append(databases, db)
	}

	return databases, rows.Err()
}

func isSystemSchema(name string) bool {
	switch name {
	case "information_schema", "mysql", "performance_schema", "sys", "public":
		return true
	}
	return strings.HasPrefix(name, "pg_")
}
