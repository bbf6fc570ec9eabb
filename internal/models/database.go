package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

type CashlogContext string

const (
	DBContextURL CashlogContext = "cashlog-backend-url"
)

// PostgreSQL error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// uniqueConstraint maps a unique index to the error returned when it is violated.
type uniqueConstraint struct {
	sqlite string // column list as reported by SQLite
	index  string // index name, reported by PostgreSQL
	err    error
}

var uniqueConstraints = []uniqueConstraint{
	{"categories.name", "idx_category_name", ErrCategoryNameNotUnique},
	{"tags.name", "idx_tag_name", ErrTagNameNotUnique},
	{"budgets.year, budgets.month", "idx_budget_period", ErrBudgetPeriodNotUnique},
	{"session_preferences.session_key", "idx_session_key", ErrSessionKeyNotUnique},
}

// Connect opens the database and configures the connection pool.
//
// DSNs starting with postgres:// or postgresql:// connect to PostgreSQL,
// everything else is treated as the path to an SQLite database file.
func Connect(dsn string) error {
	var (
		db  *gorm.DB
		err error
	)

	if IsPostgres(dsn) {
		db, err = connectPostgres(dsn)
	} else {
		db, err = connectSQLite(dsn)
	}
	if err != nil {
		return err
	}

	err = registerCallbacks(db)
	if err != nil {
		return err
	}

	// Set the exported variable
	DB = db

	return nil
}

// IsPostgres reports whether dsn is a PostgreSQL connection URL.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
	}
}

func connectSQLite(dsn string) (*gorm.DB, error) {
	// Migration runs with foreign keys disabled since sqlite does not
	// support ALTER COLUMN. Tables are copied to a temporary table,
	// then the table is dropped and recreated
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Now, reconnect with foreign keys enabled
	dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
	db, err = gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func connectPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func registerCallbacks(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "cashlog:after_query", queryCallback},
		{db.Callback().Query().After("*"), "cashlog:after_query_general", generalCallback},
		{db.Callback().Row().After("*"), "cashlog:after_row_general", generalCallback},
		{db.Callback().Create().After("*"), "cashlog:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "cashlog:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "cashlog:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "cashlog:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "cashlog:after_delete", deleteCallback},
		{db.Callback().Delete().After("*"), "cashlog:after_delete_general", generalCallback},
		{db.Callback().Raw().After("*"), "cashlog:after_raw", deleteCallback},
		{db.Callback().Raw().After("*"), "cashlog:after_raw_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.processor.Register(c.name, c.fn); err != nil {
			return err
		}
	}

	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		match := regexp.MustCompile("ies$")
		name = match.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if err := uniqueViolation(db.Error); err != nil {
		db.Error = err
		return
	}

	if isForeignKeyViolation(db.Error) {
		db.Error = ErrReferenceNotFound
	}
}

// deleteCallback replaces foreign key errors on deletion. These mean that
// the resource is still referenced by another one.
func deleteCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if isForeignKeyViolation(db.Error) {
		db.Error = fmt.Errorf("%w: it is referenced by another resource", ErrInUse)
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	var pgErr *pgconn.PgError

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) || errors.As(db.Error, &pgErr) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral

		return
	}
}

// uniqueViolation returns the error for the unique constraint
// that err reports as violated. It returns nil if err is not
// a unique constraint violation.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return nil
		}

		for _, c := range uniqueConstraints {
			if pgErr.ConstraintName == c.index {
				return c.err
			}
		}

		return ErrDuplicate
	}

	for _, c := range uniqueConstraints {
		if strings.Contains(err.Error(), fmt.Sprintf("UNIQUE constraint failed: %s", c.sqlite)) {
			return c.err
		}
	}

	if strings.Contains(err.Error(), "UNIQUE constraint failed") || errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}

	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}

	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed") || errors.Is(err, gorm.ErrForeignKeyViolated)
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(Category{}, Tag{}, Budget{}, Transaction{}, SessionPreferences{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
