package etl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-sql/civil"
	mssql "github.com/microsoft/go-mssqldb"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/BartekS5/review-etl/pkg/database"
	"github.com/BartekS5/review-etl/pkg/models"
)

// dialect isolates the DDL and driver quirks of a SQL destination.
type dialect interface {
	placeholder(n int) string
	dropTable(table string) string
	createTable(table string, fields []models.FieldConfig) string
	createIndex(table string, idx models.IndexConfig) string
	dateValue(d civil.Date) interface{}
	isPrimaryKeyViolation(err error) bool
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case database.DriverSQLite:
		return sqliteDialect{}, nil
	case database.DriverSQLServer:
		return sqlServerDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported SQL driver %q", driver)
	}
}

type sqliteDialect struct{}

func (sqliteDialect) placeholder(int) string { return "?" }

func (sqliteDialect) dropTable(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
}

func (sqliteDialect) createTable(table string, fields []models.FieldConfig) string {
	defs := make([]string, len(fields))
	for i, f := range fields {
		var typ string
		switch f.Type {
		case models.TypeDate:
			typ = "DATE"
		case models.TypeInt:
			typ = "INTEGER"
		case models.TypeFloat:
			typ = "REAL"
		case models.TypeBool:
			typ = "BOOLEAN"
		default:
			typ = "TEXT"
		}
		defs[i] = f.Column + " " + typ
		if f.PrimaryKey {
			defs[i] += " PRIMARY KEY"
		}
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", table, strings.Join(defs, ",\n\t"))
}

func (sqliteDialect) createIndex(table string, idx models.IndexConfig) string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s)", idx.Name, table, idx.Column)
}

func (sqliteDialect) dateValue(d civil.Date) interface{} { return d.String() }

func (sqliteDialect) isPrimaryKeyViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	switch serr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		// without extended result codes only the message tells them apart
		return strings.Contains(serr.Error(), "UNIQUE constraint failed")
	}
	return false
}

type sqlServerDialect struct{}

// SQL Server cannot index NVARCHAR(MAX); indexed and key columns get a bounded width.
const sqlServerKeyWidth = 450

func (sqlServerDialect) placeholder(n int) string { return fmt.Sprintf("@p%d", n) }

func (sqlServerDialect) dropTable(table string) string {
	return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NOT NULL DROP TABLE %s", table, table)
}

func (sqlServerDialect) createTable(table string, fields []models.FieldConfig) string {
	indexed := make(map[string]bool, len(models.ReviewIndexes))
	for _, idx := range models.ReviewIndexes {
		indexed[idx.Column] = true
	}

	defs := make([]string, len(fields))
	for i, f := range fields {
		var typ string
		switch f.Type {
		case models.TypeDate:
			typ = "DATE"
		case models.TypeInt:
			typ = "BIGINT"
		case models.TypeFloat:
			typ = "FLOAT"
		case models.TypeBool:
			typ = "BIT"
		default:
			if f.PrimaryKey || indexed[f.Column] {
				typ = fmt.Sprintf("NVARCHAR(%d)", sqlServerKeyWidth)
			} else {
				typ = "NVARCHAR(MAX)"
			}
		}
		defs[i] = f.Column + " " + typ
		if f.PrimaryKey {
			defs[i] += " NOT NULL PRIMARY KEY"
		}
	}
	return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NULL CREATE TABLE %s (\n\t%s\n)", table, table, strings.Join(defs, ",\n\t"))
}

func (sqlServerDialect) createIndex(table string, idx models.IndexConfig) string {
	return fmt.Sprintf(
		"IF NOT EXISTS (SELECT 1 FROM sys.indexes WHERE name = N'%s' AND object_id = OBJECT_ID(N'%s')) CREATE INDEX %s ON %s(%s)",
		idx.Name, table, idx.Name, table, idx.Column)
}

func (sqlServerDialect) dateValue(d civil.Date) interface{} { return d }

func (sqlServerDialect) isPrimaryKeyViolation(err error) bool {
	var merr mssql.Error
	if errors.As(err, &merr) {
		return merr.Number == 2627 || merr.Number == 2601
	}
	var perr *mssql.Error
	if errors.As(err, &perr) {
		return perr.Number == 2627 || perr.Number == 2601
	}
	return false
}
