package etl

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-sql/civil"

	"github.com/BartekS5/review-etl/pkg/database"
	"github.com/BartekS5/review-etl/pkg/logger"
	"github.com/BartekS5/review-etl/pkg/models"
	"github.com/BartekS5/review-etl/pkg/utils"
)

// SQLLoader writes the review table into a SQL database using drop-and-reload
// semantics: every Load discards the previous contents of the table and
// writes the new rows. It is not an upsert and must not be used for
// incremental loads.
//
// Everything after validation runs in one transaction, so a failed load
// leaves the previous contents in place.
type SQLLoader struct {
	Driver  string
	DSN     string
	Table   string
	Timeout time.Duration

	dialect   dialect
	validator *Validator
}

// NewSQLLoader returns a loader for driver ("sqlite" or "sqlserver"). For
// SQLite the DSN is the database file path.
func NewSQLLoader(driver, dsn string, timeout time.Duration) (*SQLLoader, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	return &SQLLoader{
		Driver:    driver,
		DSN:       dsn,
		Table:     models.TableName,
		Timeout:   timeout,
		dialect:   d,
		validator: NewValidator("load"),
	}, nil
}

// Load replaces the table contents with data and returns the number of rows written.
func (l *SQLLoader) Load(ctx context.Context, data *models.Table) (int, error) {
	if err := l.validator.ValidateUniqueIDs(data); err != nil {
		return 0, err
	}

	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	logger.Infof("Creating table %s and loading %d rows into %s", l.Table, data.Len(), l.Driver)

	db, err := database.ConnectSQL(ctx, l.Driver, l.DSN)
	if err != nil {
		return 0, &StorageError{Op: "open", Err: err}
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &StorageError{Op: "begin", Err: err}
	}

	n, err := l.write(ctx, tx, data)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Errorf("Rollback failed: %v", rbErr)
		}
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, &StorageError{Op: "commit", Err: err}
	}

	logger.Infof("Data successfully loaded into %s (%d rows)", l.Table, n)
	return n, nil
}

func (l *SQLLoader) write(ctx context.Context, tx *sql.Tx, data *models.Table) (int, error) {
	if _, err := tx.ExecContext(ctx, l.dialect.dropTable(l.Table)); err != nil {
		return 0, &StorageError{Op: "drop table", Err: err}
	}
	if _, err := tx.ExecContext(ctx, l.dialect.createTable(l.Table, models.ReviewFields)); err != nil {
		return 0, &StorageError{Op: "create table", Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, l.insertQuery())
	if err != nil {
		return 0, &StorageError{Op: "prepare insert", Err: err}
	}
	defer stmt.Close()

	var coerced int
	args := make([]interface{}, len(models.ReviewFields))
	for _, row := range data.Rows {
		for i, f := range models.ReviewFields {
			v, err := utils.ConvertToSQLType(row[f.Column], f)
			if err != nil {
				coerced++
				v = nil
			}
			if d, ok := v.(civil.Date); ok {
				v = l.dialect.dateValue(d)
			}
			args[i] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			if l.dialect.isPrimaryKeyViolation(err) {
				return 0, &ConstraintError{ReviewID: utils.ConvertToString(row[models.ColReviewID]), Err: err}
			}
			return 0, &StorageError{Op: "insert", Err: err}
		}
	}
	if coerced > 0 {
		logger.Warnf("%d values did not match their column type and were stored as NULL", coerced)
	}

	for _, idx := range models.ReviewIndexes {
		if _, err := tx.ExecContext(ctx, l.dialect.createIndex(l.Table, idx)); err != nil {
			return 0, &StorageError{Op: "create index " + idx.Name, Err: err}
		}
	}
	return data.Len(), nil
}

func (l *SQLLoader) insertQuery() string {
	cols := make([]string, len(models.ReviewFields))
	placeholders := make([]string, len(models.ReviewFields))
	for i, f := range models.ReviewFields {
		cols[i] = f.Column
		placeholders[i] = l.dialect.placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		l.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
}
