// Package sqlxrepos implements the core repositories on top of sqlx and squirrel. Every method runs on the
// executor it is handed, so callers decide what runs inside a transaction.
package sqlxrepos

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/saraswati/sdms/core"
)

// builder returns a statement builder using the placeholders of the executor's driver.
func builder(exec core.DBExecutor) sq.StatementBuilderType {
	if exec.DriverName() == "postgres" {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// insertReturningID runs an INSERT ... RETURNING <idColumn>.
func insertReturningID(ctx context.Context, exec core.DBExecutor, q sq.InsertBuilder, idColumn string) (int, error) {
	stmt, args, err := q.Suffix("RETURNING " + idColumn).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "building insert")
	}
	var id int
	if err = exec.QueryRowxContext(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func get(ctx context.Context, exec core.DBExecutor, dest interface{}, q sq.SelectBuilder) error {
	stmt, args, err := q.ToSql()
	if err != nil {
		return errors.Wrap(err, "building select")
	}
	if err = exec.GetContext(ctx, dest, stmt, args...); err != nil {
		if err == sql.ErrNoRows {
			return core.ErrNotFound
		}
		return err
	}
	return nil
}

func selectAll(ctx context.Context, exec core.DBExecutor, dest interface{}, q sq.SelectBuilder) error {
	stmt, args, err := q.ToSql()
	if err != nil {
		return errors.Wrap(err, "building select")
	}
	return exec.SelectContext(ctx, dest, stmt, args...)
}

func execAffecting(ctx context.Context, exec core.DBExecutor, q sq.Sqlizer) (int64, error) {
	stmt, args, err := q.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "building statement")
	}
	res, err := exec.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
