package storage

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{
		db: tx,
	}
}

type Revenue struct {
	Date    string
	Revenue int64
}

const countRevenue = `-- name: CountRevenue :one
SELECT COUNT(*) FROM revenue
`

func (q *Queries) CountRevenue(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countRevenue)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteAllRevenue = `-- name: DeleteAllRevenue :execrows
DELETE FROM revenue
`

func (q *Queries) DeleteAllRevenue(ctx context.Context) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteAllRevenue)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const insertRevenue = `-- name: InsertRevenue :exec
INSERT INTO revenue (Date, Revenue) VALUES (?, ?)
`

type InsertRevenueParams struct {
	Date    string
	Revenue int64
}

func (q *Queries) InsertRevenue(ctx context.Context, arg InsertRevenueParams) error {
	_, err := q.db.ExecContext(ctx, insertRevenue, arg.Date, arg.Revenue)
	return err
}

const listRevenue = `-- name: ListRevenue :many
SELECT Date, Revenue FROM revenue
ORDER BY Date ASC
`

func (q *Queries) ListRevenue(ctx context.Context) ([]Revenue, error) {
	rows, err := q.db.QueryContext(ctx, listRevenue)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Revenue
	for rows.Next() {
		var i Revenue
		if err := rows.Scan(&i.Date, &i.Revenue); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
