package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const sweetColumns = `id, name, category, price, quantity, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSweet(row rowScanner) (SweetSweet, error) {
	var i SweetSweet
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Category,
		&i.Price,
		&i.Quantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func (q *Queries) collect(rows *sql.Rows) ([]SweetSweet, error) {
	defer rows.Close()
	var items []SweetSweet
	for rows.Next() {
		i, err := scanSweet(rows)
		if err != nil {
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

const insertSweet = `-- name: InsertSweet :one
INSERT INTO sweets (id, name, category, price, quantity, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
RETURNING ` + sweetColumns

type InsertSweetParams struct {
	ID        uuid.UUID
	Name      string
	Category  string
	Price     decimal.Decimal
	Quantity  int64
	CreatedAt time.Time
}

func (q *Queries) InsertSweet(ctx context.Context, arg InsertSweetParams) (SweetSweet, error) {
	row := q.db.QueryRowContext(ctx, insertSweet,
		arg.ID,
		arg.Name,
		arg.Category,
		arg.Price,
		arg.Quantity,
		arg.CreatedAt,
	)
	return scanSweet(row)
}

const getSweetByID = `-- name: GetSweetByID :one
SELECT ` + sweetColumns + `
FROM sweets
WHERE id = $1`

func (q *Queries) GetSweetByID(ctx context.Context, id uuid.UUID) (SweetSweet, error) {
	return scanSweet(q.db.QueryRowContext(ctx, getSweetByID, id))
}

const listSweets = `-- name: ListSweets :many
SELECT ` + sweetColumns + `
FROM sweets
ORDER BY seq`

func (q *Queries) ListSweets(ctx context.Context) ([]SweetSweet, error) {
	rows, err := q.db.QueryContext(ctx, listSweets)
	if err != nil {
		return nil, err
	}
	return q.collect(rows)
}

const searchSweets = `-- name: SearchSweets :many
SELECT ` + sweetColumns + `
FROM sweets
WHERE ($1::text = '' OR name ILIKE '%' || $1::text || '%')
  AND ($2::text = '' OR lower(category) = lower($2::text))
ORDER BY seq`

type SearchSweetsParams struct {
	NamePattern string // LIKE-escaped substring
	Category    string
}

func (q *Queries) SearchSweets(ctx context.Context, arg SearchSweetsParams) ([]SweetSweet, error) {
	rows, err := q.db.QueryContext(ctx, searchSweets, arg.NamePattern, arg.Category)
	if err != nil {
		return nil, err
	}
	return q.collect(rows)
}

const addQuantity = `-- name: AddQuantity :one
UPDATE sweets
SET quantity = quantity + $2, updated_at = $3
WHERE id = $1 AND quantity + $2 >= 0
RETURNING ` + sweetColumns

type AddQuantityParams struct {
	ID        uuid.UUID
	Delta     int64
	UpdatedAt time.Time
}

// AddQuantity returns sql.ErrNoRows when the sweet is absent or the delta would
// take the quantity below zero.
func (q *Queries) AddQuantity(ctx context.Context, arg AddQuantityParams) (SweetSweet, error) {
	return scanSweet(q.db.QueryRowContext(ctx, addQuantity, arg.ID, arg.Delta, arg.UpdatedAt))
}

const updateDetails = `-- name: UpdateDetails :one
UPDATE sweets
SET name = $2, category = $3, price = $4, updated_at = $5
WHERE id = $1
RETURNING ` + sweetColumns

type UpdateDetailsParams struct {
	ID        uuid.UUID
	Name      string
	Category  string
	Price     decimal.Decimal
	UpdatedAt time.Time
}

func (q *Queries) UpdateDetails(ctx context.Context, arg UpdateDetailsParams) (SweetSweet, error) {
	row := q.db.QueryRowContext(ctx, updateDetails,
		arg.ID,
		arg.Name,
		arg.Category,
		arg.Price,
		arg.UpdatedAt,
	)
	return scanSweet(row)
}

const deleteSweet = `-- name: DeleteSweet :execrows
DELETE FROM sweets
WHERE id = $1`

func (q *Queries) DeleteSweet(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteSweet, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const sweetExists = `-- name: SweetExists :one
SELECT EXISTS(SELECT 1 FROM sweets WHERE id = $1)`

func (q *Queries) SweetExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, sweetExists, id).Scan(&exists)
	return exists, err
}
