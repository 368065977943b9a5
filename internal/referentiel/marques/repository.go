package marques

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestistock/gestistock/internal/platform/db"
	"github.com/gestistock/gestistock/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Marque, error)
	Get(ctx context.Context, id int64) (Marque, error)
	Create(ctx context.Context, marque Marque) (Marque, error)
	Update(ctx context.Context, id int64, marque Marque) error
	Delete(ctx context.Context, id int64) error
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Marque, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM marques ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marques []Marque
	for rows.Next() {
		var m Marque
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		marques = append(marques, m)
	}
	return marques, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Marque, error) {
	var m Marque
	err := r.db.QueryRow(ctx, `SELECT id, name FROM marques WHERE id = $1`, id).Scan(&m.ID, &m.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Marque{}, shared.ErrNotFound
	}
	return m, err
}

func (r *repository) Create(ctx context.Context, marque Marque) (Marque, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO marques (name) VALUES ($1) RETURNING id`, marque.Name).Scan(&marque.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Marque{}, shared.ErrDuplicate
		}
		return Marque{}, err
	}
	return marque, nil
}

func (r *repository) Update(ctx context.Context, id int64, marque Marque) error {
	tag, err := r.db.Exec(ctx, `UPDATE marques SET name = $1 WHERE id = $2`, marque.Name, id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return shared.ErrDuplicate
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM marques WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return shared.ErrInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM marques WHERE lower(name) = lower($1) AND id <> $2)`,
		name, excludeID).Scan(&exists)
	return exists, err
}
