package villes

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestistock/gestistock/internal/platform/db"
	"github.com/gestistock/gestistock/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Ville, error)
	Get(ctx context.Context, id int64) (Ville, error)
	Create(ctx context.Context, ville Ville) (Ville, error)
	Update(ctx context.Context, id int64, ville Ville) error
	Delete(ctx context.Context, id int64) error
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Ville, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM villes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var villes []Ville
	for rows.Next() {
		var v Ville
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, err
		}
		villes = append(villes, v)
	}
	return villes, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Ville, error) {
	var v Ville
	err := r.db.QueryRow(ctx, `SELECT id, name FROM villes WHERE id = $1`, id).Scan(&v.ID, &v.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Ville{}, shared.ErrNotFound
	}
	return v, err
}

func (r *repository) Create(ctx context.Context, ville Ville) (Ville, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO villes (name) VALUES ($1) RETURNING id`, ville.Name).Scan(&ville.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Ville{}, shared.ErrDuplicate
		}
		return Ville{}, err
	}
	return ville, nil
}

func (r *repository) Update(ctx context.Context, id int64, ville Ville) error {
	tag, err := r.db.Exec(ctx, `UPDATE villes SET name = $1 WHERE id = $2`, ville.Name, id)
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
	tag, err := r.db.Exec(ctx, `DELETE FROM villes WHERE id = $1`, id)
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
		`SELECT EXISTS (SELECT 1 FROM villes WHERE lower(name) = lower($1) AND id <> $2)`,
		name, excludeID).Scan(&exists)
	return exists, err
}
