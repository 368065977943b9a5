package livreurs

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestistock/gestistock/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Livreur, error)
	Get(ctx context.Context, id int64) (Livreur, error)
	Create(ctx context.Context, l Livreur) (Livreur, error)
	Update(ctx context.Context, id int64, l Livreur) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Livreur, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, phone FROM livreurs ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Livreur
	for rows.Next() {
		var l Livreur
		if err := rows.Scan(&l.ID, &l.Name, &l.Phone); err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Livreur, error) {
	var l Livreur
	err := r.db.QueryRow(ctx, `SELECT id, name, phone FROM livreurs WHERE id = $1`, id).
		Scan(&l.ID, &l.Name, &l.Phone)
	if errors.Is(err, pgx.ErrNoRows) {
		return Livreur{}, shared.ErrNotFound
	}
	return l, err
}

func (r *repository) Create(ctx context.Context, l Livreur) (Livreur, error) {
	err := r.db.QueryRow(ctx, `INSERT INTO livreurs (name, phone) VALUES ($1, $2) RETURNING id`,
		l.Name, l.Phone).Scan(&l.ID)
	if err != nil {
		return Livreur{}, err
	}
	return l, nil
}

func (r *repository) Update(ctx context.Context, id int64, l Livreur) error {
	tag, err := r.db.Exec(ctx, `UPDATE livreurs SET name = $1, phone = $2 WHERE id = $3`,
		l.Name, l.Phone, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM livreurs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
