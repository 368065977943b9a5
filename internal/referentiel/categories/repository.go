package categories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestistock/gestistock/internal/platform/db"
	"github.com/gestistock/gestistock/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Categorie, error)
	Get(ctx context.Context, id int64) (Categorie, error)
	Create(ctx context.Context, categorie Categorie) (Categorie, error)
	Update(ctx context.Context, id int64, categorie Categorie) error
	Delete(ctx context.Context, id int64) error
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	MarqueExists(ctx context.Context, marqueID int64) (bool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Categorie, error) {
	const query = `
		SELECT c.id, c.name, c.marque_id, m.name
		FROM categories c
		JOIN marques m ON m.id = c.marque_id
		ORDER BY m.name, c.name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []Categorie
	for rows.Next() {
		var c Categorie
		if err := rows.Scan(&c.ID, &c.Name, &c.MarqueID, &c.MarqueName); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Categorie, error) {
	var c Categorie
	err := r.db.QueryRow(ctx,
		`SELECT id, name, marque_id FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.MarqueID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Categorie{}, shared.ErrNotFound
	}
	return c, err
}

func (r *repository) Create(ctx context.Context, categorie Categorie) (Categorie, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO categories (name, marque_id) VALUES ($1, $2) RETURNING id`,
		categorie.Name, categorie.MarqueID).Scan(&categorie.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Categorie{}, shared.ErrDuplicate
		}
		return Categorie{}, err
	}
	return categorie, nil
}

func (r *repository) Update(ctx context.Context, id int64, categorie Categorie) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE categories SET name = $1, marque_id = $2 WHERE id = $3`,
		categorie.Name, categorie.MarqueID, id)
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
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
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
		`SELECT EXISTS (SELECT 1 FROM categories WHERE lower(name) = lower($1) AND id <> $2)`,
		name, excludeID).Scan(&exists)
	return exists, err
}

func (r *repository) MarqueExists(ctx context.Context, marqueID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM marques WHERE id = $1)`, marqueID).Scan(&exists)
	return exists, err
}
