package secteurs

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestistock/gestistock/internal/platform/db"
	"github.com/gestistock/gestistock/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Secteur, error)
	ListByVille(ctx context.Context, villeID int64) ([]Secteur, error)
	Get(ctx context.Context, id int64) (Secteur, error)
	Create(ctx context.Context, secteur Secteur) (Secteur, error)
	Update(ctx context.Context, id int64, secteur Secteur) error
	Delete(ctx context.Context, id int64) error
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	VilleExists(ctx context.Context, villeID int64) (bool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Secteur, error) {
	const query = `
		SELECT s.id, s.name, s.ville_id, v.name
		FROM secteurs s
		JOIN villes v ON v.id = s.ville_id
		ORDER BY v.name, s.name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSecteurs(rows)
}

func (r *repository) ListByVille(ctx context.Context, villeID int64) ([]Secteur, error) {
	const query = `
		SELECT s.id, s.name, s.ville_id, v.name
		FROM secteurs s
		JOIN villes v ON v.id = s.ville_id
		WHERE s.ville_id = $1
		ORDER BY s.name`
	rows, err := r.db.Query(ctx, query, villeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSecteurs(rows)
}

func (r *repository) Get(ctx context.Context, id int64) (Secteur, error) {
	var s Secteur
	err := r.db.QueryRow(ctx,
		`SELECT id, name, ville_id FROM secteurs WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.VilleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Secteur{}, shared.ErrNotFound
	}
	return s, err
}

func (r *repository) Create(ctx context.Context, secteur Secteur) (Secteur, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO secteurs (name, ville_id) VALUES ($1, $2) RETURNING id`,
		secteur.Name, secteur.VilleID).Scan(&secteur.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Secteur{}, shared.ErrDuplicate
		}
		return Secteur{}, err
	}
	return secteur, nil
}

func (r *repository) Update(ctx context.Context, id int64, secteur Secteur) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE secteurs SET name = $1, ville_id = $2 WHERE id = $3`,
		secteur.Name, secteur.VilleID, id)
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
	tag, err := r.db.Exec(ctx, `DELETE FROM secteurs WHERE id = $1`, id)
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
		`SELECT EXISTS (SELECT 1 FROM secteurs WHERE lower(name) = lower($1) AND id <> $2)`,
		name, excludeID).Scan(&exists)
	return exists, err
}

func (r *repository) VilleExists(ctx context.Context, villeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM villes WHERE id = $1)`, villeID).Scan(&exists)
	return exists, err
}

func scanSecteurs(rows pgx.Rows) ([]Secteur, error) {
	var secteurs []Secteur
	for rows.Next() {
		var s Secteur
		if err := rows.Scan(&s.ID, &s.Name, &s.VilleID, &s.VilleName); err != nil {
			return nil, err
		}
		secteurs = append(secteurs, s)
	}
	return secteurs, rows.Err()
}
