package clients

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestistock/gestistock/internal/platform/db"
	"github.com/gestistock/gestistock/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Client, error)
	Get(ctx context.Context, id int64) (Client, error)
	Create(ctx context.Context, c Client) (Client, error)
	Update(ctx context.Context, id int64, c Client) error
	Delete(ctx context.Context, id int64) error
	CodeExists(ctx context.Context, code string, excludeID int64) (bool, error)
	FullNameExists(ctx context.Context, fullName string, excludeID int64) (bool, error)
	VilleExists(ctx context.Context, villeID int64) (bool, error)
	SecteurInVille(ctx context.Context, secteurID, villeID int64) (bool, error)
	CommercialExists(ctx context.Context, commercialID int64) (bool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const selectClient = `
	SELECT c.id, c.code, c.full_name, c.phone,
	       c.ville_id, v.name,
	       c.secteur_id, s.name,
	       c.commercial_id, COALESCE(cm.full_name, ''),
	       c.remise, c.remise_speciale, c.is_active, c.address
	FROM clients c
	JOIN villes v ON v.id = c.ville_id
	JOIN secteurs s ON s.id = c.secteur_id
	LEFT JOIN commerciaux cm ON cm.id = c.commercial_id`

func scanClient(row pgx.Row) (Client, error) {
	var c Client
	err := row.Scan(&c.ID, &c.Code, &c.FullName, &c.Phone,
		&c.VilleID, &c.VilleName,
		&c.SecteurID, &c.SecteurName,
		&c.CommercialID, &c.CommercialName,
		&c.Remise, &c.RemiseSpeciale, &c.IsActive, &c.Address)
	return c, err
}

func (r *repository) List(ctx context.Context) ([]Client, error) {
	rows, err := r.db.Query(ctx, selectClient+` ORDER BY c.code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Client, error) {
	c, err := scanClient(r.db.QueryRow(ctx, selectClient+` WHERE c.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Client{}, shared.ErrNotFound
	}
	return c, err
}

func (r *repository) Create(ctx context.Context, c Client) (Client, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO clients (code, full_name, phone, ville_id, secteur_id, commercial_id, remise, remise_speciale, is_active, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		c.Code, c.FullName, c.Phone, c.VilleID, c.SecteurID, c.CommercialID, c.Remise, c.RemiseSpeciale, c.IsActive, c.Address).
		Scan(&c.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Client{}, shared.ErrDuplicate
		}
		return Client{}, err
	}
	return c, nil
}

func (r *repository) Update(ctx context.Context, id int64, c Client) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE clients
		SET code = $1, full_name = $2, phone = $3, ville_id = $4, secteur_id = $5,
		    commercial_id = $6, remise = $7, remise_speciale = $8, is_active = $9, address = $10
		WHERE id = $11`,
		c.Code, c.FullName, c.Phone, c.VilleID, c.SecteurID, c.CommercialID, c.Remise, c.RemiseSpeciale, c.IsActive, c.Address, id)
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
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
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

func (r *repository) CodeExists(ctx context.Context, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM clients WHERE lower(code) = lower($1) AND id <> $2)`,
		code, excludeID).Scan(&exists)
	return exists, err
}

func (r *repository) FullNameExists(ctx context.Context, fullName string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM clients WHERE lower(full_name) = lower($1) AND id <> $2)`,
		fullName, excludeID).Scan(&exists)
	return exists, err
}

func (r *repository) VilleExists(ctx context.Context, villeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM villes WHERE id = $1)`, villeID).Scan(&exists)
	return exists, err
}

func (r *repository) SecteurInVille(ctx context.Context, secteurID, villeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM secteurs WHERE id = $1 AND ville_id = $2)`,
		secteurID, villeID).Scan(&exists)
	return exists, err
}

func (r *repository) CommercialExists(ctx context.Context, commercialID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM commerciaux WHERE id = $1)`, commercialID).Scan(&exists)
	return exists, err
}
