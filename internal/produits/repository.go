package produits

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestistock/gestistock/internal/platform/db"
	"github.com/gestistock/gestistock/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Produit, error)
	Get(ctx context.Context, id int64) (Produit, error)
	Create(ctx context.Context, p Produit) (Produit, error)
	Update(ctx context.Context, id int64, p Produit) error
	Delete(ctx context.Context, id int64) error
	RefExists(ctx context.Context, ref string, excludeID int64) (bool, error)
	LabelExists(ctx context.Context, label string, excludeID int64) (bool, error)
	MarqueExists(ctx context.Context, marqueID int64) (bool, error)
	CategorieExists(ctx context.Context, categorieID int64) (bool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const selectProduit = `
	SELECT p.id, p.ref, p.label,
	       p.marque_id, m.name,
	       p.categorie_id, c.name,
	       p.prix_achat_colis, p.prix_achat_unite, p.prix_vente_colis, p.prix_vente_unite,
	       p.weight, p.units_per_case, p.is_active, p.note
	FROM produits p
	JOIN marques m ON m.id = p.marque_id
	JOIN categories c ON c.id = p.categorie_id`

func scanProduit(row pgx.Row) (Produit, error) {
	var p Produit
	err := row.Scan(&p.ID, &p.Ref, &p.Label,
		&p.MarqueID, &p.MarqueName,
		&p.CategorieID, &p.CategorieName,
		&p.PrixAchatColis, &p.PrixAchatUnite, &p.PrixVenteColis, &p.PrixVenteUnite,
		&p.Weight, &p.UnitsPerCase, &p.IsActive, &p.Note)
	return p, err
}

func (r *repository) List(ctx context.Context) ([]Produit, error) {
	rows, err := r.db.Query(ctx, selectProduit+` ORDER BY p.ref`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Produit
	for rows.Next() {
		p, err := scanProduit(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Produit, error) {
	p, err := scanProduit(r.db.QueryRow(ctx, selectProduit+` WHERE p.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Produit{}, shared.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, p Produit) (Produit, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO produits (ref, label, marque_id, categorie_id,
			prix_achat_colis, prix_achat_unite, prix_vente_colis, prix_vente_unite,
			weight, units_per_case, is_active, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		p.Ref, p.Label, p.MarqueID, p.CategorieID,
		p.PrixAchatColis, p.PrixAchatUnite, p.PrixVenteColis, p.PrixVenteUnite,
		p.Weight, p.UnitsPerCase, p.IsActive, p.Note).Scan(&p.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Produit{}, shared.ErrDuplicate
		}
		return Produit{}, err
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id int64, p Produit) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE produits
		SET ref = $1, label = $2, marque_id = $3, categorie_id = $4,
		    prix_achat_colis = $5, prix_achat_unite = $6,
		    prix_vente_colis = $7, prix_vente_unite = $8,
		    weight = $9, units_per_case = $10, is_active = $11, note = $12
		WHERE id = $13`,
		p.Ref, p.Label, p.MarqueID, p.CategorieID,
		p.PrixAchatColis, p.PrixAchatUnite, p.PrixVenteColis, p.PrixVenteUnite,
		p.Weight, p.UnitsPerCase, p.IsActive, p.Note, id)
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
	tag, err := r.db.Exec(ctx, `DELETE FROM produits WHERE id = $1`, id)
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

func (r *repository) RefExists(ctx context.Context, ref string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM produits WHERE lower(ref) = lower($1) AND id <> $2)`,
		ref, excludeID).Scan(&exists)
	return exists, err
}

func (r *repository) LabelExists(ctx context.Context, label string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM produits WHERE lower(label) = lower($1) AND id <> $2)`,
		label, excludeID).Scan(&exists)
	return exists, err
}

func (r *repository) MarqueExists(ctx context.Context, marqueID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM marques WHERE id = $1)`, marqueID).Scan(&exists)
	return exists, err
}

func (r *repository) CategorieExists(ctx context.Context, categorieID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, categorieID).Scan(&exists)
	return exists, err
}
