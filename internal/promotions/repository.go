package promotions

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestistock/gestistock/internal/platform/db"
	"github.com/gestistock/gestistock/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Promotion, error)
	Get(ctx context.Context, id int64) (Promotion, error)
	Create(ctx context.Context, p Promotion) (Promotion, error)
	Update(ctx context.Context, id int64, p Promotion) error
	Delete(ctx context.Context, id int64) error
	FindActiveByProductRef(ctx context.Context, ref string) (Promotion, error)
	ProductPromotionExists(ctx context.Context, produitID, excludeID int64) (bool, error)
	ProduitExists(ctx context.Context, produitID int64) (bool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const selectPromotion = `
	SELECT pr.id, pr.produit_id, p.ref, p.label,
	       pr.offered_produit_id, op.ref, op.label,
	       pr.buy_quantity, pr.free_quantity, pr.is_active
	FROM promotions pr
	JOIN produits p ON p.id = pr.produit_id
	JOIN produits op ON op.id = pr.offered_produit_id`

func scanPromotion(row pgx.Row) (Promotion, error) {
	var p Promotion
	err := row.Scan(&p.ID, &p.ProduitID, &p.ProduitRef, &p.ProduitLabel,
		&p.OfferedProduitID, &p.OfferedProduitRef, &p.OfferedProduitLabel,
		&p.BuyQuantity, &p.FreeQuantity, &p.IsActive)
	return p, err
}

func (r *repository) List(ctx context.Context) ([]Promotion, error) {
	rows, err := r.db.Query(ctx, selectPromotion+` ORDER BY p.ref`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Promotion, error) {
	p, err := scanPromotion(r.db.QueryRow(ctx, selectPromotion+` WHERE pr.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Promotion{}, shared.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, p Promotion) (Promotion, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO promotions (produit_id, offered_produit_id, buy_quantity, free_quantity, is_active)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		p.ProduitID, p.OfferedProduitID, p.BuyQuantity, p.FreeQuantity, p.IsActive).Scan(&p.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Promotion{}, shared.ErrDuplicate
		}
		return Promotion{}, err
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id int64, p Promotion) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE promotions
		SET produit_id = $1, offered_produit_id = $2, buy_quantity = $3, free_quantity = $4, is_active = $5
		WHERE id = $6`,
		p.ProduitID, p.OfferedProduitID, p.BuyQuantity, p.FreeQuantity, p.IsActive, id)
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
	tag, err := r.db.Exec(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) FindActiveByProductRef(ctx context.Context, ref string) (Promotion, error) {
	p, err := scanPromotion(r.db.QueryRow(ctx,
		selectPromotion+` WHERE lower(p.ref) = lower($1) AND pr.is_active`, ref))
	if errors.Is(err, pgx.ErrNoRows) {
		return Promotion{}, shared.ErrNotFound
	}
	return p, err
}

func (r *repository) ProductPromotionExists(ctx context.Context, produitID, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM promotions WHERE produit_id = $1 AND id <> $2)`,
		produitID, excludeID).Scan(&exists)
	return exists, err
}

func (r *repository) ProduitExists(ctx context.Context, produitID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM produits WHERE id = $1)`, produitID).Scan(&exists)
	return exists, err
}
