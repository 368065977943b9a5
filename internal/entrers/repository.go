package entrers

import (
	"context"
	"errors"
	"hash/fnv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestistock/gestistock/internal/platform/db"
	"github.com/gestistock/gestistock/internal/shared"
)

// Tx is the write surface available inside one group-replace transaction.
type Tx interface {
	// LockNumero serializes writers of the same BL number for the duration
	// of the transaction, closing the check-then-insert race.
	LockNumero(ctx context.Context, numero string) error
	NumeroExists(ctx context.Context, numero string) (bool, error)
	DeleteByNumero(ctx context.Context, numero string) (int64, error)
	InsertLigne(ctx context.Context, in BonLivraisonInput, l LigneInput) error
}

type Repository interface {
	ListGroups(ctx context.Context) ([]BonLivraison, error)
	GroupDetails(ctx context.Context, numero string) (BonLivraison, error)
	NumeroExists(ctx context.Context, numero string) (bool, error)
	NumeroOfLigne(ctx context.Context, ligneID int64) (string, error)
	TransporteurExists(ctx context.Context, transporteurID int64) (bool, error)
	ProduitExists(ctx context.Context, produitID int64) (bool, error)
	InTx(ctx context.Context, fn func(Tx) error) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

// ligneRow is one flat ledger row joined with its carrier, before grouping.
type ligneRow struct {
	ligne            EntreeLigne
	numero           string
	transporteurID   int64
	transporteurName string
	loadDate         time.Time
	unloadDate       *time.Time
	updatedAt        time.Time
}

// aggregate folds flat rows, ordered by BL number then id, into one
// BonLivraison per number. Count and total are computed here, and the group
// timestamp is the most recent of its rows.
func aggregate(rows []ligneRow) []BonLivraison {
	var groups []BonLivraison
	for _, row := range rows {
		if n := len(groups); n > 0 && groups[n-1].Numero == row.numero {
			cur := &groups[n-1]
			cur.Lignes = append(cur.Lignes, row.ligne)
			cur.LineCount++
			cur.Total += row.ligne.PrixAchat * float64(row.ligne.Quantite)
			if row.updatedAt.After(cur.UpdatedAt) {
				cur.UpdatedAt = row.updatedAt
			}
			continue
		}
		groups = append(groups, BonLivraison{
			Numero:           row.numero,
			TransporteurID:   row.transporteurID,
			TransporteurName: row.transporteurName,
			LoadDate:         row.loadDate,
			UnloadDate:       row.unloadDate,
			UpdatedAt:        row.updatedAt,
			LineCount:        1,
			Total:            row.ligne.PrixAchat * float64(row.ligne.Quantite),
			Lignes:           []EntreeLigne{row.ligne},
		})
	}
	return groups
}

const selectLignes = `
	SELECT e.id, e.produit_id, e.produit_ref, e.prix_achat, e.quantite, e.shortage, e.offert,
	       e.bl_number, e.transporteur_id, t.driver_name, e.load_date, e.unload_date, e.updated_at
	FROM entrers e
	JOIN transporteurs t ON t.id = e.transporteur_id`

func scanLignes(rows pgx.Rows) ([]ligneRow, error) {
	defer rows.Close()

	var out []ligneRow
	for rows.Next() {
		var row ligneRow
		if err := rows.Scan(&row.ligne.ID, &row.ligne.ProduitID, &row.ligne.ProduitRef,
			&row.ligne.PrixAchat, &row.ligne.Quantite, &row.ligne.Shortage, &row.ligne.Offert,
			&row.numero, &row.transporteurID, &row.transporteurName,
			&row.loadDate, &row.unloadDate, &row.updatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) ListGroups(ctx context.Context) ([]BonLivraison, error) {
	rows, err := r.db.Query(ctx, selectLignes+` ORDER BY e.bl_number, e.id`)
	if err != nil {
		return nil, err
	}
	flat, err := scanLignes(rows)
	if err != nil {
		return nil, err
	}
	return aggregate(flat), nil
}

func (r *repository) GroupDetails(ctx context.Context, numero string) (BonLivraison, error) {
	rows, err := r.db.Query(ctx, selectLignes+` WHERE e.bl_number = $1 ORDER BY e.id`, numero)
	if err != nil {
		return BonLivraison{}, err
	}
	flat, err := scanLignes(rows)
	if err != nil {
		return BonLivraison{}, err
	}
	groups := aggregate(flat)
	if len(groups) == 0 {
		return BonLivraison{}, shared.ErrNotFound
	}
	return groups[0], nil
}

func (r *repository) NumeroExists(ctx context.Context, numero string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM entrers WHERE bl_number = $1)`, numero).Scan(&exists)
	return exists, err
}

func (r *repository) NumeroOfLigne(ctx context.Context, ligneID int64) (string, error) {
	var numero string
	err := r.db.QueryRow(ctx, `SELECT bl_number FROM entrers WHERE id = $1`, ligneID).Scan(&numero)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", shared.ErrNotFound
	}
	return numero, err
}

func (r *repository) TransporteurExists(ctx context.Context, transporteurID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM transporteurs WHERE id = $1)`, transporteurID).Scan(&exists)
	return exists, err
}

func (r *repository) ProduitExists(ctx context.Context, produitID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM produits WHERE id = $1)`, produitID).Scan(&exists)
	return exists, err
}

func (r *repository) InTx(ctx context.Context, fn func(Tx) error) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(&pgTx{tx: tx})
	})
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) LockNumero(ctx context.Context, numero string) error {
	h := fnv.New64a()
	h.Write([]byte("entrers:" + numero))
	_, err := t.tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(h.Sum64()))
	return err
}

func (t *pgTx) NumeroExists(ctx context.Context, numero string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM entrers WHERE bl_number = $1)`, numero).Scan(&exists)
	return exists, err
}

func (t *pgTx) DeleteByNumero(ctx context.Context, numero string) (int64, error) {
	tag, err := t.tx.Exec(ctx, `DELETE FROM entrers WHERE bl_number = $1`, numero)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (t *pgTx) InsertLigne(ctx context.Context, in BonLivraisonInput, l LigneInput) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO entrers (bl_number, transporteur_id, load_date, unload_date,
			produit_id, produit_ref, prix_achat, quantite, shortage, offert, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())`,
		in.Numero, in.TransporteurID, in.LoadDate, in.UnloadDate,
		l.ProduitID, l.ProduitRef, l.PrixAchat, l.Quantite, l.Shortage, l.Offert)
	return err
}
