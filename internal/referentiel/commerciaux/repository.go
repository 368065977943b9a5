package commerciaux

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestistock/gestistock/internal/platform/db"
	"github.com/gestistock/gestistock/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Commercial, error)
	Get(ctx context.Context, id int64) (Commercial, error)
	Create(ctx context.Context, c Commercial) (Commercial, error)
	Update(ctx context.Context, id int64, c Commercial) error
	Delete(ctx context.Context, id int64) error
	CodeExists(ctx context.Context, code string, excludeID int64) (bool, error)
	PhoneExists(ctx context.Context, phone string, excludeID int64) (bool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const columns = `id, code, full_name, phone, is_active`

func (r *repository) List(ctx context.Context) ([]Commercial, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM commerciaux ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Commercial
	for rows.Next() {
		var c Commercial
		if err := rows.Scan(&c.ID, &c.Code, &c.FullName, &c.Phone, &c.IsActive); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Commercial, error) {
	var c Commercial
	err := r.db.QueryRow(ctx, `SELECT `+columns+` FROM commerciaux WHERE id = $1`, id).
		Scan(&c.ID, &c.Code, &c.FullName, &c.Phone, &c.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return Commercial{}, shared.ErrNotFound
	}
	return c, err
}

func (r *repository) Create(ctx context.Context, c Commercial) (Commercial, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO commerciaux (code, full_name, phone, is_active)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		c.Code, c.FullName, c.Phone, c.IsActive).Scan(&c.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Commercial{}, shared.ErrDuplicate
		}
		return Commercial{}, err
	}
	return c, nil
}

func (r *repository) Update(ctx context.Context, id int64, c Commercial) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE commerciaux SET code = $1, full_name = $2, phone = $3, is_active = $4
		WHERE id = $5`,
		c.Code, c.FullName, c.Phone, c.IsActive, id)
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
	tag, err := r.db.Exec(ctx, `DELETE FROM commerciaux WHERE id = $1`, id)
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
		`SELECT EXISTS (SELECT 1 FROM commerciaux WHERE lower(code) = lower($1) AND id <> $2)`,
		code, excludeID).Scan(&exists)
	return exists, err
}

func (r *repository) PhoneExists(ctx context.Context, phone string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM commerciaux WHERE phone = $1 AND id <> $2)`,
		phone, excludeID).Scan(&exists)
	return exists, err
}
