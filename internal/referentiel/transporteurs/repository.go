package transporteurs

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestistock/gestistock/internal/platform/db"
	"github.com/gestistock/gestistock/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Transporteur, error)
	Get(ctx context.Context, id int64) (Transporteur, error)
	Create(ctx context.Context, t Transporteur) (Transporteur, error)
	Update(ctx context.Context, id int64, t Transporteur) error
	Delete(ctx context.Context, id int64) error
	PlateExists(ctx context.Context, plate string, excludeID int64) (bool, error)
	NationalIDExists(ctx context.Context, cin string, excludeID int64) (bool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const columns = `id, driver_name, vehicle_plate, driver_national_id, driver_phone, vehicle_type`

func (r *repository) List(ctx context.Context) ([]Transporteur, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM transporteurs ORDER BY driver_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Transporteur
	for rows.Next() {
		var t Transporteur
		if err := rows.Scan(&t.ID, &t.DriverName, &t.VehiclePlate, &t.DriverNationalID, &t.DriverPhone, &t.VehicleType); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Transporteur, error) {
	var t Transporteur
	err := r.db.QueryRow(ctx, `SELECT `+columns+` FROM transporteurs WHERE id = $1`, id).
		Scan(&t.ID, &t.DriverName, &t.VehiclePlate, &t.DriverNationalID, &t.DriverPhone, &t.VehicleType)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transporteur{}, shared.ErrNotFound
	}
	return t, err
}

func (r *repository) Create(ctx context.Context, t Transporteur) (Transporteur, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO transporteurs (driver_name, vehicle_plate, driver_national_id, driver_phone, vehicle_type)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		t.DriverName, t.VehiclePlate, t.DriverNationalID, t.DriverPhone, t.VehicleType).Scan(&t.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Transporteur{}, shared.ErrDuplicate
		}
		return Transporteur{}, err
	}
	return t, nil
}

func (r *repository) Update(ctx context.Context, id int64, t Transporteur) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE transporteurs
		SET driver_name = $1, vehicle_plate = $2, driver_national_id = $3, driver_phone = $4, vehicle_type = $5
		WHERE id = $6`,
		t.DriverName, t.VehiclePlate, t.DriverNationalID, t.DriverPhone, t.VehicleType, id)
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
	tag, err := r.db.Exec(ctx, `DELETE FROM transporteurs WHERE id = $1`, id)
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

func (r *repository) PlateExists(ctx context.Context, plate string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM transporteurs WHERE lower(vehicle_plate) = lower($1) AND id <> $2)`,
		plate, excludeID).Scan(&exists)
	return exists, err
}

func (r *repository) NationalIDExists(ctx context.Context, cin string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM transporteurs WHERE lower(driver_national_id) = lower($1) AND id <> $2)`,
		cin, excludeID).Scan(&exists)
	return exists, err
}
