package transporteurs

import (
	"context"
	"strings"

	"github.com/gestistock/gestistock/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Transporteur, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Transporteur, error) {
	if id <= 0 {
		return Transporteur{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, t Transporteur) (Transporteur, error) {
	t = trim(t)
	if err := s.validate(ctx, t, 0); err != nil {
		return Transporteur{}, err
	}
	return s.repo.Create(ctx, t)
}

func (s *Service) Update(ctx context.Context, id int64, t Transporteur) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	t = trim(t)
	if err := s.validate(ctx, t, id); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, t)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func trim(t Transporteur) Transporteur {
	t.DriverName = strings.TrimSpace(t.DriverName)
	t.VehiclePlate = strings.TrimSpace(t.VehiclePlate)
	t.DriverNationalID = strings.TrimSpace(t.DriverNationalID)
	t.DriverPhone = strings.TrimSpace(t.DriverPhone)
	t.VehicleType = strings.TrimSpace(t.VehicleType)
	return t
}

func (s *Service) validate(ctx context.Context, t Transporteur, excludeID int64) error {
	verr := shared.ValidateStruct(t)
	if verr.Any() {
		return verr
	}

	taken, err := s.repo.PlateExists(ctx, t.VehiclePlate, excludeID)
	if err != nil {
		return err
	}
	if taken {
		verr.Add("vehicle_plate", "Cette matricule est déjà enregistrée")
	}
	taken, err = s.repo.NationalIDExists(ctx, t.DriverNationalID, excludeID)
	if err != nil {
		return err
	}
	if taken {
		verr.Add("driver_national_id", "Cette CIN est déjà enregistrée")
	}
	return verr.ErrIfAny()
}
