package commerciaux

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

func (s *Service) List(ctx context.Context) ([]Commercial, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Commercial, error) {
	if id <= 0 {
		return Commercial{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, c Commercial) (Commercial, error) {
	c = trim(c)
	if err := s.validate(ctx, c, 0); err != nil {
		return Commercial{}, err
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, id int64, c Commercial) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	c = trim(c)
	if err := s.validate(ctx, c, id); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, c)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func trim(c Commercial) Commercial {
	c.Code = strings.TrimSpace(c.Code)
	c.FullName = strings.TrimSpace(c.FullName)
	c.Phone = strings.TrimSpace(c.Phone)
	return c
}

func (s *Service) validate(ctx context.Context, c Commercial, excludeID int64) error {
	verr := shared.ValidateStruct(c)
	if c.Phone != "" && !validPhone(c.Phone) {
		verr.Add("phone", "Le numéro de téléphone doit être un numéro marocain valide (ex : 0612345678)")
	}
	if verr.Any() {
		return verr
	}

	taken, err := s.repo.CodeExists(ctx, c.Code, excludeID)
	if err != nil {
		return err
	}
	if taken {
		verr.Add("code", "Ce code est déjà utilisé par un autre commercial")
	}
	taken, err = s.repo.PhoneExists(ctx, c.Phone, excludeID)
	if err != nil {
		return err
	}
	if taken {
		verr.Add("phone", "Ce numéro de téléphone est déjà utilisé")
	}
	return verr.ErrIfAny()
}
