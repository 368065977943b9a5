package clients

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

func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Client, error) {
	if id <= 0 {
		return Client{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, c Client) (Client, error) {
	c = normalize(c)
	if err := s.validate(ctx, c, 0); err != nil {
		return Client{}, err
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, id int64, c Client) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	c = normalize(c)
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

// normalize runs before validation: an unset commercial arrives as a nil or
// zero ID and must be stored as NULL, never as 0.
func normalize(c Client) Client {
	c.Code = strings.TrimSpace(c.Code)
	c.FullName = strings.TrimSpace(c.FullName)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	if c.CommercialID != nil && *c.CommercialID <= 0 {
		c.CommercialID = nil
	}
	return c
}

func (s *Service) validate(ctx context.Context, c Client, excludeID int64) error {
	verr := shared.ValidateStruct(c)
	if verr.Any() {
		return verr
	}

	taken, err := s.repo.CodeExists(ctx, c.Code, excludeID)
	if err != nil {
		return err
	}
	if taken {
		verr.Add("code", "Ce code client est déjà utilisé")
	}
	taken, err = s.repo.FullNameExists(ctx, c.FullName, excludeID)
	if err != nil {
		return err
	}
	if taken {
		verr.Add("full_name", "Un client porte déjà ce nom")
	}

	ok, err := s.repo.VilleExists(ctx, c.VilleID)
	if err != nil {
		return err
	}
	if !ok {
		verr.Add("ville_id", "La ville sélectionnée n'existe pas")
	} else {
		ok, err = s.repo.SecteurInVille(ctx, c.SecteurID, c.VilleID)
		if err != nil {
			return err
		}
		if !ok {
			verr.Add("secteur_id", "Le secteur sélectionné n'appartient pas à cette ville")
		}
	}

	if c.CommercialID != nil {
		ok, err = s.repo.CommercialExists(ctx, *c.CommercialID)
		if err != nil {
			return err
		}
		if !ok {
			verr.Add("commercial_id", "Le commercial sélectionné n'existe pas")
		}
	}
	return verr.ErrIfAny()
}
