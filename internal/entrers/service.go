package entrers

import (
	"context"
	"sort"
	"strings"

	"github.com/gestistock/gestistock/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]BonLivraison, error) {
	return s.repo.ListGroups(ctx)
}

func (s *Service) Details(ctx context.Context, numero string) (BonLivraison, error) {
	numero = strings.TrimSpace(numero)
	if numero == "" {
		return BonLivraison{}, shared.ErrNotFound
	}
	return s.repo.GroupDetails(ctx, numero)
}

func (s *Service) NumeroExists(ctx context.Context, numero string) (bool, error) {
	numero = strings.TrimSpace(numero)
	if numero == "" {
		return false, nil
	}
	return s.repo.NumeroExists(ctx, numero)
}

// Create inserts one row per submitted line, all stamped with the new BL
// number. The whole group lands in a single transaction; the advisory lock
// plus in-transaction existence check makes the number uniqueness atomic.
// Returns the number of lines created.
func (s *Service) Create(ctx context.Context, in BonLivraisonInput) (int, error) {
	in = normalize(in)
	if err := s.validate(ctx, in); err != nil {
		return 0, err
	}

	err := s.repo.InTx(ctx, func(tx Tx) error {
		if err := tx.LockNumero(ctx, in.Numero); err != nil {
			return err
		}
		exists, err := tx.NumeroExists(ctx, in.Numero)
		if err != nil {
			return err
		}
		if exists {
			verr := shared.NewValidationError()
			verr.Add("numero", "Ce numéro de BL existe déjà")
			return verr
		}
		for _, l := range in.Lignes {
			if err := tx.InsertLigne(ctx, in, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(in.Lignes), nil
}

// Update replaces a whole BL group: every row carrying the original number is
// deleted and the submitted lines are inserted fresh under the (possibly
// changed) new number, inside one transaction. Uniqueness of the new number
// is only checked when it actually changed. Returns the number of lines the
// group now holds.
func (s *Service) Update(ctx context.Context, originalNumero string, in BonLivraisonInput) (int, error) {
	originalNumero = strings.TrimSpace(originalNumero)
	if originalNumero == "" {
		return 0, shared.ErrNotFound
	}
	in = normalize(in)
	if err := s.validate(ctx, in); err != nil {
		return 0, err
	}

	renamed := in.Numero != originalNumero
	err := s.repo.InTx(ctx, func(tx Tx) error {
		// Lock both the old and the new number when renaming, in lexical
		// order so two concurrent renames cannot deadlock each other.
		locks := []string{in.Numero}
		if renamed {
			locks = append(locks, originalNumero)
			sort.Strings(locks)
		}
		for _, numero := range locks {
			if err := tx.LockNumero(ctx, numero); err != nil {
				return err
			}
		}
		if renamed {
			exists, err := tx.NumeroExists(ctx, in.Numero)
			if err != nil {
				return err
			}
			if exists {
				verr := shared.NewValidationError()
				verr.Add("numero", "Ce numéro de BL existe déjà")
				return verr
			}
		}
		deleted, err := tx.DeleteByNumero(ctx, originalNumero)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return shared.ErrNotFound
		}
		for _, l := range in.Lignes {
			if err := tx.InsertLigne(ctx, in, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(in.Lignes), nil
}

// Delete removes the whole BL group the given line belongs to and returns
// the number of rows removed.
func (s *Service) Delete(ctx context.Context, ligneID int64) (int, error) {
	if ligneID <= 0 {
		return 0, shared.ErrNotFound
	}
	numero, err := s.repo.NumeroOfLigne(ctx, ligneID)
	if err != nil {
		return 0, err
	}

	var deleted int64
	err = s.repo.InTx(ctx, func(tx Tx) error {
		deleted, err = tx.DeleteByNumero(ctx, numero)
		return err
	})
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}

func normalize(in BonLivraisonInput) BonLivraisonInput {
	in.Numero = strings.TrimSpace(in.Numero)
	for i := range in.Lignes {
		in.Lignes[i].ProduitRef = strings.TrimSpace(in.Lignes[i].ProduitRef)
	}
	return in
}

func (s *Service) validate(ctx context.Context, in BonLivraisonInput) error {
	verr := shared.ValidateStruct(in)
	if in.UnloadDate != nil && !in.LoadDate.IsZero() && in.UnloadDate.Before(in.LoadDate) {
		verr.Add("unload_date", "La date de déchargement doit être postérieure à la date de chargement")
	}
	for _, l := range in.Lignes {
		if lverr := shared.ValidateStruct(l); lverr.Any() {
			field, msg := lverr.First()
			verr.Add("lignes", "Ligne invalide ("+field+") : "+msg)
			break
		}
	}
	if verr.Any() {
		return verr
	}

	ok, err := s.repo.TransporteurExists(ctx, in.TransporteurID)
	if err != nil {
		return err
	}
	if !ok {
		verr.Add("transporteur_id", "Le transporteur sélectionné n'existe pas")
	}
	for _, l := range in.Lignes {
		ok, err := s.repo.ProduitExists(ctx, l.ProduitID)
		if err != nil {
			return err
		}
		if !ok {
			verr.Add("lignes", "Un des produits sélectionnés n'existe pas")
			break
		}
	}
	return verr.ErrIfAny()
}
