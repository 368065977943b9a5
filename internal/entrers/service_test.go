package entrers

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gestistock/gestistock/internal/shared"
)

// fakeRepo keeps the ledger as flat rows, like the real table, and gives
// InTx snapshot-restore semantics so rollback behavior is observable.
type fakeRepo struct {
	seq           int64
	rows          []ligneRow
	transporteurs map[int64]string
	produits      map[int64]bool

	insertErrAfter int // fail the nth insert of the current transaction, 0 = never
	inserts        int

	locks []string // numeros locked by the current transaction, in order
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		transporteurs: map[int64]string{1: "Hassan Berrada"},
		produits:      map[int64]bool{1: true, 2: true, 3: true},
	}
}

func (f *fakeRepo) sorted() []ligneRow {
	out := append([]ligneRow(nil), f.rows...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].numero != out[j].numero {
			return out[i].numero < out[j].numero
		}
		return out[i].ligne.ID < out[j].ligne.ID
	})
	return out
}

func (f *fakeRepo) ListGroups(context.Context) ([]BonLivraison, error) {
	return aggregate(f.sorted()), nil
}

func (f *fakeRepo) GroupDetails(_ context.Context, numero string) (BonLivraison, error) {
	for _, g := range aggregate(f.sorted()) {
		if g.Numero == numero {
			return g, nil
		}
	}
	return BonLivraison{}, shared.ErrNotFound
}

func (f *fakeRepo) NumeroExists(_ context.Context, numero string) (bool, error) {
	for _, row := range f.rows {
		if row.numero == numero {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) NumeroOfLigne(_ context.Context, ligneID int64) (string, error) {
	for _, row := range f.rows {
		if row.ligne.ID == ligneID {
			return row.numero, nil
		}
	}
	return "", shared.ErrNotFound
}

func (f *fakeRepo) TransporteurExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.transporteurs[id]
	return ok, nil
}

func (f *fakeRepo) ProduitExists(_ context.Context, id int64) (bool, error) {
	return f.produits[id], nil
}

func (f *fakeRepo) InTx(_ context.Context, fn func(Tx) error) error {
	snapshot := append([]ligneRow(nil), f.rows...)
	f.inserts = 0
	f.locks = nil
	if err := fn(&fakeTx{repo: f}); err != nil {
		f.rows = snapshot
		return err
	}
	return nil
}

type fakeTx struct {
	repo *fakeRepo
}

func (t *fakeTx) LockNumero(_ context.Context, numero string) error {
	t.repo.locks = append(t.repo.locks, numero)
	return nil
}

func (t *fakeTx) NumeroExists(ctx context.Context, numero string) (bool, error) {
	return t.repo.NumeroExists(ctx, numero)
}

func (t *fakeTx) DeleteByNumero(_ context.Context, numero string) (int64, error) {
	var kept []ligneRow
	var deleted int64
	for _, row := range t.repo.rows {
		if row.numero == numero {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	t.repo.rows = kept
	return deleted, nil
}

func (t *fakeTx) InsertLigne(_ context.Context, in BonLivraisonInput, l LigneInput) error {
	t.repo.inserts++
	if t.repo.insertErrAfter > 0 && t.repo.inserts >= t.repo.insertErrAfter {
		return errors.New("insert failed")
	}
	t.repo.seq++
	t.repo.rows = append(t.repo.rows, ligneRow{
		ligne: EntreeLigne{
			ID:         t.repo.seq,
			ProduitID:  l.ProduitID,
			ProduitRef: l.ProduitRef,
			PrixAchat:  l.PrixAchat,
			Quantite:   l.Quantite,
			Shortage:   l.Shortage,
			Offert:     l.Offert,
		},
		numero:           in.Numero,
		transporteurID:   in.TransporteurID,
		transporteurName: t.repo.transporteurs[in.TransporteurID],
		loadDate:         in.LoadDate,
		unloadDate:       in.UnloadDate,
		updatedAt:        time.Now(),
	})
	return nil
}

func validInput() BonLivraisonInput {
	return BonLivraisonInput{
		Numero:         "BL-2024-099",
		TransporteurID: 1,
		LoadDate:       time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Lignes: []LigneInput{
			{ProduitID: 1, ProduitRef: "REF-001", PrixAchat: 240, Quantite: 4},
			{ProduitID: 2, ProduitRef: "REF-002", PrixAchat: 120, Quantite: 2},
			{ProduitID: 3, ProduitRef: "REF-003", PrixAchat: 0, Quantite: 1, Offert: true},
		},
	}
}

func TestCreateGroupRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	n, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, 3, n)

	groups, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, "BL-2024-099", groups[0].Numero)
	require.Equal(t, 3, groups[0].LineCount)
	require.Equal(t, 240.0*4+120.0*2, groups[0].Total)
	require.Len(t, groups[0].Lignes, 3)
}

func TestCreateRejectsDuplicateNumero(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validInput())
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "numero")
}

func TestCreateRejectsEmptyLinesAndBadDates(t *testing.T) {
	svc := NewService(newFakeRepo())

	in := validInput()
	in.Lignes = nil
	before := in.LoadDate.AddDate(0, 0, -1)
	in.UnloadDate = &before
	_, err := svc.Create(context.Background(), in)
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "lignes")
	require.Contains(t, verr.Fields, "unload_date")
}

func TestCreateRejectsZeroQuantity(t *testing.T) {
	svc := NewService(newFakeRepo())

	in := validInput()
	in.Lignes[1].Quantite = 0
	_, err := svc.Create(context.Background(), in)
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "lignes")
}

func TestUpdateRenamesWholeGroup(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.Numero = "BL-2024-100"
	in.Lignes = in.Lignes[:2]
	n, err := svc.Update(context.Background(), "BL-2024-099", in)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	_, err = svc.Details(context.Background(), "BL-2024-099")
	require.ErrorIs(t, err, shared.ErrNotFound)

	group, err := svc.Details(context.Background(), "BL-2024-100")
	require.NoError(t, err)
	require.Equal(t, 2, group.LineCount)
}

func TestUpdateRenameLocksBothNumerosInOrder(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	// Renaming touches two groups; both numbers must be locked, in lexical
	// order, so concurrent renames of the same pair cannot deadlock.
	renamed := validInput()
	renamed.Numero = "BL-2024-050"
	_, err = svc.Update(context.Background(), "BL-2024-099", renamed)
	require.NoError(t, err)
	require.Equal(t, []string{"BL-2024-050", "BL-2024-099"}, repo.locks)

	// A same-number update needs only its own lock.
	_, err = svc.Update(context.Background(), "BL-2024-050", renamed)
	require.NoError(t, err)
	require.Equal(t, []string{"BL-2024-050"}, repo.locks)
}

func TestUpdateSameNumeroIsNotACollision(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	// The group's own rows must not count as a duplicate of itself.
	n, err := svc.Update(context.Background(), "BL-2024-099", validInput())
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestUpdateRejectsRenameToExistingNumero(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	other := validInput()
	other.Numero = "BL-2024-100"
	_, err = svc.Create(context.Background(), other)
	require.NoError(t, err)

	renamed := validInput()
	renamed.Numero = "BL-2024-100"
	_, err = svc.Update(context.Background(), "BL-2024-099", renamed)
	verr, ok := shared.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "numero")
}

func TestUpdateRollsBackOnFailedInsert(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	in := validInput()
	in.Lignes = in.Lignes[:2]
	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	repo.insertErrAfter = 2
	_, err = svc.Update(context.Background(), "BL-2024-099", validInput())
	require.Error(t, err)

	// The original two lines must survive intact, not a partial state.
	group, detailsErr := svc.Details(context.Background(), "BL-2024-099")
	require.NoError(t, detailsErr)
	require.Equal(t, 2, group.LineCount)
}

func TestDeleteCascadesToWholeGroup(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	group, err := svc.Details(context.Background(), "BL-2024-099")
	require.NoError(t, err)
	require.Len(t, group.Lignes, 3)

	n, err := svc.Delete(context.Background(), group.Lignes[1].ID)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	_, err = svc.Details(context.Background(), "BL-2024-099")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteUnknownLigne(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Delete(context.Background(), 42)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestNumeroExists(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	exists, err := svc.NumeroExists(context.Background(), "BL-2024-099")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = svc.NumeroExists(context.Background(), "BL-404")
	require.NoError(t, err)
	require.False(t, exists)
}
