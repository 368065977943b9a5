package entrers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	load := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	early := load.Add(2 * time.Hour)
	late := load.Add(5 * time.Hour)

	rows := []ligneRow{
		{ligne: EntreeLigne{ID: 1, PrixAchat: 240, Quantite: 4}, numero: "BL-001", transporteurName: "Hassan Berrada", loadDate: load, updatedAt: late},
		{ligne: EntreeLigne{ID: 2, PrixAchat: 120, Quantite: 2}, numero: "BL-001", transporteurName: "Hassan Berrada", loadDate: load, updatedAt: early},
		{ligne: EntreeLigne{ID: 3, PrixAchat: 50, Quantite: 1}, numero: "BL-002", loadDate: load, updatedAt: early},
	}

	groups := aggregate(rows)
	require.Len(t, groups, 2)

	first := groups[0]
	require.Equal(t, "BL-001", first.Numero)
	require.Equal(t, 2, first.LineCount)
	require.Equal(t, 240.0*4+120.0*2, first.Total)
	require.Equal(t, late, first.UpdatedAt)
	require.Equal(t, []int64{1, 2}, []int64{first.Lignes[0].ID, first.Lignes[1].ID})

	require.Equal(t, "BL-002", groups[1].Numero)
	require.Equal(t, 1, groups[1].LineCount)
}

func TestAggregateEmpty(t *testing.T) {
	require.Empty(t, aggregate(nil))
}
