package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePermission(t *testing.T) {
	p, err := Parse("entrers.edit")
	require.NoError(t, err)
	require.Equal(t, ResEntrers, p.Resource)
	require.Equal(t, ActionEdit, p.Action)
	require.Equal(t, "entrers.edit", p.String())

	_, err = Parse("entrers")
	require.Error(t, err)
	_, err = Parse(".view")
	require.Error(t, err)
}

func TestPermissionSet(t *testing.T) {
	set := NewPermissionSet([]string{"villes.view", "villes.create", "garbage", "clients.delete"})
	require.True(t, set.Has(View(ResVilles)))
	require.True(t, set.Has(Create(ResVilles)))
	require.True(t, set.Has(Delete(ResClients)))
	require.False(t, set.Has(Edit(ResVilles)))
}

func TestPrincipalCan(t *testing.T) {
	var nobody *Principal
	require.False(t, nobody.Can(View(ResProduits)))

	p := &Principal{UserID: 7, Permissions: NewPermissionSet([]string{"products.view"})}
	require.True(t, p.Can(View(ResProduits)))
	require.False(t, p.Can(Delete(ResProduits)))
}
