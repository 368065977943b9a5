package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateStructKeysFollowJSONTags(t *testing.T) {
	type form struct {
		FullName string  `json:"full_name" validate:"required"`
		Remise   float64 `json:"remise" validate:"gte=0,lte=100"`
		VilleID  int64   `json:"ville_id" validate:"required,gt=0"`
	}

	verr := ValidateStruct(form{Remise: 120})
	require.True(t, verr.Any())
	require.Contains(t, verr.Fields, "full_name")
	require.Contains(t, verr.Fields, "remise")
	require.Contains(t, verr.Fields, "ville_id")
	require.Equal(t, "Ce champ est obligatoire", verr.Fields["full_name"])
	require.Equal(t, "Doit être inférieur ou égal à 100", verr.Fields["remise"])

	field, msg := verr.First()
	require.Equal(t, "full_name", field)
	require.NotEmpty(t, msg)
}

func TestValidateStructCleanValueHasNoFailures(t *testing.T) {
	type form struct {
		Name string `json:"name" validate:"required"`
	}

	verr := ValidateStruct(form{Name: "Casablanca"})
	require.False(t, verr.Any())
	require.NoError(t, verr.ErrIfAny())
}
