package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestSQLStateHelpers(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "villes_name_key"}
	foreign := &pgconn.PgError{Code: "23503", ConstraintName: "secteurs_ville_id_fkey"}

	require.True(t, IsUniqueViolation(unique))
	require.True(t, IsUniqueViolation(fmt.Errorf("insert ville: %w", unique)))
	require.False(t, IsUniqueViolation(foreign))
	require.False(t, IsUniqueViolation(errors.New("connection reset")))
	require.False(t, IsUniqueViolation(nil))

	require.True(t, IsForeignKeyViolation(foreign))
	require.True(t, IsForeignKeyViolation(fmt.Errorf("delete ville: %w", foreign)))
	require.False(t, IsForeignKeyViolation(unique))
	require.False(t, IsForeignKeyViolation(nil))
}
