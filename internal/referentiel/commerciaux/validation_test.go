package commerciaux

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidPhone(t *testing.T) {
	valid := []string{
		"0612345678",
		"0698765432",
		"0700000000",
		"0123456789",
	}
	for _, p := range valid {
		require.True(t, validPhone(p), "expected %q to be valid", p)
	}

	invalid := []string{
		"",
		"0512345678",  // prefix 05 not allowed
		"0812345678",  // prefix 08 not allowed
		"612345678",   // missing leading zero
		"06123456789", // 11 digits
		"061234567",   // 9 digits
		"+212612345678",
		"06 12 34 56 78",
		"06123456ab",
	}
	for _, p := range invalid {
		require.False(t, validPhone(p), "expected %q to be invalid", p)
	}
}
