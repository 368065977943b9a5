package promotions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOfferedQuantity(t *testing.T) {
	cases := []struct {
		name    string
		q, x, y int
		want    int
	}{
		{"below threshold", 5, 6, 1, 0},
		{"exact threshold", 6, 6, 1, 1},
		{"repeats on multiples", 13, 6, 1, 2},
		{"y greater than one", 6, 6, 2, 2},
		{"partial second cycle", 11, 6, 2, 2},
		{"zero quantity", 0, 6, 1, 0},
		{"zero x guards division", 10, 0, 1, 0},
		{"zero y", 10, 5, 0, 0},
		{"negative quantity", -6, 6, 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, OfferedQuantity(tc.q, tc.x, tc.y))
		})
	}
}
