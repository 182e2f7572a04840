package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikeEscaper(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"INV", "INV"},
		{"A%", `A\%`},
		{"A_B", `A\_B`},
		{`A\B`, `A\\B`},
		{`%_\`, `\%\_\\`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, likeEscaper.Replace(tc.in), "prefix %q", tc.in)
	}
}
