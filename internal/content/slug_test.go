package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Algebra Basics", "algebra-basics"},
		{"  Trig -- Identities  ", "trig-identities"},
		{"Ratio & Proportion!", "ratio-proportion"},
		{"UPPER", "upper"},
		{"---", ""},
		{"", ""},
		{"100 Days of SQL", "100-days-of-sql"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}
