package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"New York":     "new_york",
		"St. Louis":    "st_louis",
		"São Paulo":    "so_paulo",
		"  Rio-Grande": "rio-grande",
		"...":          "",
		"   ":          "",
	}
	for in, want := range cases {
		require.Equal(t, want, Slug(in), in)
	}
}
