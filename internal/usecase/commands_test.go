package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		want    Command
		ok      bool
	}{
		{"bare token", "!wishlist", CommandLatest, true},
		{"token with whitespace", "  !wishlist  ", CommandLatest, true},
		{"mixed case", "!WishList ALL", CommandBrowse, true},
		{"browse", "!wishlist all", CommandBrowse, true},
		{"export", "!wishlist export", CommandExport, true},
		{"clear", "!wishlist clear", CommandClear, true},
		{"enable", "!wishlist on", CommandEnable, true},
		{"disable", "!wishlist off", CommandDisable, true},
		{"unknown subcommand", "!wishlist dance", 0, false},
		{"trailing junk", "!wishlist all please", 0, false},
		{"not a command", "check this out https://shop.example/x", 0, false},
		{"token not first", "hey !wishlist", 0, false},
		{"empty", "", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseCommand(tc.content, "!wishlist")
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
