package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitials(t *testing.T) {
	assert.Equal(t, "--", Initials(nil))
	assert.Equal(t, "--", Initials(&User{FirstName: "Ada"}))
	assert.Equal(t, "--", Initials(&User{LastName: "Lovelace"}))
	assert.Equal(t, "AL", Initials(&User{FirstName: "Ada", LastName: "Lovelace"}))
	assert.Equal(t, "ÉŽ", Initials(&User{FirstName: "Émile", LastName: "Žižek"}))
}

func TestAccountInitials(t *testing.T) {
	tests := map[string]string{
		"":                      "--",
		"   ":                   "--",
		"madonna":               "MA",
		"x":                     "X",
		"grace brewster hopper": "GH",
		"  linus  torvalds ":    "LT",
	}
	for in, want := range tests {
		assert.Equal(t, want, AccountInitials(in), "input %q", in)
	}
}

func TestCollectionVisibleTo(t *testing.T) {
	public := &Collection{UserID: "u1"}
	assert.True(t, public.VisibleTo(""))
	assert.True(t, public.VisibleTo("u2"))

	private := &Collection{UserID: "u1", IsPrivate: true}
	assert.False(t, private.VisibleTo(""))
	assert.False(t, private.VisibleTo("u2"))
	assert.True(t, private.VisibleTo("u1"))
}

func TestPinCreateValid(t *testing.T) {
	assert.True(t, PinCreate{Title: "t", ImageURL: "http://x"}.Valid())
	assert.False(t, PinCreate{Title: "t"}.Valid())
	assert.False(t, PinCreate{ImageURL: "http://x"}.Valid())
}
