package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vincentbastille10/SpectraAIDirectory/models"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name     string
		expected string
	}{
		{"Acme", "acme"},
		{"SalesPilot AI", "salespilot-ai"},
		{"Tool 2.0", "tool-2-0"},
		{"  --Weird__Name!!  ", "weird-name"},
		{"already-slugged", "already-slugged"},
		{"***", "tool"},
		{"", "tool"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, Slugify(tc.name), "Slugify(%q)", tc.name)
	}
}

func TestSlugifyAlphabet(t *testing.T) {
	inputs := []string{"Hello, World!", "Ünïcode Näme", "a b c", "@@@@", "UPPER CASE"}
	for _, in := range inputs {
		slug := Slugify(in)
		assert.NotEmpty(t, slug)
		for _, r := range slug {
			valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			assert.True(t, valid, "Slugify(%q) produced %q with invalid rune %q", in, slug, r)
		}
		assert.False(t, strings.HasPrefix(slug, "-"))
		assert.False(t, strings.HasSuffix(slug, "-"))
	}
}

func TestAssignSlugCollision(t *testing.T) {
	repo := newMemToolRepo()

	first, err := AssignSlug(repo, "Acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", first)
	require.NoError(t, repo.Create(&models.Tool{Name: "Acme", URL: "https://acme.test", Slug: first}))

	second, err := AssignSlug(repo, "Acme")
	require.NoError(t, err)
	assert.Equal(t, "acme-2", second)
	require.NoError(t, repo.Create(&models.Tool{Name: "Acme", URL: "https://acme.test", Slug: second}))

	third, err := AssignSlug(repo, "Acme!")
	require.NoError(t, err)
	assert.Equal(t, "acme-3", third)
}
