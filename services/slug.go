package services

import (
	"fmt"
	"strings"

	"github.com/vincentbastille10/SpectraAIDirectory/repositories"
)

const defaultSlug = "tool"

// Slugify normalizes a display name into a URL-safe token: lowercased, runs
// of non-alphanumeric characters collapsed to a single dash, dashes trimmed
// at both ends. An empty result falls back to a fixed token.
func Slugify(name string) string {
	var b strings.Builder
	pendingDash := false

	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}

	slug := b.String()
	if slug == "" {
		return defaultSlug
	}
	return slug
}

// AssignSlug probes storage for a free candidate, appending an incrementing
// numeric suffix on collision. The unique index on the slug column is the
// backstop against a concurrent insert between the probe and the write.
func AssignSlug(repo repositories.ToolRepository, name string) (string, error) {
	base := Slugify(name)
	candidate := base

	for suffix := 2; ; suffix++ {
		exists, err := repo.SlugExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}
