package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"already clean", "a-cse-2025", "a-cse-2025"},
		{"uppercase and spaces", "  My Placement Story ", "my-placement-story"},
		{"punctuation collapses", "infosys!! off-campus (2025)", "infosys-off-campus-2025"},
		{"leading and trailing junk", "---hello---", "hello"},
		{"unicode falls back to dashes", "störy", "st-ry"},
		{"empty", "   ", ""},
		{"only junk", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Slugify(tc.input))
		})
	}
}

func TestParseTags(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected []string
	}{
		{"simple list", "dsa,system design", []string{"dsa", "system design"}},
		{"whitespace trimmed", " dsa , system design ", []string{"dsa", "system design"}},
		{"empties dropped", "dsa,,  ,aptitude", []string{"dsa", "aptitude"}},
		{"single tag", "referral", []string{"referral"}},
		{"blank input", "   ", nil},
		{"only commas", ",,,", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseTags(tc.input))
		})
	}
}
