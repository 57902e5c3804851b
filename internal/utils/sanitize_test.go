package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Fix login bug", "Fix login bug"},
		{"tags stripped", "<b>Fix</b> <script>alert(1)</script>login", "Fix login"},
		{"entities decoded", "Tom &amp; Jerry", "Tom & Jerry"},
		{"whitespace collapsed", "  a \t b\n\nc  ", "a b c"},
		{"only markup becomes empty", "<div></div>", ""},
		{"empty stays empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.in))
		})
	}
}

func TestNormalizeForSearch(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Résumé", "resume"},
		{"CAFÉ", "cafe"},
		{"plain", "plain"},
		{"Ünïcödé", "unicode"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeForSearch(tt.in))
	}
}
