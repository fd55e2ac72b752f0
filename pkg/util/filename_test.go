package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name          string
		title         string
		transliterate bool
		want          string
	}{
		{"accents and punctuation", "Rapport: Été 2024!", false, "Rapport_t_2024"},
		{"plain", "Mon document", false, "Mon_document"},
		{"underscore kept", "a_b-c", false, "a_bc"},
		{"apostrophe", "L'IA en 2025", false, "LIA_en_2025"},
		{"transliterate", "Rapport: Été 2024!", true, "Rapport_Ete_2024"},
		{"only symbols", "!!!", false, "document"},
		{"empty", "", false, "document"},
		{"tabs stay", "a\tb", false, "a\tb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.title, "document", tt.transliterate))
		})
	}
}

func TestFoldAccents(t *testing.T) {
	assert.Equal(t, "Ecole francaise", FoldAccents("École française"))
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	require.NoError(t, SaveFile(src, []byte("hello")))

	n, err := CopyFile(src, filepath.Join(dir, "sub", "b.txt"))
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	data, err := os.ReadFile(filepath.Join(dir, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}
