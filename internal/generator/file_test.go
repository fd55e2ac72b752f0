package generator

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name, ext, want string
	}{
		{"notes", "txt", "notes.txt"},
		{"notes.txt", "txt", "notes.txt"},
		{"notes.md", ".txt", "notes.md.txt"},
		{"report", "", "report"},
		{"../../etc/passwd", "", "passwd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.name, tt.ext))
		})
	}
}

func TestFileContent(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G'}
	enc := base64.StdEncoding.EncodeToString(raw)

	assert.Equal(t, raw, FileContent(enc, "PNG"))
	assert.Equal(t, []byte("not base64!"), FileContent("not base64!", "pdf"))
	// 文本扩展名不解码
	assert.Equal(t, []byte(enc), FileContent(enc, "txt"))
}

func TestAssembleFile(t *testing.T) {
	dir := t.TempDir()
	path, err := AssembleFile(context.Background(), FileRequest{Name: "hello", Content: "salut", Extension: "txt"}, dir, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "hello.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "salut", string(data))

	_, err = AssembleFile(context.Background(), FileRequest{Name: " "}, dir, nil, nil)
	assert.True(t, errors.Is(err, ErrValidation))
}
