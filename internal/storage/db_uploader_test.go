package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openlabollioules/tools/internal/model"
	"github.com/openlabollioules/tools/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), database.Config())
	require.NoError(t, err)
	require.NoError(t, model.MigrateHostTables(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDBUploader(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&model.HostUser{ID: "u1", Name: "Alice"}).Error)

	dir := t.TempDir()
	src := writeTemp(t, "report.xlsx", "data")
	u := NewDBUploader(db, dir, time.Second)

	rec, err := u.Upload(context.Background(), src, User{ID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "report.xlsx", rec.Filename)
	assert.Len(t, rec.ID, 36)

	var file model.HostFile
	require.NoError(t, db.First(&file, "id = ?", rec.ID).Error)
	assert.Equal(t, "u1", file.UserID)
	assert.Equal(t, filepath.Join(dir, rec.ID+"_report.xlsx"), file.Path)
	require.NotNil(t, file.Meta)
	assert.Equal(t, int64(4), file.Meta.Size)
	assert.Equal(t, "report.xlsx", file.Meta.Name)
	assert.Equal(t, "upload_file", file.Meta.Data["generated_by"])
	assert.NotZero(t, file.CreatedAt)

	data, err := os.ReadFile(file.Path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestDBUploaderUnknownUser(t *testing.T) {
	db := newTestDB(t)
	dir := t.TempDir()
	u := NewDBUploader(db, dir, time.Second)

	_, err := u.Upload(context.Background(), writeTemp(t, "a.txt", "x"), User{ID: "nobody"})
	assert.True(t, errors.Is(err, ErrUpload))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDBUploaderMissingFile(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&model.HostUser{ID: "u1"}).Error)
	u := NewDBUploader(db, t.TempDir(), 0)

	_, err := u.Upload(context.Background(), "/does/not/exist.docx", User{ID: "u1"})
	assert.True(t, errors.Is(err, ErrUpload))
}
