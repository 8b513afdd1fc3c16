package utils

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImageFile(t *testing.T) {
	t.Run("accepts jpg within size limit", func(t *testing.T) {
		file := &multipart.FileHeader{Filename: "photo.JPG", Size: 1024}
		assert.NoError(t, ValidateImageFile(file))
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		file := &multipart.FileHeader{Filename: "photo.png", Size: MaxFileSize + 1}
		assert.Error(t, ValidateImageFile(file))
	})

	t.Run("rejects disallowed extension", func(t *testing.T) {
		file := &multipart.FileHeader{Filename: "script.svg", Size: 1024}
		assert.Error(t, ValidateImageFile(file))
	})
}

func TestDeleteFile(t *testing.T) {
	t.Run("removes an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "banner.jpg")
		require.NoError(t, os.WriteFile(path, []byte("img"), 0644))

		require.NoError(t, DeleteFile(path))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("reports an error for a missing file", func(t *testing.T) {
		err := DeleteFile(filepath.Join(t.TempDir(), "missing.jpg"))
		assert.Error(t, err)
	})
}
