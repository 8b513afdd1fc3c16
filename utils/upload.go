package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// AllowedImageTypes defines the allowed image file extensions
var AllowedImageTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ValidateImageFile checks if the uploaded file is a valid image
func ValidateImageFile(file *multipart.FileHeader) error {
	if file.Size > MaxFileSize {
		return fmt.Errorf("file size exceeds 5MB limit")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !AllowedImageTypes[ext] {
		return fmt.Errorf("invalid file type. Allowed types: jpg, jpeg, png, webp")
	}

	return nil
}

// SaveUploadedFile saves an uploaded image under the uploads directory
// with a generated name and returns the relative path
func SaveUploadedFile(file *multipart.FileHeader, uploadDir string) (string, error) {
	if err := ValidateImageFile(file); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	filename := uuid.New().String() + ext
	dstPath := filepath.Join(uploadDir, filename)

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %v", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %v", err)
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return "", fmt.Errorf("failed to save file: %v", err)
	}

	return "uploads/" + filename, nil
}

// DeleteFile deletes a file from the filesystem
func DeleteFile(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}
	return nil
}
