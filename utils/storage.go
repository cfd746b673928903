package utils

import (
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ndhuresource/ndhulearn/config"
)

// SaveUploadedFile stores a multipart upload under the configured upload
// directory with a uuid name, keeping the original extension. Returns the
// public URL and the filesystem path.
func SaveUploadedFile(ctx *gin.Context, file *multipart.FileHeader) (string, string, error) {
	cfg := config.Get()
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return "", "", err
	}

	name := uuid.New().String() + filepath.Ext(file.Filename)
	dst := filepath.Join(cfg.UploadDir, name)
	if err := ctx.SaveUploadedFile(file, dst); err != nil {
		return "", "", err
	}
	return cfg.UploadBaseURL + "/" + name, dst, nil
}

// RemoveStoredFile deletes a stored upload, best-effort.
func RemoveStoredFile(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		Sugar.Warnf("failed to remove stored file %s: %v", path, err)
	}
}
