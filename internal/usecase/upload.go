package usecase

import (
	"context"
	"fmt"
	"path"
	"strings"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"
	"go-marketplace-backend/pkg/logger"
	"go-marketplace-backend/pkg/security"
	"go-marketplace-backend/pkg/storage"

	"github.com/google/uuid"
)

// storedFile describes an object written by MediaUploader
type storedFile struct {
	Key          string
	URL          string
	MIME         string
	Size         int64
	ThumbnailKey string
	ThumbnailURL string
}

// MediaUploader validates uploads and writes them to object storage
type MediaUploader struct {
	store    ObjectStore
	quota    UploadQuota
	secLog   *security.SecurityLogger
	maxBytes int64
}

func NewMediaUploader(store ObjectStore, quota UploadQuota, secLog *security.SecurityLogger, maxBytes int64) *MediaUploader {
	return &MediaUploader{store: store, quota: quota, secLog: secLog, maxBytes: maxBytes}
}

func (m *MediaUploader) reject(ctx context.Context, userID, filename, reason string) error {
	if m.secLog != nil {
		m.secLog.LogUserEvent(ctx, security.EventUploadRejected, userID, map[string]interface{}{
			"filename": filename,
			"reason":   reason,
		})
	}
	return apperror.BadRequest("Invalid file: " + reason)
}

// save validates the upload and stores it under prefix. When thumbnail is
// set and the file is a raster image a JPEG preview is stored next to it.
func (m *MediaUploader) save(ctx context.Context, userID, prefix string, purpose security.UploadPurpose, upload domain.MediaUpload, thumbnail bool) (*storedFile, error) {
	if m == nil || m.store == nil {
		return nil, apperror.New(503, "File storage is not configured", nil)
	}
	if len(upload.Data) == 0 {
		return nil, apperror.BadRequest("File is empty")
	}
	if m.maxBytes > 0 && int64(len(upload.Data)) > m.maxBytes {
		return nil, m.reject(ctx, userID, upload.Filename, fmt.Sprintf("file exceeds %d MB", m.maxBytes>>20))
	}

	result := security.ValidateUpload(purpose, upload.Filename, upload.Data)
	if !result.Valid {
		return nil, m.reject(ctx, userID, upload.Filename, result.Error)
	}

	if m.quota != nil {
		allowed, err := m.quota.Allow(ctx, userID)
		if err != nil {
			logger.Log.Warn("upload quota check failed", "user_id", userID, "error", err)
		}
		if !allowed {
			return nil, apperror.TooManyRequests("Daily upload limit reached")
		}
	}

	base := path.Join(prefix, uuid.NewString())
	key := base + result.Extension
	url, err := m.store.Put(ctx, key, upload.Data, result.DetectedMIME)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	stored := &storedFile{
		Key:  key,
		URL:  url,
		MIME: result.DetectedMIME,
		Size: int64(len(upload.Data)),
	}

	if thumbnail && security.IsImageMIME(result.DetectedMIME) {
		thumb, err := storage.Thumbnail(upload.Data, storage.ThumbnailSize, 80)
		if err != nil {
			logger.Log.Warn("thumbnail generation failed", "key", key, "error", err)
			return stored, nil
		}
		thumbKey := base + "_thumb.jpg"
		thumbURL, err := m.store.Put(ctx, thumbKey, thumb, "image/jpeg")
		if err != nil {
			logger.Log.Warn("thumbnail upload failed", "key", thumbKey, "error", err)
			return stored, nil
		}
		stored.ThumbnailKey = thumbKey
		stored.ThumbnailURL = thumbURL
	}
	return stored, nil
}

// remove deletes previously stored objects, logging failures
func (m *MediaUploader) remove(ctx context.Context, keys ...string) {
	if m == nil || m.store == nil {
		return
	}
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := m.store.Delete(ctx, key); err != nil {
			logger.Log.Warn("failed to delete stored object", "key", key, "error", err)
		}
	}
}

// keyFromURL recovers the object key from a public URL under prefix
func keyFromURL(url *string, marker string) string {
	if url == nil {
		return ""
	}
	if i := strings.Index(*url, marker); i >= 0 {
		return (*url)[i:]
	}
	return ""
}
