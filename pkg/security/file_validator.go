package security

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
)

// UploadPurpose selects which file types an upload may contain
type UploadPurpose string

const (
	PurposePortfolioMedia UploadPurpose = "portfolio_media"
	PurposeDocument       UploadPurpose = "document"
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool
	Extension    string
	DetectedMIME string
	Error        string
}

// Magic byte signatures keyed by lowercase extension
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".gif":  {{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, {0x47, 0x49, 0x46, 0x38, 0x39, 0x61}},
	".webp": {{0x52, 0x49, 0x46, 0x46}},
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},
}

var allowedByPurpose = map[UploadPurpose]map[string]string{
	PurposePortfolioMedia: {
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
		".pdf":  "application/pdf",
	},
	PurposeDocument: {
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".pdf":  "application/pdf",
	},
}

// ValidateUpload checks extension whitelist, magic bytes, and sniffed MIME type.
// application/octet-stream is always rejected.
func ValidateUpload(purpose UploadPurpose, filename string, data []byte) FileValidationResult {
	detected := http.DetectContentType(data)
	if i := strings.IndexByte(detected, ';'); i >= 0 {
		detected = detected[:i]
	}
	result := FileValidationResult{DetectedMIME: detected}

	allowed, ok := allowedByPurpose[purpose]
	if !ok {
		result.Error = "unknown upload purpose"
		return result
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	expectedMIME, ok := allowed[ext]
	if !ok {
		result.Error = "file extension not allowed: " + ext
		return result
	}

	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension"
		return result
	}

	if detected == "application/octet-stream" {
		result.Error = "binary files not allowed; file type could not be determined"
		return result
	}
	if detected != expectedMIME {
		result.Error = "MIME type not allowed: " + detected
		return result
	}

	result.Valid = true
	return result
}

func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false
	}
	for _, sig := range magicBytes[ext] {
		if len(data) >= len(sig) && bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// ValidateFileExtension checks only the extension (quick pre-validation)
func ValidateFileExtension(purpose UploadPurpose, filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return errors.New("file has no extension")
	}
	if _, ok := allowedByPurpose[purpose][ext]; !ok {
		return errors.New("file extension not allowed: " + ext)
	}
	return nil
}

// IsImageMIME reports whether the MIME type is a raster image we can thumbnail
func IsImageMIME(mime string) bool {
	switch mime {
	case "image/jpeg", "image/png", "image/gif":
		return true
	}
	return false
}
