package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// bindError keeps validator errors intact for the error middleware and
// turns everything else (malformed JSON, wrong types) into a 400
func bindError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return err
	}
	return apperror.BadRequest("Invalid request body")
}

func currentUserID(c *gin.Context) string {
	return c.GetString(string(domain.KeyUserID))
}

func clientMeta(c *gin.Context) domain.ClientMeta {
	return domain.ClientMeta{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: c.GetString(string(domain.KeyRequestID)),
	}
}

// paramID parses a positive int64 path parameter
func paramID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest(fmt.Sprintf("Invalid %s", name))
	}
	return id, nil
}

func pageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	return page, pageSize
}

// readUpload reads one multipart file, rejecting anything above maxBytes
func readUpload(c *gin.Context, field string, maxBytes int64) (domain.MediaUpload, error) {
	// Multipart overhead on top of the file itself
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+1<<20)

	fh, err := c.FormFile(field)
	if err != nil {
		return domain.MediaUpload{}, apperror.BadRequest(fmt.Sprintf("Multipart field %q is required", field))
	}
	if fh.Size > maxBytes {
		return domain.MediaUpload{}, apperror.BadRequest(fmt.Sprintf("File exceeds the %d MB limit", maxBytes>>20))
	}

	f, err := fh.Open()
	if err != nil {
		return domain.MediaUpload{}, apperror.BadRequest("Could not read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return domain.MediaUpload{}, apperror.BadRequest("Could not read uploaded file")
	}
	if int64(len(data)) > maxBytes {
		return domain.MediaUpload{}, apperror.BadRequest(fmt.Sprintf("File exceeds the %d MB limit", maxBytes>>20))
	}
	return domain.MediaUpload{Filename: fh.Filename, Data: data}, nil
}

func sendXLSX(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
