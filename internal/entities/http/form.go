package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/apperrors"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/entities/domain"
	"github.com/GoSim-25-26J-441/portfolio-backend/internal/entities/service"
)

// ImageField is the multipart file field carrying the image.
const ImageField = "image"

// maxFormMemory leaves room for the image plus text fields. It also caps
// the request body.
const maxFormMemory = service.MaxImageSize + 1<<20

// ReadFields reads the record fields from a JSON object or a form body.
// For multipart bodies the optional image file is returned too. skip names
// form keys that are not record fields (for example a CSRF or method field).
func ReadFields(c *gin.Context, skip ...string) (domain.Fields, *domain.Upload, error) {
	ct := c.ContentType()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFormMemory)

	if ct == gin.MIMEJSON {
		var f domain.Fields
		if err := c.ShouldBindJSON(&f); err != nil {
			return nil, nil, &apperrors.ValidationError{Message: "invalid JSON body"}
		}
		if f == nil {
			f = domain.Fields{}
		}
		return f, nil, nil
	}

	var err error
	if ct == gin.MIMEMultipartPOSTForm {
		err = c.Request.ParseMultipartForm(maxFormMemory)
	} else {
		err = c.Request.ParseForm()
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, nil, &apperrors.ValidationError{Field: ImageField, Message: "must be at most 5MB"}
	}
	if err != nil {
		return nil, nil, &apperrors.ValidationError{Message: "invalid form body"}
	}

	f := domain.Fields{}
	for key, vals := range c.Request.PostForm {
		if key == ImageField || contains(skip, key) || len(vals) == 0 {
			continue
		}
		f[key] = vals[0]
	}

	if c.Request.MultipartForm == nil {
		return f, nil, nil
	}
	img, err := readImage(c)
	if err != nil {
		return nil, nil, err
	}
	return f, img, nil
}

func readImage(c *gin.Context) (*domain.Upload, error) {
	fh, err := c.FormFile(ImageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read image field: %w", err)
	}
	// browsers send an empty part when no file was chosen
	if fh.Filename == "" && fh.Size == 0 {
		return nil, nil
	}
	return readUpload(fh)
}

func readUpload(fh *multipart.FileHeader) (*domain.Upload, error) {
	if fh.Size > service.MaxImageSize {
		return &domain.Upload{Filename: fh.Filename, Size: fh.Size}, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return &domain.Upload{Filename: fh.Filename, Size: int64(len(data)), Data: data}, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
