package domain

import (
	"slices"
	"strings"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/apperrors"
)

// ImageColumn is the column that receives the public URL of an uploaded image.
const ImageColumn = "image"

// Schema describes how one entity kind is stored: its table, the storage
// prefix for its images and its writable columns.
type Schema[T any] struct {
	// Name is the singular entity name used in logs and messages.
	Name        string
	Table       string
	ImagePrefix string
	// Columns are the writable columns, excluding id and created_at.
	Columns  []string
	Required []string
	// Targets returns scan destinations in the order id, Columns..., created_at.
	Targets func(*T) []any
}

var ProjectSchema = Schema[Project]{
	Name:        "project",
	Table:       "projects",
	ImagePrefix: "project-images",
	Columns:     []string{"title", "description", "image", "github", "demo", "technologies"},
	Required:    []string{"title", "description"},
	Targets: func(p *Project) []any {
		return []any{&p.ID, &p.Title, &p.Description, &p.Image, &p.Github, &p.Demo, &p.Technologies, &p.CreatedAt}
	},
}

var CertificateSchema = Schema[Certificate]{
	Name:        "certificate",
	Table:       "certificates",
	ImagePrefix: "certificate-images",
	Columns:     []string{"title", "institution", "date", "image", "link"},
	Required:    []string{"title"},
	Targets: func(c *Certificate) []any {
		return []any{&c.ID, &c.Title, &c.Institution, &c.Date, &c.Image, &c.Link, &c.CreatedAt}
	},
}

func (s Schema[T]) HasColumn(name string) bool {
	return slices.Contains(s.Columns, name)
}

func (s Schema[T]) IsRequired(name string) bool {
	return slices.Contains(s.Required, name)
}

// ValidateCreate checks a create payload: every key must be a known column
// and every required column must be non-blank.
func (s Schema[T]) ValidateCreate(f Fields) error {
	if err := s.checkKnown(f); err != nil {
		return err
	}
	for _, col := range s.Required {
		if strings.TrimSpace(f[col]) == "" {
			return &apperrors.ValidationError{Field: col, Message: "is required"}
		}
	}
	return nil
}

// ValidateUpdate checks a partial update: at least one known column, and no
// required column blanked out.
func (s Schema[T]) ValidateUpdate(f Fields) error {
	if len(f) == 0 {
		return &apperrors.ValidationError{Message: "no fields to update"}
	}
	if err := s.checkKnown(f); err != nil {
		return err
	}
	for col, v := range f {
		if s.IsRequired(col) && strings.TrimSpace(v) == "" {
			return &apperrors.ValidationError{Field: col, Message: "cannot be empty"}
		}
	}
	return nil
}

// Normalize returns a copy of f with every column present and values trimmed.
func (s Schema[T]) Normalize(f Fields) Fields {
	out := make(Fields, len(s.Columns))
	for _, col := range s.Columns {
		out[col] = strings.TrimSpace(f[col])
	}
	return out
}

func (s Schema[T]) checkKnown(f Fields) error {
	for col := range f {
		if !s.HasColumn(col) {
			return &apperrors.ValidationError{Field: col, Message: "is not a known field"}
		}
	}
	return nil
}
