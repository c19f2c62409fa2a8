package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/apperrors"
)

func TestSchema_ValidateCreate(t *testing.T) {
	t.Run("project requires title and description", func(t *testing.T) {
		err := ProjectSchema.ValidateCreate(Fields{"title": "Portfolio"})
		require.Error(t, err)

		var ve *apperrors.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "description", ve.Field)
		assert.Equal(t, "description: is required", err.Error())

		assert.NoError(t, ProjectSchema.ValidateCreate(Fields{"title": "Portfolio", "description": "desc"}))
	})

	t.Run("blank title is missing", func(t *testing.T) {
		err := CertificateSchema.ValidateCreate(Fields{"title": "   "})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("certificate only requires title", func(t *testing.T) {
		assert.NoError(t, CertificateSchema.ValidateCreate(Fields{"title": "Go"}))
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		err := CertificateSchema.ValidateCreate(Fields{"title": "Go", "owner": "me"})
		require.Error(t, err)
		assert.Equal(t, "owner: is not a known field", err.Error())
	})
}

func TestSchema_ValidateUpdate(t *testing.T) {
	assert.True(t, apperrors.IsValidation(ProjectSchema.ValidateUpdate(Fields{})))
	assert.True(t, apperrors.IsValidation(ProjectSchema.ValidateUpdate(Fields{"title": ""})))
	assert.True(t, apperrors.IsValidation(ProjectSchema.ValidateUpdate(Fields{"id": "3"})))
	assert.NoError(t, ProjectSchema.ValidateUpdate(Fields{"github": ""}))
	assert.NoError(t, ProjectSchema.ValidateUpdate(Fields{"title": "X"}))
}

func TestSchema_Normalize(t *testing.T) {
	out := CertificateSchema.Normalize(Fields{"title": "  Go  "})
	assert.Len(t, out, len(CertificateSchema.Columns))
	assert.Equal(t, "Go", out["title"])
	assert.Equal(t, "", out["link"])
}

func TestSchema_TargetsAlignWithColumns(t *testing.T) {
	var p Project
	assert.Len(t, ProjectSchema.Targets(&p), len(ProjectSchema.Columns)+2)

	var c Certificate
	assert.Len(t, CertificateSchema.Targets(&c), len(CertificateSchema.Columns)+2)
}
