package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/apperrors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        &apperrors.ValidationError{Field: "title", Message: "is required"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "title: is required",
		},
		{
			name:       "not found",
			err:        apperrors.Remote("delete project", apperrors.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantMsg:    "record not found",
		},
		{
			name:       "remote",
			err:        apperrors.Remote("list projects", errors.New("dial tcp: timeout")),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    GenericFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := StatusFor(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
