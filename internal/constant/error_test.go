package constant

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrInvalidParams, http.StatusBadRequest},
		{ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("lookup: %w", ErrUserNotFound), http.StatusNotFound},
		{fmt.Errorf("disk: %w", ErrInsufficientDisk), http.StatusInsufficientStorage},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, GetErrorCode(tt.err))
		})
	}
}
