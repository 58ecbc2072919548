package serviceprofile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pro-master/backend/internal/httperr"
)

func TestValidateLinks(t *testing.T) {
	tests := []struct {
		name     string
		ids      []uint
		existing []uint
		required bool
		code     string
	}{
		{name: "ok", ids: []uint{1, 2}, existing: []uint{1, 2}},
		{name: "empty optional", ids: nil},
		{name: "empty required", ids: nil, required: true, code: "categories_required"},
		{name: "repeated", ids: []uint{1, 1}, existing: []uint{1}, code: "duplicate_categories"},
		{name: "unknown", ids: []uint{1, 7}, existing: []uint{1}, code: "unknown_categories"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLinks("categories", tt.ids, tt.existing, tt.required)
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
		})
	}
}

func TestValidateLinksEnumeratesUnknown(t *testing.T) {
	err := ValidateLinks("services", []uint{4, 5, 6}, []uint{5}, true)

	var be httperr.BusinessError
	assert.ErrorAs(t, err, &be)
	assert.Equal(t, "Unknown services: 4, 6.", be.Message)
}
