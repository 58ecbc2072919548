package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pro-master/backend/internal/httperr"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("master.anna+spb@home_1-x"))
	assert.NoError(t, ValidateUsername("мастер"))

	err := ValidateUsername("bad name!!#")
	require.Error(t, err)

	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "invalid_username", be.Code)
	assert.Equal(t, `Username contains disallowed characters: ' ', '!', '#'.`, be.Message)

	assert.True(t, httperr.IsBusiness(ValidateUsername(""), "invalid_username"))
}

func TestNormalizePhone(t *testing.T) {
	got, err := NormalizePhone("+7 912 345-67-89", "RU")
	require.NoError(t, err)
	assert.Equal(t, "+79123456789", got)

	got, err = NormalizePhone("8 (912) 345-67-89", "RU")
	require.NoError(t, err)
	assert.Equal(t, "+79123456789", got)

	_, err = NormalizePhone("12", "RU")
	assert.ErrorIs(t, err, ErrInvalidPhone)

	_, err = NormalizePhone("phone", "RU")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Anna@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", got)

	_, err = NormalizeEmail("Anna <anna@example.com>")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NormalizeEmail("nope")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	assert.False(t, IsEmailDomainValid("no-at-sign"))
	assert.False(t, IsEmailDomainValid("trailing@"))
}
