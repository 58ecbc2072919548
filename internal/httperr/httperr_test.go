package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(err error) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", nil)
	Respond(c, zap.NewNop(), err)
	return rec
}

func TestRespond_MapsKindsToStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{Invalid("already_favorited", "dup"), http.StatusBadRequest},
		{Missing("not_favorited", "missing"), http.StatusNotFound},
		{ErrForbidden, http.StatusForbidden},
		{ErrNotAuthenticated, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := respond(tc.err)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
	}
}

func TestRespond_UnwrapsWrappedBusinessErrors(t *testing.T) {
	sentinel := Invalid("duplicate_review", "Only one review is allowed.")
	rec := respond(fmt.Errorf("create review: %w", sentinel))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "duplicate_review", body.Code)
	assert.Equal(t, "Only one review is allowed.", body.Message)
}

func TestBusinessError_SentinelsCompareByValue(t *testing.T) {
	a := Invalid("code", "msg")
	b := Invalid("code", "msg")

	assert.True(t, errors.Is(fmt.Errorf("wrap: %w", a), b))
	assert.True(t, IsBusiness(a, "code"))
	assert.False(t, IsBusiness(errors.New("code"), "code"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("unique")))
}
