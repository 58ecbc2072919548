package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation(t *testing.T) {
	assert.Equal(t, time.UTC, Location(""))
	assert.Equal(t, time.UTC, Location("Mars/Olympus"))
	assert.Equal(t, "Europe/Moscow", Location("Europe/Moscow").String())
	assert.True(t, IsValid("UTC"))
	assert.False(t, IsValid("nope/nope"))
}
