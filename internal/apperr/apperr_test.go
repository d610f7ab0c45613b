package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, KindNotFound, KindOf(NotFound("post", 1)))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))

	wrapped := fmt.Errorf("context: %w", Forbidden("nope"))
	assert.True(t, Is(wrapped, KindForbidden))
	assert.False(t, Is(wrapped, KindNotFound))
}

func TestFromDB(t *testing.T) {
	assert.NoError(t, FromDB(nil, "post", 1))
	assert.True(t, Is(FromDB(gorm.ErrRecordNotFound, "post", 1), KindNotFound))

	err := FromDB(errors.New("connection refused"), "post", 1)
	assert.True(t, Is(err, KindInternal))
	assert.ErrorContains(t, err, "connection refused")
}

func TestValidationFields(t *testing.T) {
	err := ValidationFields(map[string]string{"text": "required", "group": "invalid choice"})
	assert.Equal(t, "invalid choice; required", err.Message)
	assert.Equal(t, map[string][]string{
		"text":  {"required"},
		"group": {"invalid choice"},
	}, err.FieldErrors())
}
