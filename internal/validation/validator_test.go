package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/readingclub/readingclub/internal/errors"
	"github.com/readingclub/readingclub/internal/validation"
)

type registerRequest struct {
	Username string `json:"username" validate:"username"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6,max=1024"`
}

type commentRequest struct {
	Content string `json:"content" validate:"notblank,max=5000"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(registerRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestValidator_ReportsFieldsByJSONName(t *testing.T) {
	v := validation.New()

	err := v.Validate(registerRequest{Username: "al", Password: "123"})
	require.Error(t, err)

	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeValidation, derr.Code)
	assert.Equal(t, 400, derr.HTTPStatus())

	details, ok := derr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be at least 6 characters", details["password"])
	assert.Contains(t, details, "username")

	// Message names the alphabetically first field.
	assert.Equal(t, "password must be at least 6 characters", derr.Message)
}

func TestValidator_NotBlank(t *testing.T) {
	v := validation.New()

	assert.Error(t, v.Validate(commentRequest{Content: "   "}))
	assert.NoError(t, v.Validate(commentRequest{Content: "Loved it"}))
}

func TestValidUsername(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plain", "alice", true},
		{"too short", "al", false},
		{"inner space", "al ice", false},
		{"trimmed", "  bob  ", true},
		{"unicode", "zoë", true},
		{"too long", string(make([]byte, 51)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.ValidUsername(tt.in))
		})
	}
}
