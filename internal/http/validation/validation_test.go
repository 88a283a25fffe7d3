package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func TestFromBindError_FieldMessages(t *testing.T) {
	v := validator.New()

	err := v.Struct(sampleInput{Email: "not-an-email"})
	require.Error(t, err)

	fields := FromBindError(err, &sampleInput{})
	require.Equal(t, "This field is required.", fields["name"])
	require.Equal(t, "Enter a valid email address.", fields["email"])
}

func TestFromBindError_NonValidationError(t *testing.T) {
	fields := FromBindError(errors.New("unexpected EOF"), &sampleInput{})
	require.Equal(t, "Request body is invalid.", fields["_"])
}
