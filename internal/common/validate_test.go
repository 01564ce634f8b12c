package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	type form struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		Website  string `json:"website,omitempty" validate:"omitempty,url"`
		Nickname string `validate:"max=3"`
	}

	tests := []struct {
		name       string
		in         form
		wantFields []FieldError
	}{
		{
			name: "valid",
			in:   form{Email: "ash@pallet.town", Password: "pikachu"},
		},
		{
			name: "missing fields",
			in:   form{},
			wantFields: []FieldError{
				{Field: "email", Message: "email is required"},
				{Field: "password", Message: "password is required"},
			},
		},
		{
			name: "bad email and short password",
			in:   form{Email: "not-an-email", Password: "123"},
			wantFields: []FieldError{
				{Field: "email", Message: "email must be a valid email address"},
				{Field: "password", Message: "password must be at least 6 characters"},
			},
		},
		{
			name: "optional url and untagged field name",
			in:   form{Email: "ash@pallet.town", Password: "pikachu", Website: "nope", Nickname: "Ashy"},
			wantFields: []FieldError{
				{Field: "website", Message: "website must be a URL"},
				{Field: "nickname", Message: "nickname must be at most 3 characters"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrInvalidInput)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantFields, verr.Fields)
			assert.Contains(t, err.Error(), tt.wantFields[0].Message)
		})
	}
}
