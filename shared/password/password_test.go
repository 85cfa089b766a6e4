package password_test

import (
	"medimate/shared/password"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "valid password", input: "s3cret-pass"},
		{name: "empty password", input: "", wantErr: password.ErrEmptyPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)

				return
			}

			assert.NoError(t, err)
			assert.NotEqual(t, tt.input, hash)
		})
	}
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("s3cret-pass")
	assert.NoError(t, err)

	tests := []struct {
		name    string
		input   string
		hash    string
		wantErr error
	}{
		{name: "matching password", input: "s3cret-pass", hash: hash},
		{name: "wrong password", input: "other-pass", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty password", input: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", input: "s3cret-pass", hash: "", wantErr: password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.input, tt.hash)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}
