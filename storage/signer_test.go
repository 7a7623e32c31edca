// api/storage/signer_test.go
package storage_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	"github.com/fixhub-app/fixhub/api/storage"
)

func TestSignAndVerifyUpload(t *testing.T) {
	signer := storage.NewSigner("secret", "fixhub-uploads", 15*time.Minute)

	grant := signer.SignUpload("tickets/t-1/photo.jpg")
	require.NotEmpty(t, grant.Token)
	assert.True(t, strings.HasPrefix(grant.URL, "/api/v1/uploads/fixhub-uploads/tickets/t-1/photo.jpg?"))

	err := signer.VerifyUpload(grant.Bucket, grant.Path, grant.Token, grant.ExpiresAt.Unix())
	assert.NoError(t, err)
}

func TestVerifyRejectsTamperedPath(t *testing.T) {
	signer := storage.NewSigner("secret", "fixhub-uploads", 15*time.Minute)

	grant := signer.SignUpload("tickets/t-1/photo.jpg")
	err := signer.VerifyUpload(grant.Bucket, "tickets/t-2/photo.jpg", grant.Token, grant.ExpiresAt.Unix())

	assert.ErrorIs(t, err, fixhub_errors.ErrInvalidUploadToken)
}

func TestVerifyRejectsExpiredGrant(t *testing.T) {
	now := time.Now()
	signer := storage.NewSigner("secret", "fixhub-uploads", 15*time.Minute).
		WithClock(func() time.Time { return now })

	grant := signer.SignUpload("tickets/t-1/photo.jpg")

	now = now.Add(16 * time.Minute)
	err := signer.VerifyUpload(grant.Bucket, grant.Path, grant.Token, grant.ExpiresAt.Unix())

	assert.ErrorIs(t, err, fixhub_errors.ErrUploadExpired)
}

func TestVerifyRejectsForgedToken(t *testing.T) {
	signer := storage.NewSigner("secret", "fixhub-uploads", 15*time.Minute)
	other := storage.NewSigner("other-secret", "fixhub-uploads", 15*time.Minute)

	grant := other.SignUpload("tickets/t-1/photo.jpg")
	err := signer.VerifyUpload(grant.Bucket, grant.Path, grant.Token, grant.ExpiresAt.Unix())

	assert.ErrorIs(t, err, fixhub_errors.ErrInvalidUploadToken)
}
