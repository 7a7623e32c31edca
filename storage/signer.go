// api/storage/signer.go
package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
)

// SignedUpload is a time-limited grant to PUT one object into a bucket.
type SignedUpload struct {
	URL       string    `json:"url"`
	Token     string    `json:"token"`
	Bucket    string    `json:"bucket"`
	Path      string    `json:"path"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Signer issues and verifies signed upload URLs scoped to a bucket and path.
type Signer struct {
	secret []byte
	bucket string
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret, bucket string, ttl time.Duration) *Signer {
	return &Signer{
		secret: []byte(secret),
		bucket: bucket,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the signer's time source.
func (s *Signer) WithClock(now func() time.Time) *Signer {
	s.now = now
	return s
}

func (s *Signer) sign(bucket, path string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "PUT\n%s\n%s\n%d", bucket, path, expires)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignUpload grants a PUT to path in the signer's bucket until the TTL runs out.
func (s *Signer) SignUpload(path string) SignedUpload {
	expiresAt := s.now().Add(s.ttl)
	token := s.sign(s.bucket, path, expiresAt.Unix())
	return SignedUpload{
		URL: fmt.Sprintf("/api/v1/uploads/%s/%s?token=%s&expires=%s",
			s.bucket, path, token, strconv.FormatInt(expiresAt.Unix(), 10)),
		Token:     token,
		Bucket:    s.bucket,
		Path:      path,
		ExpiresAt: expiresAt,
	}
}

// VerifyUpload checks the token's signature and expiry for a PUT request.
func (s *Signer) VerifyUpload(bucket, path, token string, expires int64) error {
	if s.now().Unix() > expires {
		return fixhub_errors.ErrUploadExpired
	}
	expected := s.sign(bucket, path, expires)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(token)) != 1 {
		return fixhub_errors.ErrInvalidUploadToken
	}
	return nil
}
