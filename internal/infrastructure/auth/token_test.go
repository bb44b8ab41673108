package auth

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/Vinay9897/postpaid-billing-system/internal/models"
	pkgerrors "github.com/Vinay9897/postpaid-billing-system/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeypair(t *testing.T) *Keypair {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return &Keypair{Private: key, Public: &key.PublicKey}
}

func testUser() *models.User {
	return &models.User{
		ID:       10,
		Username: "alice",
		Email:    "alice@example.com",
		Role:     models.RoleCustomer,
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService(newTestKeypair(t))

	token, err := svc.Issue(testUser(), time.Hour)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "10", claims.Sub)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Greater(t, claims.Expires, claims.IssuedAt)
}

func TestTokenService_IssueRejectsUnknownRole(t *testing.T) {
	svc := NewTokenService(newTestKeypair(t))

	user := testUser()
	user.Role = "superuser"
	_, err := svc.Issue(user, time.Hour)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidRole)
}

func TestTokenService_TamperedSegments(t *testing.T) {
	svc := NewTokenService(newTestKeypair(t))

	token, err := svc.Issue(testUser(), time.Hour)
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	for i, name := range []string{"header", "claims", "signature"} {
		t.Run(name, func(t *testing.T) {
			tampered := make([]string, 3)
			copy(tampered, parts)
			tampered[i] = flipChar(tampered[i])

			_, err := svc.Verify(strings.Join(tampered, "."))
			assert.ErrorIs(t, err, pkgerrors.ErrInvalidSignature)
		})
	}
}

// flipChar swaps the first character for a different base64url character,
// keeping the segment decodable so the signature check is what fails.
func flipChar(s string) string {
	replacement := byte('A')
	if s[0] == 'A' {
		replacement = 'B'
	}
	return string(replacement) + s[1:]
}

func TestTokenService_VerifyWithWrongKey(t *testing.T) {
	issuer := NewTokenService(newTestKeypair(t))
	verifier := NewTokenService(newTestKeypair(t))

	token, err := issuer.Issue(testUser(), time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidSignature)
}

func TestTokenService_Expiry(t *testing.T) {
	svc := NewTokenService(newTestKeypair(t))

	token, err := svc.Issue(testUser(), -time.Second)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, pkgerrors.ErrTokenExpired)
}

func TestTokenService_ExpiryBoundary(t *testing.T) {
	keys := newTestKeypair(t)
	svc := NewTokenService(keys)

	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }
	token, err := svc.Issue(testUser(), time.Hour)
	require.NoError(t, err)

	// The exact expiry instant is still valid; one second past is not.
	svc.now = func() time.Time { return issuedAt.Add(time.Hour) }
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(time.Hour + time.Second) }
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, pkgerrors.ErrTokenExpired)
}

func TestTokenService_MalformedTokens(t *testing.T) {
	svc := NewTokenService(newTestKeypair(t))

	formatCases := []string{
		"",
		"onlyone",
		"two.segments",
		"a.b.c.d",
		"..",
		".b.c",
		"a..c",
		"a.b.",
	}
	for _, tc := range formatCases {
		_, err := svc.Verify(tc)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidTokenFormat, "token %q", tc)
	}

	// Structurally fine but not base64url.
	_, err := svc.Verify("!!!.@@@.###")
	assert.Error(t, err)
}

func TestTokenService_MalformedClaimsWithValidSignature(t *testing.T) {
	keys := newTestKeypair(t)
	svc := NewTokenService(keys)

	// Sign a claims segment that is valid base64url but not a claims object.
	headerSeg, err := encodeSegment(Header{Alg: algRS256, Typ: typJWT})
	require.NoError(t, err)
	claimsSeg, err := encodeSegment([]string{"not", "claims"})
	require.NoError(t, err)

	token := signFor(t, keys, headerSeg+"."+claimsSeg)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, pkgerrors.ErrMalformedClaims)
}

func signFor(t *testing.T, keys *Keypair, signingInput string) string {
	t.Helper()
	digest := sha256.Sum256([]byte(signingInput))
	sig, err := rsa.SignPKCS1v15(rand.Reader, keys.Private, crypto.SHA256, digest[:])
	require.NoError(t, err)
	return signingInput + "." + base64.RawURLEncoding.EncodeToString(sig)
}
