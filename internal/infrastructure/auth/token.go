package auth

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Vinay9897/postpaid-billing-system/internal/models"
	pkgerrors "github.com/Vinay9897/postpaid-billing-system/pkg/errors"
)

// TokenService is the only component that creates or accepts tokens.
// Issue and Verify are pure functions of their inputs, the immutable
// keypair and the clock; safe for unbounded concurrent use.
type TokenService struct {
	keys *Keypair
	now  func() time.Time
}

func NewTokenService(keys *Keypair) *TokenService {
	return &TokenService{keys: keys, now: time.Now}
}

// Issue mints a signed token for the user. iat is always the signing
// instant, never caller-supplied; exp = iat + ttl. The role must be one of
// the closed role set.
func (s *TokenService) Issue(user *models.User, ttl time.Duration) (string, error) {
	if !user.Role.Valid() {
		return "", fmt.Errorf("%w: %q", pkgerrors.ErrInvalidRole, user.Role)
	}

	now := s.now()
	claims := models.Claims{
		Sub:      strconv.FormatInt(user.ID, 10),
		Role:     string(user.Role),
		Username: user.Username,
		Email:    user.Email,
		IssuedAt: now.Unix(),
		Expires:  now.Add(ttl).Unix(),
	}

	headerSeg, err := encodeSegment(Header{Alg: algRS256, Typ: typJWT})
	if err != nil {
		return "", err
	}
	claimsSeg, err := encodeSegment(claims)
	if err != nil {
		return "", err
	}

	signingInput := headerSeg + "." + claimsSeg
	digest := sha256.Sum256([]byte(signingInput))
	signature, err := rsa.SignPKCS1v15(rand.Reader, s.keys.Private, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signingInput + "." + base64.RawURLEncoding.EncodeToString(signature), nil
}

// Verify checks structure, signature and expiry, in that order, and
// returns the decoded claims unchanged. Verification is all-or-nothing;
// every failure is terminal for the token.
func (s *TokenService) Verify(token string) (*models.Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return nil, pkgerrors.ErrInvalidTokenFormat
	}

	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidSignature, err)
	}

	signingInput := parts[0] + "." + parts[1]
	digest := sha256.Sum256([]byte(signingInput))
	if err := rsa.VerifyPKCS1v15(s.keys.Public, crypto.SHA256, digest[:], signature); err != nil {
		return nil, pkgerrors.ErrInvalidSignature
	}

	var claims models.Claims
	if err := decodeSegment(parts[1], &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrMalformedClaims, err)
	}

	if s.now().Unix() > claims.Expires {
		return nil, pkgerrors.ErrTokenExpired
	}

	return &claims, nil
}
