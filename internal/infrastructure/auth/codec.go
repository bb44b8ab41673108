package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	pkgerrors "github.com/Vinay9897/postpaid-billing-system/pkg/errors"
)

// Header is the fixed first segment of every token. It is transmitted but
// re-verified: the signature covers header and claims, so tampering with
// either invalidates it.
type Header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

const (
	algRS256 = "RS256"
	typJWT   = "JWT"
)

// encodeSegment serializes v to JSON and encodes the UTF-8 bytes as
// base64url without padding.
func encodeSegment(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", pkgerrors.ErrMalformedSegment, err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// decodeSegment is the inverse of encodeSegment. It fails with
// ErrMalformedSegment if the segment is not base64url or the decoded bytes
// do not unmarshal into v.
func decodeSegment(seg string, v any) error {
	data, err := base64.RawURLEncoding.DecodeString(seg)
	if err != nil {
		return fmt.Errorf("%w: %v", pkgerrors.ErrMalformedSegment, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", pkgerrors.ErrMalformedSegment, err)
	}
	return nil
}
