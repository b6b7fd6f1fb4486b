// Package token reads the claimed expiry out of a bearer token.
//
// Only the payload segment is decoded; the signature is never verified. The
// remote API remains the authority on validity, the expiry is used solely to
// avoid sending requests that are bound to fail.
package token

import (
	"encoding/json"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
)

var parser = jwt.NewParser(jwt.WithPaddingAllowed())

// DecodeExpiry returns the "exp" claim of token, a seconds value whose
// fraction is kept to the millisecond. ok is false when the token has no
// payload segment, the payload is not base64url-encoded UTF-8 JSON, or "exp"
// is missing or not a number.
func DecodeExpiry(token string) (expiresAt time.Time, ok bool) {
	segments := strings.Split(token, ".")
	if len(segments) < 2 || segments[1] == "" {
		return time.Time{}, false
	}

	raw, err := parser.DecodeSegment(segments[1])
	if err != nil || !utf8.Valid(raw) {
		return time.Time{}, false
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return time.Time{}, false
	}

	secs, ok := claims["exp"].(float64)
	if !ok || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return time.Time{}, false
	}
	return time.UnixMilli(clampMillis(math.Round(secs * 1000))), true
}

// clampMillis saturates ms to the int64 range, so that an absurdly distant
// expiry still compares as distant instead of wrapping around.
func clampMillis(ms float64) int64 {
	switch {
	case ms >= math.MaxInt64:
		return math.MaxInt64
	case ms <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(ms)
	}
}

// Expired reports whether token is expired at now. Tokens without a
// decodable expiry are expired.
func Expired(token string, now time.Time) bool {
	exp, ok := DecodeExpiry(token)
	if !ok {
		return true
	}
	return !now.Before(exp)
}
