package token

import (
	"encoding/base64"
	"math"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seg(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func unsigned(payload string) string {
	return seg(`{"alg":"HS256","typ":"JWT"}`) + "." + seg(payload) + ".sig"
}

func TestDecodeExpiry_SignedToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	got, ok := DecodeExpiry(tok)
	require.True(t, ok)
	assert.True(t, exp.Equal(got), "want %v, got %v", exp, got)
}

func TestDecodeExpiry_SecondsToInstant(t *testing.T) {
	got, ok := DecodeExpiry(unsigned(`{"exp":1000}`))
	require.True(t, ok)
	assert.Equal(t, int64(1_000_000), got.UnixMilli())
}

func TestDecodeExpiry_Millis(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int64
	}{
		{name: "whole seconds", payload: `{"exp":1000}`, want: 1_000_000},
		{name: "fraction kept", payload: `{"exp":1000.9}`, want: 1_000_900},
		{name: "rounded to ms", payload: `{"exp":1000.0004}`, want: 1_000_000},
		{name: "negative", payload: `{"exp":-1.5}`, want: -1_500},
		{name: "beyond int64 ms", payload: `{"exp":1e19}`, want: math.MaxInt64},
		{name: "far past", payload: `{"exp":-1e19}`, want: math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeExpiry(unsigned(tt.payload))
			require.True(t, ok)
			assert.Equal(t, tt.want, got.UnixMilli())
		})
	}
}

func TestDecodeExpiry_Absent(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "single segment", token: "abcdef"},
		{name: "empty payload segment", token: "header..sig"},
		{name: "not base64", token: "h.!!!.s"},
		{name: "not json", token: "h." + seg("not json") + ".s"},
		{name: "json array", token: "h." + seg("[1,2]") + ".s"},
		{name: "invalid utf8", token: "h." + base64.RawURLEncoding.EncodeToString([]byte{0xff, 0xfe}) + ".s"},
		{name: "missing exp", token: unsigned(`{"sub":"alice"}`)},
		{name: "string exp", token: unsigned(`{"exp":"1000"}`)},
		{name: "null payload", token: unsigned(`null`)},
		{name: "bool exp", token: unsigned(`{"exp":true}`)},
		{name: "out of float range", token: unsigned(`{"exp":1e400}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := DecodeExpiry(tt.token)
			assert.False(t, ok)
		})
	}
}

func TestDecodeExpiry_TwoSegmentsEnough(t *testing.T) {
	_, ok := DecodeExpiry("h." + seg(`{"exp":2000000000}`))
	assert.True(t, ok)
}

func TestDecodeExpiry_PaddedSegment(t *testing.T) {
	padded := base64.URLEncoding.EncodeToString([]byte(`{"exp":10}`))
	_, ok := DecodeExpiry("h." + padded + ".s")
	assert.True(t, ok)
}

func TestExpired(t *testing.T) {
	now := time.UnixMilli(2_000_000)

	assert.True(t, Expired(unsigned(`{"exp":1000}`), now), "1,000,000 ms is before 2,000,000 ms")
	assert.True(t, Expired(unsigned(`{"exp":2000}`), now), "expiry equal to now is expired")
	assert.False(t, Expired(unsigned(`{"exp":2001}`), now))
	assert.True(t, Expired("garbage", now))
}

func TestExpired_SubSecond(t *testing.T) {
	tok := unsigned(`{"exp":1000.9}`)

	assert.False(t, Expired(tok, time.UnixMilli(1_000_500)))
	assert.False(t, Expired(tok, time.UnixMilli(1_000_899)))
	assert.True(t, Expired(tok, time.UnixMilli(1_000_900)))
}

func TestExpired_FarFuture(t *testing.T) {
	assert.False(t, Expired(unsigned(`{"exp":1e19}`), time.Now()))
	assert.True(t, Expired(unsigned(`{"exp":-1e19}`), time.Now()))
}
