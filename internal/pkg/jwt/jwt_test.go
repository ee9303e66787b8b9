package jwt

import (
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestGenerateAndParse_RoundTrip(t *testing.T) {
	for _, id := range []int64{1, 42, 1 << 40} {
		tok, err := GenerateToken(id, testSecret, time.Hour)
		require.NoError(t, err)

		got, err := ParseToken(tok, testSecret)
		require.NoError(t, err)
		require.Equal(t, id, got)
	}
}

func TestGenerateToken_NoTTLIsDeterministic(t *testing.T) {
	a, err := GenerateToken(7, testSecret, 0)
	require.NoError(t, err)
	b, err := GenerateToken(7, testSecret, 0)
	require.NoError(t, err)
	require.Equal(t, a, b)

	got, err := ParseToken(a, testSecret)
	require.NoError(t, err)
	require.Equal(t, int64(7), got)
}

func TestParseToken_WrongSecret(t *testing.T) {
	tok, err := GenerateToken(1, []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("wrong-secret"))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_TamperedSignature(t *testing.T) {
	tok, err := GenerateToken(1, testSecret, time.Hour)
	require.NoError(t, err)

	dot := strings.LastIndex(tok, ".")
	require.Greater(t, dot, 0)
	replacement := byte('A')
	if tok[dot+1] == 'A' {
		replacement = 'B'
	}
	tampered := tok[:dot+1] + string(replacement) + tok[dot+2:]

	_, err = ParseToken(tampered, testSecret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	tok, err := GenerateToken(1, testSecret, -time.Second)
	require.NoError(t, err)
	// negative ttl disables expiry entirely
	_, err = ParseToken(tok, testSecret)
	require.NoError(t, err)

	claims := Claims{
		UserID: 1,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	_, err = ParseToken(expired, testSecret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{UserID: 1}

	hs512, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, claims).SignedString(testSecret)
	require.NoError(t, err)
	_, err = ParseToken(hs512, testSecret)
	require.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseToken(none, testSecret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_MissingUserID(t *testing.T) {
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{"sub": "1"}).SignedString(testSecret)
	require.NoError(t, err)

	_, err = ParseToken(tok, testSecret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	for _, s := range []string{"", "garbage", "not.a.jwt", "a.b.c.d", "....", "Bearer x"} {
		_, err := ParseToken(s, testSecret)
		require.ErrorIs(t, err, ErrInvalidToken, s)
	}
}
