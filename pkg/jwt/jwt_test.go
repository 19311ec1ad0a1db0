package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/lubricentro-api/pkg/jwt"
)

const testSecret = "clave-de-pruebas-con-mas-de-32-caracteres"

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, exp, err := pkgjwt.Generate(testSecret, "lubricentro-test", 7, "admin@lubricentro.com", "ADMIN", 24*time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, 2*time.Second)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "admin@lubricentro.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "7", claims.Subject)
	assert.NotEmpty(t, claims.ID, "cada token lleva jti")
}

func TestGenerate_TokensDistintosMismoSegundo(t *testing.T) {
	a, _, err := pkgjwt.Generate(testSecret, "", 1, "a@b.com", "ADMIN", time.Hour)
	require.NoError(t, err)
	b, _, err := pkgjwt.Generate(testSecret, "", 1, "a@b.com", "ADMIN", time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, pkgjwt.Fingerprint(a), pkgjwt.Fingerprint(b))
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, _, err := pkgjwt.Generate(testSecret, "", 1, "a@b.com", "EMPLEADO", -time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrExpired)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, _, err := pkgjwt.Generate(testSecret, "", 1, "a@b.com", "ADMIN", time.Hour)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otra-clave-tambien-de-mas-de-32-caracteres", tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)

	_, err = pkgjwt.Parse(testSecret, "no.es.jwt")
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)
}

func TestParse_RechazaAlgNone(t *testing.T) {
	claims := pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           1,
		Role:             "ADMIN",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)
}

func TestFingerprint_HexSHA256(t *testing.T) {
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", pkgjwt.Fingerprint("abc"))
}
