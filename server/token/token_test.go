package token

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_GenerateAndValidate_RoundTrip(t *testing.T) {
	secret := []byte("super-secret-value-at-least-32-bytes!!")

	tok, err := Generate(secret)
	assert.NoError(t, err)
	assert.NotEmpty(t, tok)

	assert.NoError(t, Validate(tok, secret))
}

func Test_Validate_RejectsWrongSecret(t *testing.T) {
	tok, err := Generate([]byte("correct-secret-at-least-32-bytes-long!!"))
	assert.NoError(t, err)

	err = Validate(tok, []byte("wrong-secret-also-at-least-32-bytes!!!!"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func Test_Validate_RejectsGarbageToken(t *testing.T) {
	err := Validate("not-a-jwt-at-all", []byte("secret-at-least-32-bytes-long!!!!!!!!!!"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func Test_Get_ReturnsErrNoTokenPresentWhenHeaderMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/runs", nil)

	_, err := Get(req)
	assert.ErrorIs(t, err, ErrNoTokenPresent)
}

func Test_Get_ReturnsErrNoTokenPresentWhenHeaderMalformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	_, err := Get(req)
	assert.ErrorIs(t, err, ErrNoTokenPresent)
}

func Test_Get_ExtractsBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")

	tok, err := Get(req)
	assert.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)
}

func Test_HashSecret_VerifySecret_RoundTrip(t *testing.T) {
	secret := []byte("a-reasonably-long-shared-secret-value!!")

	hash, err := HashSecret(secret)
	assert.NoError(t, err)
	assert.NoError(t, VerifySecret(hash, secret))
}

func Test_VerifySecret_RejectsMismatch(t *testing.T) {
	hash, err := HashSecret([]byte("original-secret-value-that-is-long!!!!"))
	assert.NoError(t, err)

	err = VerifySecret(hash, []byte("a-different-secret-value-entirely!!!!!"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
