package middle

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wespiper/ufr-ds/server/token"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func Test_RequireAPIKey_RejectsMissingToken(t *testing.T) {
	secret := []byte("a-reasonably-long-shared-secret-value!!")
	mw := RequireAPIKey(secret, 0)

	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	w := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func Test_RequireAPIKey_RejectsWrongSecret(t *testing.T) {
	secret := []byte("a-reasonably-long-shared-secret-value!!")
	wrong := []byte("a-totally-different-secret-value-here!!")
	tok, err := token.Generate(wrong)
	assert.NoError(t, err)

	mw := RequireAPIKey(secret, 0)

	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func Test_RequireAPIKey_AllowsValidToken(t *testing.T) {
	secret := []byte("a-reasonably-long-shared-secret-value!!")
	tok, err := token.Generate(secret)
	assert.NoError(t, err)

	mw := RequireAPIKey(secret, 0)

	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func Test_DontPanic_RecoversAndReturns500(t *testing.T) {
	mw := DontPanic()

	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	w := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		mw(panicky).ServeHTTP(w, req)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
