package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wespiper/ufr-ds/server/dao/inmem"
)

func testRouter() (http.Handler, api) {
	a := api{store: inmem.NewDatastore()}
	r := chi.NewRouter()
	r.Route(PathPrefix, func(r chi.Router) {
		r.Get("/info", Endpoint(a.epGetInfo))
		r.Post("/runs", Endpoint(a.epCreateRun))
		r.Get("/runs/{id}", Endpoint(a.epGetRun))
	})
	return r, a
}

func Test_GetInfo_ReturnsVersion(t *testing.T) {
	r, _ := testRouter()

	req := httptest.NewRequest(http.MethodGet, PathPrefix+"/info", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func Test_CreateRun_RejectsNonJSONBody(t *testing.T) {
	r, _ := testRouter()

	req := httptest.NewRequest(http.MethodPost, PathPrefix+"/runs", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func Test_CreateRun_ThenGetRun_RoundTrip(t *testing.T) {
	r, _ := testRouter()

	body := RunRequest{Tokens: []string{"a", "b", "a", "b", "a", "b"}}
	bodyBytes, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, PathPrefix+"/runs", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created RunResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEqual(t, uuid.Nil, created.ID)

	getReq := httptest.NewRequest(http.MethodGet, PathPrefix+"/runs/"+created.ID.String(), nil)
	getW := httptest.NewRecorder()
	r.ServeHTTP(getW, getReq)

	assert.Equal(t, http.StatusOK, getW.Code)
}

func Test_GetRun_ReturnsNotFoundForUnknownID(t *testing.T) {
	r, _ := testRouter()

	req := httptest.NewRequest(http.MethodGet, PathPrefix+"/runs/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
