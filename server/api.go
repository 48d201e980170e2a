package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/wespiper/ufr-ds/internal/induce"
	"github.com/wespiper/ufr-ds/internal/version"
	"github.com/wespiper/ufr-ds/server/dao"
	"github.com/wespiper/ufr-ds/server/result"
	"github.com/wespiper/ufr-ds/server/serr"
)

// PathPrefix is the prefix of all paths in the API. Routers should mount a
// sub-router that routes all requests to the API at this path.
const PathPrefix = "/api/v1"

// api holds the dependencies needed to answer API requests.
type api struct {
	store dao.Store
}

// EndpointFunc is a handler that produces a Result instead of writing
// directly to the ResponseWriter, so that logging and error marshaling can
// be handled uniformly by Endpoint.
type EndpointFunc func(req *http.Request) result.Result

// Endpoint adapts an EndpointFunc into an http.HandlerFunc, logging the
// result and writing it to the response.
func Endpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		r := ep(req)
		if r.Status == 0 {
			panic("endpoint result was never populated")
		}
		r.WriteResponse(w)
		r.Log(req)
	}
}

func requireIDParam(r *http.Request) (uuid.UUID, error) {
	valStr := chi.URLParam(r, "id")
	if valStr == "" {
		return uuid.UUID{}, serr.New("missing id parameter", serr.ErrBadArgument)
	}
	id, err := uuid.Parse(valStr)
	if err != nil {
		return uuid.UUID{}, serr.New("id is not a valid UUID", err, serr.ErrBadArgument)
	}
	return id, nil
}

func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")
	if strings.ToLower(contentType) != "application/json" {
		return serr.New("request content-type is not application/json", serr.ErrBodyUnmarshal)
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer func() {
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(bodyData))
	}()

	if err := json.Unmarshal(bodyData, v); err != nil {
		return serr.New("malformed JSON in request", err, serr.ErrBodyUnmarshal)
	}

	return nil
}

// RunRequest is the JSON body of POST /runs: the tokens to process plus the
// engine config to process them under.
type RunRequest struct {
	Tokens []string         `json:"tokens"`
	Config RunRequestConfig `json:"config"`
}

// RunRequestConfig mirrors induce.EngineConfig over the wire, keeping field
// names snake_case for JSON callers rather than forcing them to match the Go
// struct directly.
type RunRequestConfig struct {
	Emergence      bool    `json:"emergence"`
	Preset         string  `json:"preset,omitempty"`
	Threshold      float64 `json:"threshold,omitempty"`
	Mode           string  `json:"mode,omitempty"`
	K              float64 `json:"k,omitempty"`
	MinPersistence int     `json:"min_persistence,omitempty"`
	Hysteresis     float64 `json:"hysteresis,omitempty"`
	MinGap         int     `json:"min_gap,omitempty"`
	SlidingWindow  int     `json:"sliding_window,omitempty"`
	SlidingStep    int     `json:"sliding_step,omitempty"`
}

func (c RunRequestConfig) toInduce() induce.EngineConfig {
	cfg := induce.DefaultEngineConfig()
	cfg.Emergence = c.Emergence
	if c.Preset != "" {
		cfg.Detector.Preset = induce.Preset(c.Preset)
	}
	if c.Threshold != 0 {
		cfg.Detector.Threshold = c.Threshold
	}
	if c.Mode != "" {
		cfg.Detector.Mode = induce.ThresholdMode(c.Mode)
	}
	if c.K != 0 {
		cfg.Detector.K = c.K
	}
	if c.MinPersistence != 0 {
		cfg.Detector.MinPersistence = c.MinPersistence
	}
	cfg.Detector.Hysteresis = c.Hysteresis
	cfg.Detector.MinGap = c.MinGap
	cfg.SlidingWindow = c.SlidingWindow
	cfg.SlidingStep = c.SlidingStep
	return cfg
}

// RunResponse is the JSON body returned by POST /runs and GET /runs/{id}.
type RunResponse struct {
	ID        uuid.UUID     `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Result    induce.Result `json:"result"`
}

func (a api) epCreateRun(req *http.Request) result.Result {
	var body RunRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	cfg := body.Config.toInduce()
	seen := make(map[string]bool, len(body.Tokens))
	for _, t := range body.Tokens {
		seen[t] = true
	}
	cfg.AlphabetSize = len(seen)

	res, err := cfg.Process(body.Tokens)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	run, err := a.store.Runs().Create(req.Context(), dao.Run{
		Tokens: body.Tokens,
		Config: cfg,
		Result: res,
	})
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	return result.Created(RunResponse{ID: run.ID, CreatedAt: run.CreatedAt, Result: run.Result}, "run %s created", run.ID)
}

func (a api) epGetRun(req *http.Request) result.Result {
	id, err := requireIDParam(req)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	run, err := a.store.Runs().Get(req.Context(), id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return result.NotFound("run %s not found", id)
		}
		return result.InternalServerError(err.Error())
	}

	return result.OK(RunResponse{ID: run.ID, CreatedAt: run.CreatedAt, Result: run.Result}, "run %s retrieved", run.ID)
}

// InfoResponse is the JSON body returned by GET /info.
type InfoResponse struct {
	Version       string `json:"version"`
	ServerVersion string `json:"server_version"`
}

func (a api) epGetInfo(req *http.Request) result.Result {
	resp := InfoResponse{
		Version:       version.Current,
		ServerVersion: version.ServerCurrent,
	}
	return result.OK(resp, "info requested")
}
