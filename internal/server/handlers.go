package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/seqgram/pkg/buildinfo"
	"github.com/matzehuels/seqgram/pkg/cache"
	"github.com/matzehuels/seqgram/pkg/errors"
	"github.com/matzehuels/seqgram/pkg/pipeline"
	"github.com/matzehuels/seqgram/pkg/seq/layout"
)

// CacheHeader reports whether the response body came from the cache.
const CacheHeader = "X-Seqgram-Cache"

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Line      int    `json:"line,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	input, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), input, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	contentType := "text/plain; charset=utf-8"
	if opts.Format == pipeline.FormatJSON {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set(CacheHeader, cacheStatus(res.CacheInfo.OutputHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Output)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	input, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	d, err := pipeline.Parse(r.Context(), input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	g, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), cache.Hash(input), d, pipeline.Options{Layout: s.layoutConfig()})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set(CacheHeader, cacheStatus(hit))
	writeJSON(w, http.StatusOK, g)
}

// renderOptions builds pipeline options from the query string.
func (s *Server) renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Layout: s.layoutConfig(),
		ASCII:  s.cfg.ASCII,
		Format: q.Get("format"),
	}
	if opts.Format == "" {
		opts.Format = pipeline.DefaultFormat
	}
	if err := pipeline.ValidateFormat(opts.Format); err != nil {
		return opts, err
	}
	if v := q.Get("ascii"); v != "" {
		ascii, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid ascii value %q", v)
		}
		opts.ASCII = ascii
	}
	return opts, nil
}

func (s *Server) layoutConfig() *layout.Config {
	cfg := s.cfg.Layout
	return &cfg
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	return data, nil
}

// writeError maps err to a status code and writes an ErrorResponse.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := ErrorResponse{
		Code:      string(errors.GetCode(err)),
		Message:   errors.UserMessage(err),
		Line:      errors.LineOf(err),
		RequestID: RequestIDFrom(r.Context()),
	}
	if resp.Code == "" {
		resp.Code = string(errors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", resp.RequestID)
		resp.Message = "internal error"
	}
	writeJSON(w, status, resp)
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.IsSyntax(err), errors.IsModel(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrCodeInvalidInput),
		errors.Is(err, errors.ErrCodeInvalidFormat),
		errors.Is(err, errors.ErrCodeInvalidConfig),
		errors.Is(err, errors.ErrCodeInvalidLayout):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
