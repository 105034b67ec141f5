package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
	"github.com/secmon-lab/cbrecommend/pkg/service/intake"
	"github.com/secmon-lab/cbrecommend/pkg/usecase"
	"github.com/secmon-lab/cbrecommend/pkg/utils/errutil"
	"github.com/secmon-lab/cbrecommend/pkg/utils/safe"
)

type healthResponse struct {
	Status         string     `json:"status"`
	CorpusLoadedAt *time.Time `json:"corpus_loaded_at,omitempty"`
}

type casesResponse struct {
	Count int           `json:"count"`
	Cases []*model.Case `json:"cases"`
}

type classifyResponse struct {
	Label       types.Label `json:"label"`
	Description string      `json:"description"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if s.loadedAt != nil {
		if t := s.loadedAt(); !t.IsZero() {
			resp.CorpusLoadedAt = &t
		}
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) listCasesHandler(w http.ResponseWriter, r *http.Request) {
	cases, err := s.uc.ListCases(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}
	writeJSON(w, r, http.StatusOK, casesResponse{Count: len(cases), Cases: cases})
}

func (s *Server) classifyHandler(w http.ResponseWriter, r *http.Request) {
	query, err := intake.FromJSON(r.Body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	label, err := s.uc.Classify(r.Context(), query)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}
	writeJSON(w, r, http.StatusOK, classifyResponse{Label: label, Description: label.Description()})
}

func (s *Server) recommendHandler(w http.ResponseWriter, r *http.Request) {
	topK, err := intParam(r, "top_k", s.topK)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	topN, err := intParam(r, "top_n", s.topN)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	query, err := intake.FromJSON(r.Body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	result, err := s.uc.Recommend(r.Context(), query, topK, topN)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, goerr.Wrap(err, "query parameter must be an integer", goerr.V("name", name), goerr.V("value", raw))
	}
	return n, nil
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidCase):
		return http.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrCorpusUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}
