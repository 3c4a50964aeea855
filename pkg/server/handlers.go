package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/sorttrace/pkg/bounds"
	"github.com/matzehuels/sorttrace/pkg/buildinfo"
	"github.com/matzehuels/sorttrace/pkg/counting"
	"github.com/matzehuels/sorttrace/pkg/errors"
	"github.com/matzehuels/sorttrace/pkg/mergetrace"
	"github.com/matzehuels/sorttrace/pkg/quicktrace"
	"github.com/matzehuels/sorttrace/pkg/session"
	"github.com/matzehuels/sorttrace/pkg/sweep"
)

type valuesRequest struct {
	Values []int `json:"values"`
}

func (s *Server) readValues(w http.ResponseWriter, r *http.Request, limit int) ([]int, error) {
	var req valuesRequest
	if err := decode(w, r, &req); err != nil {
		return nil, err
	}
	if len(req.Values) > limit {
		return nil, errors.New(errors.ErrCodeInvalidInput, "too many values (max %d)", limit)
	}
	if req.Values == nil {
		req.Values = []int{}
	}
	return req.Values, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
}

func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	n, err := errors.ParseLength(chi.URLParam(r, "n"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := bounds.Of(n)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

type sortResult struct {
	Sorted      []int `json:"sorted"`
	Comparisons int   `json:"comparisons"`
}

type countResponse struct {
	N      int           `json:"n"`
	Quick  sortResult    `json:"quicksort"`
	Merge  sortResult    `json:"mergesort"`
	Bounds bounds.Bounds `json:"bounds"`
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	values, err := s.readValues(w, r, errors.MaxValues)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	qs, qc, err := counting.Quicksort(values)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ms, mc, err := counting.Mergesort(values)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := bounds.Of(len(values))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{
		N:      len(values),
		Quick:  sortResult{Sorted: qs, Comparisons: qc},
		Merge:  sortResult{Sorted: ms, Comparisons: mc},
		Bounds: b,
	})
}

func (s *Server) handleQuicksort(w http.ResponseWriter, r *http.Request) {
	values, err := s.readValues(w, r, MaxTraceValues)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tr, err := quicktrace.Build(values)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

type compareResponse struct {
	*sweep.Report
	CacheHit bool `json:"cache_hit"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var opts sweep.Options
	if err := decode(w, r, &opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.sweeps.Run(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, compareResponse{Report: res.Report, CacheHit: res.CacheHit})
}

func (s *Server) handleMergeStart(w http.ResponseWriter, r *http.Request) {
	values, err := s.readValues(w, r, MaxTraceValues)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, err := session.New(values, s.ttl)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/merge/"+sess.ID)
	writeJSON(w, http.StatusCreated, sess.State())
}

func (s *Server) handleMergeState(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

type nextResponse struct {
	Event  mergetrace.Event[int] `json:"event"`
	Pulled int                   `json:"pulled"`
}

func (s *Server) handleMergeNext(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ev, err := sess.Next()
	if err != nil {
		// The trace is over either way; the session has nothing left to give.
		_ = s.sessions.Delete(r.Context(), id)
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nextResponse{Event: ev, Pulled: sess.State().Pulled})
}

func (s *Server) handleMergeDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.sessions.Get(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
