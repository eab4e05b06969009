package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/ruiji/internal/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	col, ok := s.collectionFromRequest(w, r)
	if !ok {
		return
	}
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request",
		zap.String("collection", col.Name),
		zap.String("query", query.Query),
		zap.Int("k", query.K),
	)
	response, err := s.engine.TopK(r.Context(), col, query.Query, query.K)
	if err != nil {
		s.respondModeError(w, "search", err)
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	col, ok := s.collectionFromRequest(w, r)
	if !ok {
		return
	}
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("rank request", zap.String("collection", col.Name), zap.String("query", query.Query))
	response, err := s.engine.RankAll(r.Context(), col, query.Query)
	if err != nil {
		s.respondModeError(w, "rank", err)
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleAnomalies(w http.ResponseWriter, r *http.Request) {
	col, ok := s.collectionFromRequest(w, r)
	if !ok {
		return
	}
	var query models.AnomalyQuery
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	s.logger.Debug("anomaly request", zap.String("collection", col.Name), zap.Int("count", query.Count))
	response, err := s.ranker.Rank(col, query.Count)
	if err != nil {
		s.respondModeError(w, "anomalies", err)
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	names := s.store.Names()
	collections := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		col, ok := s.store.Get(name)
		if !ok {
			continue
		}
		collections = append(collections, map[string]interface{}{
			"name":       col.Name,
			"type":       col.Type,
			"count":      col.Count,
			"dimensions": col.Dimensions,
			"fields":     col.FieldNames,
		})
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"collections": collections})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"loaded_collections": s.store.Names(),
	}
	if s.registry != nil {
		records, err := s.registry.List(r.Context())
		if err != nil {
			s.logger.Error("status: list registry failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp["registry"] = records
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// collectionFromRequest resolves the {name} URL param against the store,
// writing a 404 when the collection is not loaded.
func (s *Server) collectionFromRequest(w http.ResponseWriter, r *http.Request) (*models.Collection, bool) {
	name := chi.URLParam(r, "name")
	col, ok := s.store.Get(name)
	if !ok {
		s.respondError(w, http.StatusNotFound, "collection not found: "+name)
		return nil, false
	}
	return col, true
}

// respondModeError maps a query mode error to a status code. Bad input from
// the caller is a 400; everything else is a 500.
func (s *Server) respondModeError(w http.ResponseWriter, mode string, err error) {
	if errors.Is(err, models.ErrEmptyQuery) {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error(mode+" failed", zap.Error(err))
	s.respondError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
