package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"feedsink/pkg/refresh"
	"feedsink/pkg/repository"
)

// listSourcesHandler returns all registered sources, active and inactive
func (s *Server) listSourcesHandler(w http.ResponseWriter, r *http.Request) {
	sources, err := s.sources.ListSources(r.Context(), false)
	if err != nil {
		log.Printf("[ERROR] failed to list sources: %v", err)
		renderError(w, r, fmt.Errorf("failed to list sources"), http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"sources": sources,
		"count":   len(sources),
	})
}

// feedSnapshotHandler returns the active sources together with the merged
// read-only entry snapshot across them
func (s *Server) feedSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	limit := s.config.GetSnapshotLimit()
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			renderError(w, r, fmt.Errorf("invalid limit %q", v), http.StatusBadRequest)
			return
		}
		limit = n
	}

	sources, err := s.sources.ListSources(r.Context(), true)
	if err != nil {
		log.Printf("[ERROR] failed to list sources: %v", err)
		renderError(w, r, fmt.Errorf("failed to get feed"), http.StatusInternalServerError)
		return
	}

	entries, err := s.entries.GetRecentEntries(r.Context(), limit)
	if err != nil {
		log.Printf("[ERROR] failed to get entries: %v", err)
		renderError(w, r, fmt.Errorf("failed to get entries"), http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"sources": sources,
		"entries": entries,
		"count":   len(entries),
	})
}

// refreshSourceHandler triggers a synchronous refresh of a single source.
// A fetch attempt that runs and fails is still a completed request, the
// failed log is the result. Error statuses cover only the cases where no
// attempt was made.
func (s *Server) refreshSourceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid source id"), http.StatusBadRequest)
		return
	}

	fetchLog, err := s.refresher.Refresh(r.Context(), id)
	switch {
	case errors.Is(err, repository.ErrSourceNotFound):
		renderError(w, r, fmt.Errorf("source %d not found", id), http.StatusNotFound)
		return
	case errors.Is(err, refresh.ErrRefreshInFlight):
		renderError(w, r, fmt.Errorf("refresh for source %d already in progress", id), http.StatusConflict)
		return
	case errors.Is(err, refresh.ErrSourceInactive):
		renderError(w, r, fmt.Errorf("source %d is inactive", id), http.StatusBadRequest)
		return
	case err != nil:
		log.Printf("[ERROR] refresh failed for source %d: %v", id, err)
		renderError(w, r, fmt.Errorf("refresh failed"), http.StatusInternalServerError)
		return
	}

	source, err := s.sources.GetSource(r.Context(), id)
	if err != nil {
		log.Printf("[ERROR] failed to get source %d after refresh: %v", id, err)
		renderError(w, r, fmt.Errorf("failed to get source"), http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"source":    source,
		"fetch_log": fetchLog,
	})
}

// statusHandler reports liveness and basic counts
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	sources, err := s.sources.ListSources(r.Context(), true)
	if err != nil {
		log.Printf("[ERROR] failed to list sources for status: %v", err)
		renderError(w, r, fmt.Errorf("failed to get status"), http.StatusInternalServerError)
		return
	}

	var synced int
	for _, src := range sources {
		if src.LastSyncedAt != nil {
			synced++
		}
	}

	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"version":        s.version,
		"active_sources": len(sources),
		"synced_sources": synced,
	})
}
