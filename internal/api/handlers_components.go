package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/tabsync/internal/render"
	"github.com/dgallion1/tabsync/internal/table"
	"github.com/dgallion1/tabsync/internal/tracker"
	"github.com/dgallion1/tabsync/internal/updater"
)

type upsertRequest struct {
	Component          string `json:"component"`
	Branch             string `json:"branch"`
	ChangeRequest      string `json:"change_request"`
	ExternalDependency string `json:"external_dependency"`
	Policy             string `json:"policy,omitempty"`
	DryRun             bool   `json:"dry_run,omitempty"`
}

type upsertResponse struct {
	Result   string     `json:"result"`
	Splice   string     `json:"splice"`
	Headers  []string   `json:"headers"`
	Rows     [][]string `json:"rows"`
	Markdown string     `json:"markdown"`
	DryRun   bool       `json:"dry_run,omitempty"`
}

func (s *Server) handleUpsertComponent(w http.ResponseWriter, r *http.Request) {
	issueKey := chi.URLParam(r, "issueKey")

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	policy := s.defaultPolicy
	if req.Policy != "" {
		p, err := table.ParsePolicy(req.Policy)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		policy = p
	}

	entry := table.Entry{
		Component:          req.Component,
		Branch:             req.Branch,
		ChangeRequest:      req.ChangeRequest,
		ExternalDependency: req.ExternalDependency,
	}
	report, err := updater.Run(r.Context(), s.tracker, issueKey, entry, updater.Options{
		Policy: policy,
		DryRun: req.DryRun,
	})
	if err != nil {
		s.writeUpsertError(w, issueKey, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(upsertResponse{
		Result:   report.Result,
		Splice:   report.Splice,
		Headers:  report.Table.Headers,
		Rows:     report.Table.Rows,
		Markdown: report.Markdown,
		DryRun:   req.DryRun,
	})
}

func (s *Server) writeUpsertError(w http.ResponseWriter, issueKey string, err error) {
	var schemaErr *table.SchemaError
	var conflictErr *table.ConflictError
	switch {
	case errors.Is(err, table.ErrEmptyKey):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &schemaErr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"error":           schemaErr.Error(),
			"expected_schema": schemaErr.Expected,
		})
	case errors.As(err, &conflictErr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"error":        conflictErr.Error(),
			"result":       "conflict",
			"conflict_row": conflictErr.Row,
		})
	case errors.Is(err, tracker.ErrIssueNotFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	default:
		s.log.Error("upsert failed", "issue", issueKey, "error", err)
		jsonError(w, "upsert failed: "+err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleGetComponents(w http.ResponseWriter, r *http.Request) {
	issueKey := chi.URLParam(r, "issueKey")

	t, err := updater.Current(r.Context(), s.tracker, issueKey)
	if err != nil {
		if errors.Is(err, tracker.ErrIssueNotFound) {
			jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		s.log.Error("fetch failed", "issue", issueKey, "error", err)
		jsonError(w, "fetch failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if t == nil {
		jsonError(w, "issue has no component table", http.StatusNotFound)
		return
	}

	md, err := render.Markdown(t)
	if err != nil {
		jsonError(w, "render failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"headers":  t.Headers,
		"rows":     t.Rows,
		"markdown": md,
	})
}
