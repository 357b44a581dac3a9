package main

import (
	"net/http"

	"github.com/Simplici0/costquote/internal/httpx"
	"github.com/Simplici0/costquote/internal/project"
	"github.com/Simplici0/costquote/internal/validation"
)

func validateProjectDraft(d project.Draft) validation.Violations {
	v := validation.Violations{}
	validation.Required("name", d.Name, v)
	validateCurrency("currency", d.Currency, v)
	validateInputs(d.Inputs, v)
	return v
}

func (s *server) handleProjectsList(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, projects)
}

func (s *server) handleProjectsCreate(w http.ResponseWriter, r *http.Request) {
	var d project.Draft
	if !decodeBody(w, r, &d) {
		return
	}
	if v := validateProjectDraft(d); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	p, err := s.projects.Create(r.Context(), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (s *server) handleProjectGet(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	p, err := s.projects.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (s *server) handleProjectUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var d project.Draft
	if !decodeBody(w, r, &d) {
		return
	}
	if v := validateProjectDraft(d); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	p, err := s.projects.Update(r.Context(), id, d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (s *server) handleProjectDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := s.projects.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
