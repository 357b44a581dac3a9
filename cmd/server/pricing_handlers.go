package main

import (
	"net/http"

	"github.com/Simplici0/costquote/internal/httpx"
	"github.com/Simplici0/costquote/internal/model"
	"github.com/Simplici0/costquote/internal/pricing"
	"github.com/Simplici0/costquote/internal/project"
	"github.com/Simplici0/costquote/internal/validation"
)

type overheadRateResponse struct {
	MonthlyTotal float64 `json:"monthly_total"`
	MonthlyHours float64 `json:"monthly_hours"`
	HourlyRate   float64 `json:"hourly_rate"`
}

func (s *server) handlePricingCompute(w http.ResponseWriter, r *http.Request) {
	var in model.ProjectInputs
	if !decodeBody(w, r, &in) {
		return
	}

	v := validation.Violations{}
	validateInputs(in, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	breakdown, err := s.projects.Preview(r.Context(), project.Draft{Inputs: in})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, breakdown)
}

func (s *server) handleOverheadRate(w http.ResponseWriter, r *http.Request) {
	var ws pricing.OverheadWorksheet
	if !decodeBody(w, r, &ws) {
		return
	}

	v := validation.Violations{}
	validateWorksheet("overhead", ws, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	rate, err := ws.HourlyRate()
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, overheadRateResponse{
		MonthlyTotal: ws.Total(),
		MonthlyHours: ws.MonthlyHours,
		HourlyRate:   rate,
	})
}
