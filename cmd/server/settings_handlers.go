package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/Simplici0/costquote/internal/httpx"
	"github.com/Simplici0/costquote/internal/logger"
	"github.com/Simplici0/costquote/internal/model"
	"github.com/Simplici0/costquote/internal/validation"
)

func (s *server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	st, err := s.settings.Settings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, st)
}

func (s *server) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var st model.Settings
	if !decodeBody(w, r, &st) {
		return
	}
	st.Currency = normalizeCurrency(st.Currency)

	v := validation.Violations{}
	validation.Required("currency", st.Currency, v)
	validateCurrency("currency", st.Currency, v)
	validateTax("tax", st.Tax, v)
	validateWorksheet("overhead", st.Overhead, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	st.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	if err := s.settings.SaveSettings(r.Context(), st); err != nil {
		writeError(w, r, err)
		return
	}
	logger.Info(r.Context(), "settings updated",
		logger.String("currency", st.Currency),
		logger.Float64("tax_rate", st.Tax.Rate))
	httpx.JSON(w, http.StatusOK, st)
}

func normalizeCurrency(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
