package main

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/Simplici0/costquote/internal/httpx"
	"github.com/Simplici0/costquote/internal/model"
	"github.com/Simplici0/costquote/internal/pricing"
	"github.com/Simplici0/costquote/internal/quote"
	"github.com/Simplici0/costquote/internal/validation"
)

type statusRequest struct {
	Status string `json:"status"`
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.quotes.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quotes)
}

func (s *server) handleQuotesCreate(w http.ResponseWriter, r *http.Request) {
	var d quote.Draft
	if !decodeBody(w, r, &d) {
		return
	}

	v := validation.Violations{}
	validation.Required("title", d.Title, v)
	validateCurrency("currency", d.Currency, v)
	if d.Tax != nil {
		validateTax("tax", *d.Tax, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	q, err := s.quotes.Create(r.Context(), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, q)
}

func (s *server) handleQuoteGet(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	q, err := s.quotes.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (s *server) handleQuoteDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := s.quotes.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleQuoteAddProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var d quote.ProductDraft
	if !decodeBody(w, r, &d) {
		return
	}

	v := validation.Violations{}
	validation.Required("name", d.Name, v)
	validateCurrency("currency", d.Currency, v)
	validateInputs(d.Inputs, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	s.respondQuote(w, r, func() (*model.Quote, error) {
		return s.quotes.AddProduct(r.Context(), id, d)
	})
}

func (s *server) handleQuoteAddProject(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	projectID, ok := uuidParam(w, r, "projectID")
	if !ok {
		return
	}
	s.respondQuote(w, r, func() (*model.Quote, error) {
		return s.quotes.AddProject(r.Context(), id, projectID)
	})
}

func (s *server) handleQuoteRemoveProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	index, ok := intParam(w, r, "index")
	if !ok {
		return
	}
	s.respondQuote(w, r, func() (*model.Quote, error) {
		return s.quotes.RemoveProduct(r.Context(), id, index)
	})
}

func (s *server) handleQuoteSetDiscount(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var d pricing.Discount
	if !decodeBody(w, r, &d) {
		return
	}
	v := validation.Violations{}
	validateDiscount(d, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	s.respondQuote(w, r, func() (*model.Quote, error) {
		return s.quotes.SetDiscount(r.Context(), id, &d)
	})
}

func (s *server) handleQuoteClearDiscount(w http.ResponseWriter, r *http.Request) {
	clearQuoteField(s, w, r, s.quotes.SetDiscount)
}

func (s *server) handleQuoteSetShipping(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var sh pricing.Shipping
	if !decodeBody(w, r, &sh) {
		return
	}
	v := validation.Violations{}
	validateShipping(sh, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	s.respondQuote(w, r, func() (*model.Quote, error) {
		return s.quotes.SetShipping(r.Context(), id, &sh)
	})
}

func (s *server) handleQuoteClearShipping(w http.ResponseWriter, r *http.Request) {
	clearQuoteField(s, w, r, s.quotes.SetShipping)
}

func (s *server) handleQuoteSetTax(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var tax pricing.TaxSetting
	if !decodeBody(w, r, &tax) {
		return
	}
	v := validation.Violations{}
	validateTax("tax", tax, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	s.respondQuote(w, r, func() (*model.Quote, error) {
		return s.quotes.SetTax(r.Context(), id, &tax)
	})
}

func (s *server) handleQuoteClearTax(w http.ResponseWriter, r *http.Request) {
	clearQuoteField(s, w, r, s.quotes.SetTax)
}

func (s *server) handleQuoteSetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req statusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	status, err := model.ParseQuoteStatus(req.Status)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"status": "invalid_choice"})
		return
	}
	s.respondQuote(w, r, func() (*model.Quote, error) {
		return s.quotes.SetStatus(r.Context(), id, status)
	})
}

func (s *server) respondQuote(w http.ResponseWriter, r *http.Request, fn func() (*model.Quote, error)) {
	q, err := fn()
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

// clearQuoteField calls a quote setter with nil.
func clearQuoteField[T any](s *server, w http.ResponseWriter, r *http.Request, set func(ctx context.Context, id uuid.UUID, v *T) (*model.Quote, error)) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	s.respondQuote(w, r, func() (*model.Quote, error) {
		return set(r.Context(), id, nil)
	})
}
