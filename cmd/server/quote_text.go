package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Simplici0/costquote/internal/logger"
	"github.com/Simplici0/costquote/internal/model"
	"github.com/Simplici0/costquote/internal/money"
)

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	q, err := s.quotes.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(renderQuoteText(q))); err != nil {
		logger.Warn(r.Context(), "write quote text", logger.ErrorF(err))
	}
}

// renderQuoteText formats the stored snapshot; nothing is recomputed.
func renderQuoteText(q *model.Quote) string {
	cur := q.Currency
	t := q.Totals

	var b strings.Builder
	fmt.Fprintf(&b, "Cotización: %s\n", q.Title)
	if q.ClientName != "" {
		fmt.Fprintf(&b, "Cliente: %s\n", q.ClientName)
	}
	fmt.Fprintf(&b, "Estado: %s\n", q.Status)
	fmt.Fprintf(&b, "Fecha: %s\n", q.CreatedAt.Format("2006-01-02"))

	b.WriteString("\nProductos:\n")
	if len(q.Products) == 0 {
		b.WriteString("- (sin productos)\n")
	}
	for _, p := range q.Products {
		fmt.Fprintf(&b, "- %s x%d @ %s = %s\n",
			p.ProductName, p.Quantity, money.Format(p.UnitPrice, cur), money.Format(p.TotalPrice, cur))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", money.Format(t.Subtotal, cur))
	if q.Discount != nil {
		fmt.Fprintf(&b, "Descuento: -%s\n", money.Format(t.DiscountAmount, cur))
	}
	if q.Shipping != nil {
		fmt.Fprintf(&b, "Envío: %s\n", money.Format(t.ShippingAmount, cur))
	}
	mode := "no incluido"
	if t.Tax.Inclusive {
		mode = "incluido"
	}
	fmt.Fprintf(&b, "IVA (%s, %s): %s\n", money.Percent(t.Tax.Rate), mode, money.Format(t.VATAmount, cur))
	fmt.Fprintf(&b, "Total: %s\n", money.Format(t.TotalAmount, cur))
	return b.String()
}
