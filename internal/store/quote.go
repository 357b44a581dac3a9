package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/Simplici0/costquote/internal/model"
	"github.com/Simplici0/costquote/internal/pricing"
)

var quoteColumns = []string{
	"id", "title", "client_name", "currency", "status",
	"tax_json", "discount_json", "shipping_json", "products_json", "totals_json",
	"created_at", "updated_at",
}

type quoteRow struct {
	tax, discount, shipping sql.NullString
	products, totals        string
}

// CreateQuote inserts a new quote.
func (s *Store) CreateQuote(ctx context.Context, q *model.Quote) error {
	enc, err := encodeQuote(q)
	if err != nil {
		return err
	}

	_, err = s.exec(ctx, s.sb.
		Insert("quotes").
		Columns(quoteColumns...).
		Columns("total_amount").
		Values(
			q.ID.String(), q.Title, q.ClientName, q.Currency, string(q.Status),
			enc.tax, enc.discount, enc.shipping, enc.products, enc.totals,
			FormatTime(q.CreatedAt), FormatTime(q.UpdatedAt),
			q.Totals.TotalAmount,
		))
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// QuoteByID loads one quote with its product snapshots.
func (s *Store) QuoteByID(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	row, err := s.queryRow(ctx, s.sb.
		Select(quoteColumns...).
		From("quotes").
		Where(sq.Eq{"id": id.String()}))
	if err != nil {
		return nil, err
	}

	q, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("quote %s: %w", id, model.ErrNotFound)
		}
		return nil, err
	}
	return q, nil
}

// ListQuotes returns quote summaries, newest first. A non-empty query filters
// by title or client name, case-insensitively.
func (s *Store) ListQuotes(ctx context.Context, query string) ([]model.QuoteSummary, error) {
	sel := s.sb.
		Select("id", "title", "client_name", "currency", "status", "total_amount", "created_at").
		From("quotes").
		OrderBy("created_at DESC", "id DESC")

	if query = strings.TrimSpace(query); query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		sel = sel.Where(sq.Or{
			sq.Like{"LOWER(title)": pattern},
			sq.Like{"LOWER(client_name)": pattern},
		})
	}

	rows, err := s.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]model.QuoteSummary, 0)
	for rows.Next() {
		var (
			item      model.QuoteSummary
			id        string
			status    string
			createdAt string
		)
		if err := rows.Scan(&id, &item.Title, &item.ClientName, &item.Currency, &status, &item.TotalAmount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		if item.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse quote id: %w", err)
		}
		if item.Status, err = model.ParseQuoteStatus(status); err != nil {
			return nil, err
		}
		if item.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		quotes = append(quotes, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}
	return quotes, nil
}

// UpdateQuote overwrites a quote. Last write wins.
func (s *Store) UpdateQuote(ctx context.Context, q *model.Quote) error {
	enc, err := encodeQuote(q)
	if err != nil {
		return err
	}

	res, err := s.exec(ctx, s.sb.
		Update("quotes").
		Set("title", q.Title).
		Set("client_name", q.ClientName).
		Set("currency", q.Currency).
		Set("status", string(q.Status)).
		Set("tax_json", enc.tax).
		Set("discount_json", enc.discount).
		Set("shipping_json", enc.shipping).
		Set("products_json", enc.products).
		Set("totals_json", enc.totals).
		Set("total_amount", q.Totals.TotalAmount).
		Set("updated_at", FormatTime(q.UpdatedAt)).
		Where(sq.Eq{"id": q.ID.String()}))
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	if !ok {
		return fmt.Errorf("quote %s: %w", q.ID, model.ErrNotFound)
	}
	return nil
}

// DeleteQuote removes a quote.
func (s *Store) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	res, err := s.exec(ctx, s.sb.Delete("quotes").Where(sq.Eq{"id": id.String()}))
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	if !ok {
		return fmt.Errorf("quote %s: %w", id, model.ErrNotFound)
	}
	return nil
}

func encodeQuote(q *model.Quote) (quoteRow, error) {
	var (
		enc quoteRow
		err error
	)
	if enc.tax, err = marshalOptional(q.Tax); err != nil {
		return quoteRow{}, fmt.Errorf("encode quote tax: %w", err)
	}
	if enc.discount, err = marshalOptional(q.Discount); err != nil {
		return quoteRow{}, fmt.Errorf("encode quote discount: %w", err)
	}
	if enc.shipping, err = marshalOptional(q.Shipping); err != nil {
		return quoteRow{}, fmt.Errorf("encode quote shipping: %w", err)
	}
	products := q.Products
	if products == nil {
		products = []pricing.PricedProduct{}
	}
	if enc.products, err = marshalJSON(products); err != nil {
		return quoteRow{}, fmt.Errorf("encode quote products: %w", err)
	}
	if enc.totals, err = marshalJSON(q.Totals); err != nil {
		return quoteRow{}, fmt.Errorf("encode quote totals: %w", err)
	}
	return enc, nil
}

func scanQuote(row rowScanner) (*model.Quote, error) {
	var (
		q                    model.Quote
		raw                  quoteRow
		id, status           string
		createdAt, updatedAt string
	)
	if err := row.Scan(
		&id, &q.Title, &q.ClientName, &q.Currency, &status,
		&raw.tax, &raw.discount, &raw.shipping, &raw.products, &raw.totals,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if q.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse quote id: %w", err)
	}
	if q.Status, err = model.ParseQuoteStatus(status); err != nil {
		return nil, err
	}
	if q.Tax, err = unmarshalOptional[pricing.TaxSetting](raw.tax); err != nil {
		return nil, fmt.Errorf("decode quote tax: %w", err)
	}
	if q.Discount, err = unmarshalOptional[pricing.Discount](raw.discount); err != nil {
		return nil, fmt.Errorf("decode quote discount: %w", err)
	}
	if q.Shipping, err = unmarshalOptional[pricing.Shipping](raw.shipping); err != nil {
		return nil, fmt.Errorf("decode quote shipping: %w", err)
	}
	if err := json.Unmarshal([]byte(raw.products), &q.Products); err != nil {
		return nil, fmt.Errorf("decode quote products: %w", err)
	}
	if err := json.Unmarshal([]byte(raw.totals), &q.Totals); err != nil {
		return nil, fmt.Errorf("decode quote totals: %w", err)
	}
	if q.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if q.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &q, nil
}
