package quote

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/Simplici0/costquote/internal/logger"
	"github.com/Simplici0/costquote/internal/model"
	"github.com/Simplici0/costquote/internal/pricing"
)

// Repository is the persistence the quote service needs.
type Repository interface {
	Settings(ctx context.Context) (model.Settings, error)
	ProjectByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	CreateQuote(ctx context.Context, q *model.Quote) error
	QuoteByID(ctx context.Context, id uuid.UUID) (*model.Quote, error)
	ListQuotes(ctx context.Context, query string) ([]model.QuoteSummary, error)
	UpdateQuote(ctx context.Context, q *model.Quote) error
	DeleteQuote(ctx context.Context, id uuid.UUID) error
}

// Draft opens a new quote.
type Draft struct {
	Title      string              `json:"title"`
	ClientName string              `json:"client_name"`
	Currency   string              `json:"currency"`
	Tax        *pricing.TaxSetting `json:"tax,omitempty"`
}

// ProductDraft is an inline product priced on the spot and added to a quote.
type ProductDraft struct {
	Name     string              `json:"name"`
	Currency string              `json:"currency"`
	Inputs   model.ProjectInputs `json:"inputs"`
}

// Service manages quotes and keeps their totals in step with every edit.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create opens an empty draft quote. Currency defaults to the settings one.
func (s *Service) Create(ctx context.Context, d Draft) (*model.Quote, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: quote title is required", model.ErrValidation)
	}

	currency := normalizeCurrency(d.Currency)
	if currency == "" {
		settings, err := s.repo.Settings(ctx)
		if err != nil {
			return nil, err
		}
		currency = settings.Currency
	}

	now := s.timestamp()
	q := &model.Quote{
		ID:         uuid.New(),
		Title:      title,
		ClientName: strings.TrimSpace(d.ClientName),
		Currency:   currency,
		Status:     model.QuoteDraft,
		Products:   []pricing.PricedProduct{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if d.Tax != nil {
		q.Tax = lo.ToPtr(*d.Tax)
	}
	if err := q.Recalculate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateQuote(ctx, q); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}
	logger.Info(ctx, "quote created",
		logger.String("quote_id", q.ID.String()),
		logger.String("currency", q.Currency))
	return q, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	return s.repo.QuoteByID(ctx, id)
}

// List returns summaries newest first, filtered by title or client when query is set.
func (s *Service) List(ctx context.Context, query string) ([]model.QuoteSummary, error) {
	return s.repo.ListQuotes(ctx, query)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteQuote(ctx, id); err != nil {
		return err
	}
	logger.Info(ctx, "quote deleted", logger.String("quote_id", id.String()))
	return nil
}

// AddProduct prices an inline product and appends its snapshot.
func (s *Service) AddProduct(ctx context.Context, id uuid.UUID, d ProductDraft) (*model.Quote, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", model.ErrValidation)
	}
	return s.addPriced(ctx, id, name, normalizeCurrency(d.Currency), d.Inputs)
}

// AddProject snapshots a stored project into the quote. Later edits to the
// project do not reach the quote.
func (s *Service) AddProject(ctx context.Context, id, projectID uuid.UUID) (*model.Quote, error) {
	p, err := s.repo.ProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.addPriced(ctx, id, p.Name, p.Currency, p.Inputs)
}

func (s *Service) addPriced(ctx context.Context, id uuid.UUID, name, currency string, in model.ProjectInputs) (*model.Quote, error) {
	settings, err := s.repo.Settings(ctx)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, "product added", func(q *model.Quote) error {
		if currency == "" {
			currency = q.Currency
		}
		if currency != q.Currency {
			return fmt.Errorf("%w: product is %s, quote is %s", pricing.ErrCurrencyMismatch, currency, q.Currency)
		}

		product, err := pricing.NewPricedProduct(name, currency, in.LineItems, in.CostsOr(settings.Overhead), in.Sale, in.TaxOr(settings.Tax))
		if err != nil {
			return err
		}
		q.Products = append(q.Products, product)
		return nil
	})
}

// RemoveProduct drops the product at index.
func (s *Service) RemoveProduct(ctx context.Context, id uuid.UUID, index int) (*model.Quote, error) {
	return s.mutate(ctx, id, "product removed", func(q *model.Quote) error {
		if index < 0 || index >= len(q.Products) {
			return fmt.Errorf("product %d of quote %s: %w", index, q.ID, model.ErrNotFound)
		}
		q.Products = slices.Delete(q.Products, index, index+1)
		return nil
	})
}

// SetDiscount replaces the discount. Nil clears it.
func (s *Service) SetDiscount(ctx context.Context, id uuid.UUID, d *pricing.Discount) (*model.Quote, error) {
	return s.mutate(ctx, id, "discount set", func(q *model.Quote) error {
		q.Discount = nil
		if d != nil {
			q.Discount = lo.ToPtr(*d)
		}
		return nil
	})
}

// SetShipping replaces the shipping charge. Nil clears it.
func (s *Service) SetShipping(ctx context.Context, id uuid.UUID, sh *pricing.Shipping) (*model.Quote, error) {
	return s.mutate(ctx, id, "shipping set", func(q *model.Quote) error {
		q.Shipping = nil
		if sh != nil {
			q.Shipping = lo.ToPtr(*sh)
		}
		return nil
	})
}

// SetTax replaces the quote-level tax setting. Nil falls back to the first product's.
func (s *Service) SetTax(ctx context.Context, id uuid.UUID, tax *pricing.TaxSetting) (*model.Quote, error) {
	return s.mutate(ctx, id, "tax set", func(q *model.Quote) error {
		q.Tax = nil
		if tax != nil {
			q.Tax = lo.ToPtr(*tax)
		}
		return nil
	})
}

// SetStatus moves the quote through draft, final and completed.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, next model.QuoteStatus) (*model.Quote, error) {
	return s.mutate(ctx, id, "status changed", func(q *model.Quote) error {
		if !q.Status.CanTransition(next) {
			return fmt.Errorf("%w: %s to %s", model.ErrInvalidTransition, q.Status, next)
		}
		q.Status = next
		return nil
	})
}

// mutate loads the quote, applies fn, recomputes the totals and saves it.
// Nothing is written when fn or the recomputation fails.
func (s *Service) mutate(ctx context.Context, id uuid.UUID, event string, fn func(q *model.Quote) error) (*model.Quote, error) {
	q, err := s.repo.QuoteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.Status.Terminal() {
		return nil, fmt.Errorf("quote %s: %w", q.ID, model.ErrQuoteCompleted)
	}

	if err := fn(q); err != nil {
		return nil, err
	}
	if err := q.Recalculate(); err != nil {
		return nil, err
	}
	q.UpdatedAt = s.timestamp()

	if err := s.repo.UpdateQuote(ctx, q); err != nil {
		return nil, fmt.Errorf("update quote: %w", err)
	}
	logger.Info(ctx, "quote "+event,
		logger.String("quote_id", q.ID.String()),
		logger.Int("products", len(q.Products)),
		logger.Float64("total_amount", q.Totals.TotalAmount))
	return q, nil
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func normalizeCurrency(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
