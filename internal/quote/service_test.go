package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/costquote/internal/model"
	"github.com/Simplici0/costquote/internal/pricing"
)

// memRepo round-trips quotes through JSON so tests see what a real store returns.
type memRepo struct {
	settings model.Settings
	projects map[uuid.UUID]model.Project
	quotes   map[uuid.UUID][]byte
	writes   int
}

func newMemRepo() *memRepo {
	return &memRepo{
		settings: model.Settings{Currency: "COP", Tax: pricing.TaxSetting{Rate: 19}},
		projects: map[uuid.UUID]model.Project{},
		quotes:   map[uuid.UUID][]byte{},
	}
}

func (m *memRepo) Settings(context.Context) (model.Settings, error) { return m.settings, nil }

func (m *memRepo) ProjectByID(_ context.Context, id uuid.UUID) (*model.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, model.ErrNotFound)
	}
	p.Inputs = p.Inputs.Clone()
	return &p, nil
}

func (m *memRepo) CreateQuote(_ context.Context, q *model.Quote) error {
	return m.put(q)
}

func (m *memRepo) QuoteByID(_ context.Context, id uuid.UUID) (*model.Quote, error) {
	raw, ok := m.quotes[id]
	if !ok {
		return nil, fmt.Errorf("quote %s: %w", id, model.ErrNotFound)
	}
	var q model.Quote
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (m *memRepo) ListQuotes(context.Context, string) ([]model.QuoteSummary, error) {
	return nil, nil
}

func (m *memRepo) UpdateQuote(_ context.Context, q *model.Quote) error {
	if _, ok := m.quotes[q.ID]; !ok {
		return fmt.Errorf("quote %s: %w", q.ID, model.ErrNotFound)
	}
	return m.put(q)
}

func (m *memRepo) DeleteQuote(_ context.Context, id uuid.UUID) error {
	if _, ok := m.quotes[id]; !ok {
		return fmt.Errorf("quote %s: %w", id, model.ErrNotFound)
	}
	delete(m.quotes, id)
	return nil
}

func (m *memRepo) put(q *model.Quote) error {
	raw, err := json.Marshal(q)
	if err != nil {
		return err
	}
	m.quotes[q.ID] = raw
	m.writes++
	return nil
}

func newTestService(repo Repository) *Service {
	s := NewService(repo)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

func hundredPerUnit() model.ProjectInputs {
	return model.ProjectInputs{
		Sale: pricing.SalePriceInput{Amount: 100, Basis: pricing.PricePerUnit, Units: 1},
	}
}

func newQuote(t *testing.T, svc *Service) *model.Quote {
	t.Helper()
	q, err := svc.Create(context.Background(), Draft{Title: "Favors", ClientName: "Ana"})
	require.NoError(t, err)
	return q
}

func TestCreate_DefaultsAndValidation(t *testing.T) {
	svc := newTestService(newMemRepo())

	q := newQuote(t, svc)
	require.Equal(t, "COP", q.Currency)
	require.Equal(t, model.QuoteDraft, q.Status)
	require.Empty(t, q.Products)
	require.Zero(t, q.Totals.TotalAmount)

	_, err := svc.Create(context.Background(), Draft{Title: "  "})
	require.ErrorIs(t, err, model.ErrValidation)

	q, err = svc.Create(context.Background(), Draft{Title: "Export", Currency: " usd "})
	require.NoError(t, err)
	require.Equal(t, "USD", q.Currency)
}

func TestMutations_RecomputeTotals(t *testing.T) {
	svc := newTestService(newMemRepo())
	ctx := context.Background()
	q := newQuote(t, svc)

	_, err := svc.AddProduct(ctx, q.ID, ProductDraft{Name: "Candle", Inputs: hundredPerUnit()})
	require.NoError(t, err)
	q, err = svc.AddProduct(ctx, q.ID, ProductDraft{Name: "Soap", Inputs: hundredPerUnit()})
	require.NoError(t, err)
	require.InDelta(t, 200.0, q.Totals.Subtotal, 1e-9)
	require.InDelta(t, 238.0, q.Totals.TotalAmount, 1e-9)

	q, err = svc.SetDiscount(ctx, q.ID, &pricing.Discount{Type: pricing.DiscountPercentage, Amount: 10})
	require.NoError(t, err)
	require.InDelta(t, 20.0, q.Totals.DiscountAmount, 1e-9)
	require.InDelta(t, 214.2, q.Totals.TotalAmount, 1e-9)

	q, err = svc.SetShipping(ctx, q.ID, &pricing.Shipping{Cost: 6, ChargeToCustomer: 10})
	require.NoError(t, err)
	require.InDelta(t, 1.9, q.Totals.ShippingVAT, 1e-9)
	require.InDelta(t, 226.1, q.Totals.TotalAmount, 1e-9)

	q, err = svc.RemoveProduct(ctx, q.ID, 0)
	require.NoError(t, err)
	require.Len(t, q.Products, 1)
	require.Equal(t, "Soap", q.Products[0].ProductName)
	require.InDelta(t, 100.0, q.Totals.Subtotal, 1e-9)

	q, err = svc.SetDiscount(ctx, q.ID, nil)
	require.NoError(t, err)
	q, err = svc.SetShipping(ctx, q.ID, nil)
	require.NoError(t, err)
	require.Nil(t, q.Discount)
	require.InDelta(t, 119.0, q.Totals.TotalAmount, 1e-9)

	q, err = svc.SetTax(ctx, q.ID, &pricing.TaxSetting{Rate: 0})
	require.NoError(t, err)
	require.InDelta(t, 100.0, q.Totals.TotalAmount, 1e-9)

	stored, err := svc.Get(ctx, q.ID)
	require.NoError(t, err)
	require.Equal(t, q.Totals, stored.Totals)
}

func TestAddProject_SnapshotsProject(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	projectID := uuid.New()
	repo.projects[projectID] = model.Project{ID: projectID, Name: "Lamp", Currency: "COP", Inputs: hundredPerUnit()}

	q := newQuote(t, svc)
	q, err := svc.AddProject(ctx, q.ID, projectID)
	require.NoError(t, err)
	require.Equal(t, "Lamp", q.Products[0].ProductName)
	require.Equal(t, pricing.TaxSetting{Rate: 19}, q.Products[0].Tax)

	p := repo.projects[projectID]
	p.Inputs.Sale.Amount = 500
	repo.projects[projectID] = p

	q, err = svc.Get(ctx, q.ID)
	require.NoError(t, err)
	require.InDelta(t, 100.0, q.Products[0].TotalPrice, 1e-9)

	_, err = svc.AddProject(ctx, q.ID, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestAddProduct_RejectsOtherCurrency(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	q := newQuote(t, svc)
	writes := repo.writes

	_, err := svc.AddProduct(context.Background(), q.ID, ProductDraft{Name: "Mug", Currency: "usd", Inputs: hundredPerUnit()})
	require.ErrorIs(t, err, pricing.ErrCurrencyMismatch)
	require.Equal(t, writes, repo.writes)
}

func TestFailedMutationLeavesQuoteUntouched(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	q := newQuote(t, svc)

	_, err := svc.SetDiscount(ctx, q.ID, &pricing.Discount{Type: "bogus", Amount: 5})
	require.ErrorIs(t, err, pricing.ErrUnknownDiscountType)

	_, err = svc.SetDiscount(ctx, q.ID, &pricing.Discount{Type: pricing.DiscountFixed, Amount: 5})
	require.ErrorIs(t, err, pricing.ErrDiscountTooLarge)

	bad := hundredPerUnit()
	bad.Sale.Units = 0
	_, err = svc.AddProduct(ctx, q.ID, ProductDraft{Name: "Broken", Inputs: bad})
	require.ErrorIs(t, err, pricing.ErrInvalidUnitCount)

	_, err = svc.RemoveProduct(ctx, q.ID, 3)
	require.ErrorIs(t, err, model.ErrNotFound)

	stored, err := svc.Get(ctx, q.ID)
	require.NoError(t, err)
	require.Nil(t, stored.Discount)
	require.Empty(t, stored.Products)
}

func TestSetStatus_Lifecycle(t *testing.T) {
	svc := newTestService(newMemRepo())
	ctx := context.Background()
	q := newQuote(t, svc)

	q, err := svc.SetStatus(ctx, q.ID, model.QuoteFinal)
	require.NoError(t, err)
	require.Equal(t, model.QuoteFinal, q.Status)

	q, err = svc.SetStatus(ctx, q.ID, model.QuoteDraft)
	require.NoError(t, err)
	require.Equal(t, model.QuoteDraft, q.Status)

	q, err = svc.SetStatus(ctx, q.ID, model.QuoteCompleted)
	require.NoError(t, err)
	require.True(t, q.Status.Terminal())

	_, err = svc.SetStatus(ctx, q.ID, model.QuoteDraft)
	require.ErrorIs(t, err, model.ErrQuoteCompleted)
	_, err = svc.AddProduct(ctx, q.ID, ProductDraft{Name: "Late", Inputs: hundredPerUnit()})
	require.ErrorIs(t, err, model.ErrQuoteCompleted)
	_, err = svc.SetShipping(ctx, q.ID, &pricing.Shipping{ChargeToCustomer: 1})
	require.ErrorIs(t, err, model.ErrQuoteCompleted)

	require.NoError(t, svc.Delete(ctx, q.ID))
	_, err = svc.Get(ctx, q.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestSetStatus_RejectsUnknownTarget(t *testing.T) {
	svc := newTestService(newMemRepo())
	q := newQuote(t, svc)

	_, err := svc.SetStatus(context.Background(), q.ID, model.QuoteStatus("archived"))
	require.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestQuoteTaxFallsBackToFirstProduct(t *testing.T) {
	svc := newTestService(newMemRepo())
	ctx := context.Background()
	q := newQuote(t, svc)

	in := hundredPerUnit()
	in.Tax = lo.ToPtr(pricing.TaxSetting{Rate: 10, Inclusive: true})
	q, err := svc.AddProduct(ctx, q.ID, ProductDraft{Name: "Gift", Inputs: in})
	require.NoError(t, err)
	require.Nil(t, q.Tax)
	require.Equal(t, *in.Tax, q.Totals.Tax)
	require.InDelta(t, 100.0, q.Totals.TotalAmount, 1e-9)
}

func TestAddProduct_SnapshotsSettingsOverhead(t *testing.T) {
	repo := newMemRepo()
	repo.settings.Overhead = pricing.OverheadWorksheet{Rent: 1600, MonthlyHours: 160}
	svc := newTestService(repo)
	ctx := context.Background()
	q := newQuote(t, svc)

	in := hundredPerUnit()
	in.Costs = pricing.CostParameters{LaborHours: 2}
	q, err := svc.AddProduct(ctx, q.ID, ProductDraft{Name: "Frame", Inputs: in})
	require.NoError(t, err)
	require.InDelta(t, 20.0, q.Products[0].Breakdown.LaborOverhead.OverheadCost, 1e-9)
	require.NotNil(t, q.Products[0].Costs.OverheadWorksheet)

	repo.settings.Overhead.Rent = 3200
	stored, err := svc.Get(ctx, q.ID)
	require.NoError(t, err)
	require.Equal(t, 1600.0, stored.Products[0].Costs.OverheadWorksheet.Rent)
}
