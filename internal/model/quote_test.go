package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Simplici0/costquote/internal/pricing"
)

func TestParseQuoteStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want QuoteStatus
	}{
		{"draft", QuoteDraft},
		{" Final ", QuoteFinal},
		{"saved", QuoteFinal},
		{"COMPLETED", QuoteCompleted},
	}
	for _, tt := range tests {
		got, err := ParseQuoteStatus(tt.raw)
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}

	_, err := ParseQuoteStatus("sent")
	require.ErrorIs(t, err, ErrUnknownStatus)
}

func TestQuoteStatus_CanTransition(t *testing.T) {
	require.True(t, QuoteDraft.CanTransition(QuoteFinal))
	require.True(t, QuoteFinal.CanTransition(QuoteDraft))
	require.True(t, QuoteFinal.CanTransition(QuoteCompleted))
	require.True(t, QuoteDraft.CanTransition(QuoteCompleted))
	require.False(t, QuoteDraft.CanTransition(QuoteStatus("archived")))
	require.False(t, QuoteFinal.CanTransition(QuoteStatus("saved")))
	require.False(t, QuoteCompleted.CanTransition(QuoteDraft))
	require.False(t, QuoteCompleted.CanTransition(QuoteCompleted))
	require.True(t, QuoteCompleted.Terminal())
}

func TestQuote_Recalculate(t *testing.T) {
	q := Quote{
		Products: []pricing.PricedProduct{{TotalPrice: 100, Tax: pricing.TaxSetting{Rate: 19}}},
		Discount: &pricing.Discount{Type: pricing.DiscountFixed, Amount: 10},
	}
	require.NoError(t, q.Recalculate())
	require.InDelta(t, 90, q.Totals.AfterDiscount, 1e-9)
	require.InDelta(t, 107.1, q.Totals.TotalAmount, 1e-9)
}
