package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/fira-bridge/internal/domain/order"
)

// --- Helpers ---

func pos(price, fiscalID, name string) order.Position {
	meta := map[string]string{}
	if fiscalID != "" {
		meta[order.MetaFiscalProductID] = fiscalID
	}
	return order.Position{
		Price: decimal.RequireFromString(price),
		Item: order.Item{
			Name:     name,
			Metadata: meta,
		},
	}
}

// --- Tests ---

func TestAggregateLines_GroupsByFiscalID(t *testing.T) {
	lines := AggregateLines([]order.Position{
		pos("10.00", "A", "Ticket"),
		pos("10.00", "A", "Ticket"),
		pos("25.00", "B", "Pass"),
	})

	require.Len(t, lines, 2)

	assert.Equal(t, "A", lines[0].ProductCode)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, decimal.RequireFromString("10.00").Equal(lines[0].UnitPrice))
	assert.Equal(t, "Ticket", lines[0].Name)

	assert.Equal(t, "B", lines[1].ProductCode)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestAggregateLines_SkipsNonFiscalPositions(t *testing.T) {
	lines := AggregateLines([]order.Position{
		pos("5.00", order.NonFiscalSentinel, "Donation"),
		pos("3.00", "", "Add-on"),
		pos("10.00", "A", "Ticket"),
	})

	require.Len(t, lines, 1)
	assert.Equal(t, "A", lines[0].ProductCode)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestAggregateLines_AllNonFiscal(t *testing.T) {
	lines := AggregateLines([]order.Position{
		pos("5.00", order.NonFiscalSentinel, "Donation"),
		pos("3.00", "", "Add-on"),
	})

	assert.Empty(t, lines)
}

func TestAggregateLines_FirstPriceWins(t *testing.T) {
	// Positions sharing a fiscal identifier are assumed to share a price.
	// When they do not, the first position's price and name are kept and
	// later ones contribute only quantity.
	lines := AggregateLines([]order.Position{
		pos("10.00", "A", "Early bird"),
		pos("12.50", "A", "Regular"),
	})

	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, decimal.RequireFromString("10.00").Equal(lines[0].UnitPrice))
	assert.Equal(t, "Early bird", lines[0].Name)
}

func TestAggregateLines_QuantityOrderIndependent(t *testing.T) {
	a := pos("10.00", "A", "Ticket")
	b := pos("25.00", "B", "Pass")

	forward := AggregateLines([]order.Position{a, a, b})
	reversed := AggregateLines([]order.Position{b, a, a})

	quantities := func(lines []LineItem) map[string]int {
		m := make(map[string]int, len(lines))
		for _, li := range lines {
			m[li.ProductCode] = li.Quantity
		}
		return m
	}

	assert.Equal(t, quantities(forward), quantities(reversed))
}

func TestAggregateLines_UsesInternalName(t *testing.T) {
	p := pos("10.00", "A", "Ticket")
	p.Item.InternalName = "GA-2026"

	lines := AggregateLines([]order.Position{p})

	require.Len(t, lines, 1)
	assert.Equal(t, "GA-2026", lines[0].Name)
}
