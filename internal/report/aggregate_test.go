package report

import (
	"testing"

	"rfid-inventory-api/internal/categorize"
	"rfid-inventory-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(tag, name, status string) models.Item {
	return models.Item{TagID: tag, CommonName: name, Status: status}
}

func TestAggregateCountsAndOrdering(t *testing.T) {
	items := []models.Item{
		item("T1", "POPCORN 8 OZ PACK", models.StatusOnRent),
		item("T2", "FOG FLUID", models.StatusReadyToRent),
		item("T3", "POPCORN 8 OZ PACK", models.StatusDelivered),
		item("T4", "NACHO CHEESE BAG", models.StatusReadyToRent),
		item("T5", "FOG FLUID", models.StatusSold),
	}

	summary, names := Aggregate(items)

	require.Len(t, summary, 2)
	// Sorted lexicographically: "A/V Resale" < "Popcorn-Cheese-Donut Resale".
	assert.Equal(t, categorize.AVResale, summary[0].Category)
	assert.Equal(t, 2, summary[0].TotalAmount)
	assert.Equal(t, 0, summary[0].OnContract)
	assert.Equal(t, categorize.PopcornResale, summary[1].Category)
	assert.Equal(t, 3, summary[1].TotalAmount)
	assert.Equal(t, 2, summary[1].OnContract)

	// Common names keep first-seen order within their category.
	popcorn := names[categorize.PopcornResale]
	require.Len(t, popcorn, 2)
	assert.Equal(t, "POPCORN 8 OZ PACK", popcorn[0].CommonName)
	assert.Equal(t, 2, popcorn[0].Total)
	assert.Equal(t, "NACHO CHEESE BAG", popcorn[1].CommonName)
	assert.Equal(t, 1, popcorn[1].Total)
}

func TestAggregateEmptyInput(t *testing.T) {
	summary, names := Aggregate(nil)
	assert.Empty(t, summary)
	assert.Empty(t, names)
}

// Summing the common-name totals within each category must reproduce the
// category-level total_amount.
func TestAggregateSubTotalsRoundTrip(t *testing.T) {
	items := []models.Item{
		item("T1", "SLUSHIE MIX GRAPE", models.StatusOnRent),
		item("T2", "SLUSHIE MIX CHERRY", models.StatusReadyToRent),
		item("T3", "SLUSHIE MIX GRAPE", models.StatusReadyToRent),
		item("T4", "CANOPY 20X20", models.StatusReadyToRent),
		item("T5", "MYSTERY BOX", models.StatusDelivered),
	}

	summary, names := Aggregate(items)
	for _, sum := range summary {
		got := 0
		for _, n := range names[sum.Category] {
			got += n.Total
		}
		assert.Equal(t, sum.TotalAmount, got, "category %s", sum.Category)
	}
}
