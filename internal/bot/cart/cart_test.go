package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mrfarooqui038501/SalesChatBot/internal/bot/catalog"
)

var (
	laptop = catalog.Product{ID: "p-1", Name: "Gaming Laptop", Price: 1299.99}
	mouse  = catalog.Product{ID: "p-2", Name: "Wireless Mouse", Price: 24.99}
)

func TestAdd_DoubleAddMergesIntoOneLine(t *testing.T) {
	c := New()
	c.Add(laptop)
	line := c.Add(laptop)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, line.Quantity)
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	c := New()
	c.Add(laptop)
	c.Add(mouse)
	c.Add(laptop)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "p-1", lines[0].Product.ID)
	assert.Equal(t, "p-2", lines[1].Product.ID)
}

func TestAdd_SnapshotsAreImmutable(t *testing.T) {
	c := New()
	c.Add(laptop)
	before := c.Lines()

	c.Add(laptop)

	// The previously handed-out snapshot must not change underfoot.
	assert.Equal(t, 1, before[0].Quantity)
	assert.Equal(t, 2, c.Lines()[0].Quantity)
}

func TestCount_MatchesSumOfQuantities(t *testing.T) {
	c := New()
	assert.Zero(t, c.Count())

	c.Add(laptop)
	c.Add(laptop)
	c.Add(mouse)
	assert.Equal(t, 3, c.Count())

	sum := 0
	for _, l := range c.Lines() {
		sum += l.Quantity
	}
	assert.Equal(t, sum, c.Count())

	c.Clear()
	assert.Zero(t, c.Count())

	c.Add(mouse)
	assert.Equal(t, 1, c.Count())
}

func TestTotal(t *testing.T) {
	c := New()
	c.Add(laptop)
	c.Add(laptop)
	c.Add(mouse)

	assert.InDelta(t, 1299.99*2+24.99, c.Total(), 0.001)
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(laptop)
	c.Clear()

	assert.Empty(t, c.Lines())
	assert.Zero(t, c.Total())
}
