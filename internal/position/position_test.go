package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenAndClose(t *testing.T) {
	p := New()
	assert.True(t, p.Flat())

	realized := p.Update(1, 100)
	assert.Equal(t, 0.0, realized)
	assert.False(t, p.Flat())
	assert.Equal(t, 1.0, p.Size)
	assert.Equal(t, 100.0, p.AvgEntryPrice)

	realized = p.Update(-1, 110)
	assert.Equal(t, 10.0, realized)
	assert.True(t, p.Flat())
	assert.Equal(t, 0.0, p.AvgEntryPrice)
}

func TestShortRealizesInvertedPnL(t *testing.T) {
	p := New()
	p.Update(-2, 100)

	realized := p.Update(2, 90)
	assert.Equal(t, 20.0, realized)
	assert.True(t, p.Flat())
}

func TestExtendBlendsEntryPrice(t *testing.T) {
	p := New()
	p.Update(1, 100)
	realized := p.Update(1, 110)

	assert.Equal(t, 0.0, realized)
	assert.Equal(t, 2.0, p.Size)
	assert.Equal(t, 105.0, p.AvgEntryPrice)
}

func TestPartialClose(t *testing.T) {
	p := New()
	p.Update(2, 100)

	realized := p.Update(-1, 120)
	assert.Equal(t, 20.0, realized)
	assert.Equal(t, 1.0, p.Size)
	assert.Equal(t, 100.0, p.AvgEntryPrice)
}

func TestFlipThroughFlat(t *testing.T) {
	p := New()
	p.Update(1, 100)

	realized := p.Update(-3, 110)
	assert.Equal(t, 10.0, realized)
	assert.Equal(t, -2.0, p.Size)
	assert.Equal(t, 110.0, p.AvgEntryPrice)
}

func TestUnrealizedPnL(t *testing.T) {
	p := New()
	assert.Equal(t, 0.0, p.UnrealizedPnL(123))

	p.Update(2, 100)
	assert.Equal(t, 20.0, p.UnrealizedPnL(110))

	p.Update(-2, 110)
	p.Update(-1, 100)
	assert.Equal(t, 5.0, p.UnrealizedPnL(95))
}
