package element_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epmalab/microquant/element"
)

// TestFromZ_Bounds exercises both ends of the supported range.
func TestFromZ_Bounds(t *testing.T) {
	h, err := element.FromZ(1)
	require.NoError(t, err)
	assert.Equal(t, "H", h.Symbol())

	es, err := element.FromZ(99)
	require.NoError(t, err)
	assert.Equal(t, "Es", es.Symbol())

	_, err = element.FromZ(0)
	assert.ErrorIs(t, err, element.ErrUnknownElement)
	_, err = element.FromZ(100)
	assert.ErrorIs(t, err, element.ErrUnknownElement)
}

// TestBySymbol_RoundTrip checks symbol lookup against named constants.
func TestBySymbol_RoundTrip(t *testing.T) {
	fe, err := element.BySymbol("Fe")
	require.NoError(t, err)
	assert.Equal(t, element.Fe, fe)
	assert.Equal(t, 26, fe.Z())

	_, err = element.BySymbol("Xx")
	assert.ErrorIs(t, err, element.ErrUnknownSymbol)

	// Symbols are case-sensitive.
	_, err = element.BySymbol("fe")
	assert.ErrorIs(t, err, element.ErrUnknownSymbol)
}

// TestAtomicWeight_KnownValues spot-checks the embedded table.
func TestAtomicWeight_KnownValues(t *testing.T) {
	assert.InDelta(t, 55.845, element.Fe.AtomicWeight(), 1e-9)
	assert.InDelta(t, 15.999, element.O.AtomicWeight(), 1e-9)
	assert.InDelta(t, 28.085, element.Si.AtomicWeight(), 1e-9)
}

// TestInvalidElement_ZeroValues verifies graceful accessors off-range.
func TestInvalidElement_ZeroValues(t *testing.T) {
	var bad element.Element
	assert.False(t, bad.Valid())
	assert.Equal(t, "", bad.Symbol())
	assert.Equal(t, 0.0, bad.AtomicWeight())
	assert.Equal(t, "Element(0)", bad.String())
}

// TestSort orders by ascending Z.
func TestSort(t *testing.T) {
	elms := []element.Element{element.Pb, element.O, element.Fe}
	element.Sort(elms)
	assert.Equal(t, []element.Element{element.O, element.Fe, element.Pb}, elms)
}
