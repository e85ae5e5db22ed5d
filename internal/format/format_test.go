package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCHF(t *testing.T) {
	require.Equal(t, "CHF 220.00", CHF(220))
	require.Equal(t, "CHF 12.50", CHF(12.5))
	require.Equal(t, "CHF 0.00", CHF(0))
}

func TestQuantity(t *testing.T) {
	require.Equal(t, "2", Quantity(2))
	require.Equal(t, "1.5", Quantity(1.5))
	require.Equal(t, "0.25", Quantity(0.25))
}
