package windcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalePower(t *testing.T) {
	tests := []struct {
		unit PowerUnit
		want float64
	}{
		{PowerKilowatt, 3613605},
		{PowerMegawatt, 3613.605},
		{PowerGigawatt, 3.613605},
	}

	for _, tt := range tests {
		t.Run(string(tt.unit), func(t *testing.T) {
			got, err := ScalePower(3613605, tt.unit)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, err := ScalePower(1, "TW")
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestScaleEnergy(t *testing.T) {
	tests := []struct {
		unit EnergyUnit
		want float64
	}{
		{EnergyMWhPerYear, 31654980},
		{EnergyGWhPerYear, 31654.98},
		{EnergyTWhPerYear, 31.65498},
	}

	for _, tt := range tests {
		t.Run(string(tt.unit), func(t *testing.T) {
			got, err := ScaleEnergy(31654980, tt.unit)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, err := ScaleEnergy(1, "kWh/year")
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestUnitDecimals(t *testing.T) {
	assert.Equal(t, 0, PowerKilowatt.Decimals())
	assert.Equal(t, 3, PowerMegawatt.Decimals())
	assert.Equal(t, 3, PowerGigawatt.Decimals())

	assert.Equal(t, 0, EnergyMWhPerYear.Decimals())
	assert.Equal(t, 3, EnergyGWhPerYear.Decimals())
	assert.Equal(t, 3, EnergyTWhPerYear.Decimals())
}

func TestParseUnits(t *testing.T) {
	p, err := ParsePowerUnit("mw")
	require.NoError(t, err)
	assert.Equal(t, PowerMegawatt, p)

	_, err = ParsePowerUnit("horsepower")
	assert.ErrorIs(t, err, ErrUnknownUnit)

	for _, in := range []string{"GWh/year", "gwh/year", "GWh", " gwh "} {
		e, err := ParseEnergyUnit(in)
		require.NoError(t, err, in)
		assert.Equal(t, EnergyGWhPerYear, e)
	}

	_, err = ParseEnergyUnit("PWh")
	assert.ErrorIs(t, err, ErrUnknownUnit)
}
