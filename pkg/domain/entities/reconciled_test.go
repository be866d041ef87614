package entities

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnRatio_Sentinels(t *testing.T) {
	_, ok := NoInvestment().Numeric()
	assert.False(t, ok, "no investment needed must not convert to a number")

	_, ok = Insufficient().Numeric()
	assert.False(t, ok, "insufficient data must not convert to a number")

	v, ok := Ratio(decimal.NewFromInt(216)).Numeric()
	assert.True(t, ok)
	assert.True(t, v.Equal(decimal.NewFromInt(216)))

	assert.Equal(t, "216.00", Ratio(decimal.NewFromInt(216)).String())
	assert.Equal(t, "no investment needed", NoInvestment().String())
	assert.Equal(t, "insufficient data", ReturnRatio{}.String())
}

func TestOptional_JSON(t *testing.T) {
	type payload struct {
		A Optional[int]    `json:"a"`
		B Optional[string] `json:"b"`
		R ReturnRatio      `json:"r"`
	}

	data, err := json.Marshal(payload{A: Some(3), B: None[string](), R: NoInvestment()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3,"b":null,"r":"no investment needed"}`, string(data))
}

func TestReconciledRow_Flags(t *testing.T) {
	row := ReconciledRow{}
	assert.False(t, row.HasShortage())
	assert.False(t, row.HasPrice())
	assert.False(t, row.HasSupplier())
	assert.Equal(t, MaterialID(""), row.MaterialID())

	row.Shortage = Some(ShortageLine{MaterialID: "M1"})
	row.UnitPriceRMB = Some(decimal.Zero)
	row.Supplier = SupplierResolution{Status: SupplierFound}
	assert.True(t, row.HasShortage())
	assert.False(t, row.HasPrice(), "zero price is not a price")
	assert.True(t, row.HasSupplier())
	assert.Equal(t, MaterialID("M1"), row.MaterialID())
}

func TestCompletenessTag_String(t *testing.T) {
	want := []string{"complete", "partial", "order-only", "shortage-only-incomplete", "no-data"}
	for i, tag := range AllCompletenessTags {
		assert.Equal(t, want[i], tag.String())
	}
}
