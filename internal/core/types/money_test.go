package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals(NewMoney(10), NewMoney(30), NewMoney(12), NewMoney(100))

	assert.True(t, totals.Base.Equal(NewMoney(300)))
	assert.True(t, totals.GST.Equal(NewMoney(36)))
	assert.True(t, totals.Gross.Equal(NewMoney(336)))
	assert.True(t, totals.Due.Equal(NewMoney(236)))
	assert.True(t, totals.Gross.Equal(totals.Base.Add(totals.GST)))
}

func TestComputeTotalsZeroGST(t *testing.T) {
	totals := ComputeTotals(NewMoney(4), MustMoney("12.50"), Zero(), Zero())

	assert.True(t, totals.Base.Equal(NewMoney(50)))
	assert.True(t, totals.GST.IsZero())
	assert.True(t, totals.Gross.Equal(NewMoney(50)))
	assert.True(t, totals.Due.Equal(NewMoney(50)))
}

func TestComputeTotalsDueFloorsAtZero(t *testing.T) {
	// Overpayment never produces a negative due.
	totals := ComputeTotals(NewMoney(1), NewMoney(100), Zero(), NewMoney(150))

	assert.True(t, totals.Due.IsZero())
	assert.True(t, totals.Gross.Equal(NewMoney(100)))
}

func TestComputeTotalsFractionalRate(t *testing.T) {
	// 0.1 + 0.2 style drift must not leak into the ledger.
	totals := ComputeTotals(MustMoney("3"), MustMoney("0.10"), MustMoney("5"), Zero())

	assert.True(t, totals.Base.Equal(MustMoney("0.30")))
	assert.True(t, totals.GST.Equal(MustMoney("0.015")))
	assert.True(t, totals.Gross.Equal(MustMoney("0.315")))
}

func TestToNumber(t *testing.T) {
	fallback := NewMoney(7)

	assert.True(t, ToNumber("12.5", fallback).Equal(MustMoney("12.5")))
	assert.True(t, ToNumber("", fallback).Equal(fallback))
	assert.True(t, ToNumber("abc", fallback).Equal(fallback))
	assert.True(t, ToNumber("-3", fallback).Equal(NewMoney(-3)))
}

func TestMoneyFromString(t *testing.T) {
	m, err := MoneyFromString("199.99")
	assert.NoError(t, err)
	assert.True(t, m.Equal(MustMoney("199.99")))

	_, err = MoneyFromString("not-a-number")
	assert.Error(t, err)
}
