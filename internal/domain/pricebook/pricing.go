package pricebook

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Round2 rounds the exact binary value of v to two decimal places, half
// away from zero. 1.005 is stored as 1.00499999... and rounds to 1.
func Round2(v float64) float64 {
	if !isFinite(v) {
		return v
	}
	r := new(big.Rat).SetFloat64(v)
	r.Mul(r, big.NewRat(100, 1))

	den := r.Denom()
	q, rem := new(big.Int).QuoRem(new(big.Int).Abs(r.Num()), den, new(big.Int))
	if rem.Lsh(rem, 1).Cmp(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if v < 0 {
		q.Neg(q)
	}
	return decimal.NewFromBigInt(q, -2).InexactFloat64()
}

func positive(p *float64) (float64, bool) {
	if p == nil || !isFinite(*p) || *p <= 0 {
		return 0, false
	}
	return *p, true
}

// DeriveUnitPrices fills unit-level prices from case-level ones.
//
// unitCost is recomputed whenever caseCost and caseQuantity are both
// positive and overwrites any existing value. wholesalePrice is only
// filled when it is still unset. Missing operands leave fields untouched.
func DeriveUnitPrices(f Fields) Fields {
	out := f.Clone()
	qty, ok := positive(f.CaseQuantity)
	if !ok {
		return out
	}
	if cost, ok := positive(f.CaseCost); ok {
		if v := Round2(cost / qty); isFinite(v) {
			out.UnitCost = &v
		}
	}
	if out.WholesalePrice == nil {
		if price, ok := positive(f.CaseWholesalePrice); ok {
			if v := Round2(price / qty); isFinite(v) {
				out.WholesalePrice = &v
			}
		}
	}
	return out
}
