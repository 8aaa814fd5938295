package types

import (
	"cosmossdk.io/math"
)

// Decimals of every fixed-point amount handled by the fund.
const Decimals = 18

// BpsDenominator is 100% expressed in basis points.
const BpsDenominator = 10_000

// Precision is one whole unit of the base asset.
var Precision = math.NewIntWithDecimal(1, Decimals)

// MulDivFloor returns a*b/c truncated toward zero. Inputs must be non-negative.
func MulDivFloor(a, b, c math.Int) math.Int {
	if c.IsZero() {
		return math.ZeroInt()
	}
	return a.Mul(b).Quo(c)
}

// MulDivCeil returns a*b/c rounded up. Inputs must be non-negative.
func MulDivCeil(a, b, c math.Int) math.Int {
	if c.IsZero() {
		return math.ZeroInt()
	}
	num := a.Mul(b)
	q := num.Quo(c)
	if !num.Mod(c).IsZero() {
		q = q.AddRaw(1)
	}
	return q
}

// BpsOf returns amount*bps/10000, truncated.
func BpsOf(amount math.Int, bps uint64) math.Int {
	return MulDivFloor(amount, math.NewIntFromUint64(bps), math.NewInt(BpsDenominator))
}

// BpsOfCeil returns amount*bps/10000, rounded up.
func BpsOfCeil(amount math.Int, bps uint64) math.Int {
	return MulDivCeil(amount, math.NewIntFromUint64(bps), math.NewInt(BpsDenominator))
}

// Units converts whole units into fixed-point base asset amounts.
func Units(n int64) math.Int {
	return math.NewInt(n).Mul(Precision)
}

// MustUnits parses a decimal string such as "0.01" into a fixed-point amount.
func MustUnits(s string) math.Int {
	return math.LegacyMustNewDecFromStr(s).MulInt(Precision).TruncateInt()
}

// ParseUnits parses a decimal string of whole units into a fixed-point
// amount. More than 18 decimal places is an error.
func ParseUnits(s string) (math.Int, error) {
	dec, err := math.LegacyNewDecFromStr(s)
	if err != nil {
		return math.Int{}, ErrInvalidAmount.Wrapf("invalid amount %q", s)
	}
	return dec.MulInt(Precision).TruncateInt(), nil
}

// MaxInt returns the larger of a and b.
func MaxInt(a, b math.Int) math.Int {
	if a.GT(b) {
		return a
	}
	return b
}

// RequirePositive validates a caller supplied amount.
func RequirePositive(amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return ErrInvalidAmount.Wrapf("amount must be positive, got %s", amount)
	}
	return nil
}
