package domain

import (
	"database/sql/driver"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// MaxQuantity caps unit counts on products, purchases and sales.
const MaxQuantity int64 = 1_000_000_000

// MaxAmount caps prices, totals and balances. Any product of two capped values
// still has to pass checkAmount before it is stored.
var MaxAmount = MustMoney("1000000000000")

var (
	minCents = decimal.NewFromInt(math.MinInt64)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// Money is a decimal amount with two fractional digits. It is stored as integer
// cents so that balance arithmetic in SQL stays exact.
type Money struct {
	decimal.Decimal
}

// NewMoney rounds d to cents.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

// MoneyFromCents builds a Money value from an integer amount of cents.
func MoneyFromCents(cents int64) Money {
	return Money{Decimal: decimal.New(cents, -2)}
}

// MustMoney parses s and panics on malformed input. Intended for tests and constants.
func MustMoney(s string) Money {
	return NewMoney(decimal.RequireFromString(s))
}

// Cents returns the amount in cents, rounding half away from zero. The result
// is only meaningful for amounts accepted by CheckedCents.
func (m Money) Cents() int64 {
	return m.Decimal.Shift(2).Round(0).IntPart()
}

// CheckedCents is Cents with an ErrAmountOutOfRange for amounts that do not fit
// in an int64.
func (m Money) CheckedCents() (int64, error) {
	c := m.Decimal.Shift(2).Round(0)
	if c.LessThan(minCents) || c.GreaterThan(maxCents) {
		return 0, ErrAmountOutOfRange
	}
	return c.IntPart(), nil
}

// InRange reports whether |m| <= MaxAmount.
func (m Money) InRange() bool {
	return m.Decimal.Abs().LessThanOrEqual(MaxAmount.Decimal)
}

// Times multiplies the amount by a quantity.
func (m Money) Times(qty int64) Money {
	return NewMoney(m.Decimal.Mul(decimal.NewFromInt(qty)))
}

// Minus returns m - o.
func (m Money) Minus(o Money) Money {
	return NewMoney(m.Decimal.Sub(o.Decimal))
}

// Plus returns m + o.
func (m Money) Plus(o Money) Money {
	return NewMoney(m.Decimal.Add(o.Decimal))
}

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) {
	c, err := m.CheckedCents()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Scan implements sql.Scanner for columns holding cents.
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		m.Decimal = decimal.Zero
	case int64:
		m.Decimal = decimal.New(v, -2)
	case float64:
		m.Decimal = decimal.NewFromFloat(v).Shift(-2).Round(2)
	case []byte:
		d, err := decimal.NewFromString(string(v))
		if err != nil {
			return fmt.Errorf("scan money: %w", err)
		}
		m.Decimal = d.Shift(-2).Round(2)
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("scan money: %w", err)
		}
		m.Decimal = d.Shift(-2).Round(2)
	default:
		return fmt.Errorf("scan money: unsupported type %T", src)
	}
	return nil
}

func checkQuantity(field string, q int64) error {
	if q > MaxQuantity {
		return Validationf("%s must not exceed %d", field, MaxQuantity)
	}
	return nil
}

func checkAmount(field string, m Money) error {
	if !m.InRange() {
		return Validationf("%s must not exceed %s", field, MaxAmount)
	}
	return nil
}
