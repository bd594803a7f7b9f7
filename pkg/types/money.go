package types

import (
	"database/sql/driver"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount of US dollars. All balance and grant
// arithmetic goes through this type; floats never touch money.
type Money struct {
	d decimal.Decimal
}

var ZeroMoney = Money{}

func NewMoney(d decimal.Decimal) Money {
	return Money{d: d}
}

func MoneyFromInt(dollars int64) Money {
	return Money{d: decimal.NewFromInt(dollars)}
}

func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", s, err)
	}

	return Money{d: d}, nil
}

func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

func (m Money) Sub(o Money) Money {
	return Money{d: m.d.Sub(o.d)}
}

func (m Money) LessThan(o Money) bool {
	return m.d.LessThan(o.d)
}

func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

func (m Money) IsZero() bool {
	return m.d.IsZero()
}

func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// String renders the boundary representation: a decimal string with
// exactly two fractional digits.
func (m Money) String() string {
	return m.d.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, m.d.StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("unmarshal money %q: %w", s, err)
	}

	m.d = d
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.d.Value()
}

func (m *Money) Scan(src any) error {
	return m.d.Scan(src)
}
