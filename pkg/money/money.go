package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Amount is a currency amount in minor units (centavos). Amounts travel
// through the API as 2-decimal strings so values round-trip exactly.
type Amount int64

var ErrInvalidAmount = errors.New("invalid_amount")

// Parse accepts "500", "500.5" or "500.00" and returns the amount in
// minor units. More than two decimal places is rejected.
func Parse(raw string) (Amount, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	// ParseInt would tolerate its own sign prefix, letting "--5" or
	// "-+5" slip through with the wrong sign.
	if strings.ContainsAny(whole, "+-") {
		return 0, ErrInvalidAmount
	}
	if whole == "" && frac == "" {
		return 0, ErrInvalidAmount
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, ErrInvalidAmount
	}
	for len(frac) < 2 {
		frac += "0"
	}

	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	minor := uint64(0)
	if frac != "00" {
		minor, err = strconv.ParseUint(frac, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
	}

	value := major*100 + int64(minor)
	if neg {
		value = -value
	}
	return Amount(value), nil
}

// FromMajor converts whole currency units to an Amount.
func FromMajor(v int64) Amount {
	return Amount(v * 100)
}

// String formats the amount with exactly two decimal places.
func (a Amount) String() string {
	v := int64(a)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (a Amount) IsNegative() bool {
	return a < 0
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both JSON numbers and decimal strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return ErrInvalidAmount
		}
		s = raw
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
