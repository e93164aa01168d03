package fieldtype

import "github.com/govalues/decimal"

// DecimalType holds a FIX Price/Qty/Amt field with exact decimal semantics,
// avoiding the binary-float rounding that would otherwise corrupt a value
// like 15.75 on a parse/serialize round trip. Backed by govalues/decimal,
// which represents the value as an unscaled integer plus exponent instead
// of float64.
type DecimalType struct {
	value decimal.Decimal
	set   bool
}

func (f *DecimalType) SetValue(bytes []byte) bool {
	d, err := decimal.Parse(string(bytes))
	if err != nil {
		return false
	}
	f.value = d
	f.set = true
	return true
}

func (f *DecimalType) Read(buf []byte) []byte {
	if !f.set {
		return buf
	}
	return append(buf, f.value.String()...)
}

func (f *DecimalType) IsEmpty() bool {
	return !f.set
}

func (f *DecimalType) Len() int {
	if !f.set {
		return 0
	}
	return len(f.value.String())
}

func (f *DecimalType) Value() decimal.Decimal {
	return f.value
}

func (f *DecimalType) Set(v decimal.Decimal) {
	f.value = v
	f.set = true
}
