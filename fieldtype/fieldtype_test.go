package fieldtype

import (
	"testing"

	"github.com/govalues/decimal"
)

func TestStringType_SetValueAndRead(t *testing.T) {
	var f StringType
	if f.IsEmpty() != true {
		t.Fatal("zero StringType should be empty")
	}
	if !f.SetValue([]byte("EUR/USD")) {
		t.Fatal("SetValue() = false, want true")
	}
	if f.IsEmpty() {
		t.Error("IsEmpty() after SetValue = true, want false")
	}
	if f.Len() != len("EUR/USD") {
		t.Errorf("Len() = %d, want %d", f.Len(), len("EUR/USD"))
	}
	if got := string(f.Read(nil)); got != "EUR/USD" {
		t.Errorf("Read() = %q, want %q", got, "EUR/USD")
	}
}

func TestCharType_RejectsMultiByte(t *testing.T) {
	var f CharType
	if f.SetValue([]byte("AB")) {
		t.Error("SetValue() with 2 bytes = true, want false")
	}
	if !f.SetValue([]byte("A")) {
		t.Fatal("SetValue() with 1 byte = false, want true")
	}
	if f.Value() != 'A' {
		t.Errorf("Value() = %q, want 'A'", f.Value())
	}
}

func TestBoolType_YAndN(t *testing.T) {
	var f BoolType
	if !f.SetValue([]byte("Y")) || f.Value() != true {
		t.Error("SetValue(Y) did not set true")
	}
	if !f.SetValue([]byte("N")) || f.Value() != false {
		t.Error("SetValue(N) did not set false")
	}
	if f.SetValue([]byte("X")) {
		t.Error("SetValue(X) = true, want false")
	}
}

func TestIntType_RoundTrip(t *testing.T) {
	var f IntType
	if !f.SetValue([]byte("-42")) {
		t.Fatal("SetValue() = false, want true")
	}
	if f.Value() != -42 {
		t.Errorf("Value() = %d, want -42", f.Value())
	}
	if got := string(f.Read(nil)); got != "-42" {
		t.Errorf("Read() = %q, want %q", got, "-42")
	}
	if f.SetValue([]byte("not-a-number")) {
		t.Error("SetValue() with garbage = true, want false")
	}
}

func TestUIntType_RejectsNegative(t *testing.T) {
	var f UIntType
	if f.SetValue([]byte("-1")) {
		t.Error("SetValue(-1) on UIntType = true, want false")
	}
	if !f.SetValue([]byte("100")) || f.Value() != 100 {
		t.Error("SetValue(100) did not set 100")
	}
}

func TestDecimalType_ExactRoundTrip(t *testing.T) {
	var f DecimalType
	if !f.SetValue([]byte("15.75")) {
		t.Fatal("SetValue() = false, want true")
	}
	if got := string(f.Read(nil)); got != "15.75" {
		t.Errorf("Read() = %q, want %q (exact decimal round trip)", got, "15.75")
	}

	d, err := decimal.Parse("3.14")
	if err != nil {
		t.Fatal(err)
	}
	f.Set(d)
	if f.Value() != d {
		t.Errorf("Value() after Set() = %v, want %v", f.Value(), d)
	}
}

func TestDecimalType_RejectsMalformed(t *testing.T) {
	var f DecimalType
	if f.SetValue([]byte("not-a-decimal")) {
		t.Error("SetValue() with garbage = true, want false")
	}
	if !f.IsEmpty() {
		t.Error("IsEmpty() after a failed SetValue = false, want true")
	}
}

func TestDataType_PreservesEmbeddedSOH(t *testing.T) {
	var f DataType
	raw := []byte{0x01, 'A', 0x01, 'B'}
	if !f.SetValue(raw) {
		t.Fatal("SetValue() = false, want true")
	}
	if f.Len() != len(raw) {
		t.Errorf("Len() = %d, want %d", f.Len(), len(raw))
	}
	got := f.Read(nil)
	if string(got) != string(raw) {
		t.Errorf("Read() = %v, want %v", got, raw)
	}
}

func TestDataType_SetValueCopiesInput(t *testing.T) {
	var f DataType
	raw := []byte("original")
	f.SetValue(raw)
	raw[0] = 'X'
	if string(f.Value()) != "original" {
		t.Errorf("stored value mutated by caller's buffer: got %q", f.Value())
	}
}

func TestLengthType_EmbedsIntType(t *testing.T) {
	var f LengthType
	if !f.SetValue([]byte("12")) {
		t.Fatal("SetValue() = false, want true")
	}
	if f.Value() != 12 {
		t.Errorf("Value() = %d, want 12", f.Value())
	}
}
