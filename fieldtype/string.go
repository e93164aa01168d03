package fieldtype

// StringType holds a plain ASCII/UTF-8 FIX value, the most common field
// shape (CompIDs, symbols, free text).
type StringType struct {
	value string
	set   bool
}

func (f *StringType) SetValue(bytes []byte) bool {
	f.value = string(bytes)
	f.set = true
	return true
}

func (f *StringType) Read(buf []byte) []byte {
	return append(buf, f.value...)
}

func (f *StringType) IsEmpty() bool {
	return !f.set
}

func (f *StringType) Len() int {
	return len(f.value)
}

func (f *StringType) Value() string {
	return f.value
}

func (f *StringType) Set(v string) {
	f.value = v
	f.set = true
}

// CharType holds a single-character FIX value (e.g. Side, TimeInForce).
type CharType struct {
	value byte
	set   bool
}

func (f *CharType) SetValue(bytes []byte) bool {
	if len(bytes) != 1 {
		return false
	}
	f.value = bytes[0]
	f.set = true
	return true
}

func (f *CharType) Read(buf []byte) []byte {
	if !f.set {
		return buf
	}
	return append(buf, f.value)
}

func (f *CharType) IsEmpty() bool {
	return !f.set
}

func (f *CharType) Len() int {
	if !f.set {
		return 0
	}
	return 1
}

func (f *CharType) Value() byte {
	return f.value
}

func (f *CharType) Set(v byte) {
	f.value = v
	f.set = true
}

// BoolType holds a FIX "Y"/"N" boolean field.
type BoolType struct {
	value bool
	set   bool
}

func (f *BoolType) SetValue(bytes []byte) bool {
	switch string(bytes) {
	case "Y":
		f.value = true
	case "N":
		f.value = false
	default:
		return false
	}
	f.set = true
	return true
}

func (f *BoolType) Read(buf []byte) []byte {
	if !f.set {
		return buf
	}
	if f.value {
		return append(buf, 'Y')
	}
	return append(buf, 'N')
}

func (f *BoolType) IsEmpty() bool {
	return !f.set
}

func (f *BoolType) Len() int {
	if !f.set {
		return 0
	}
	return 1
}

func (f *BoolType) Value() bool {
	return f.value
}

func (f *BoolType) Set(v bool) {
	f.value = v
	f.set = true
}
