package fieldtype

// DataType holds raw, SOH-transparent bytes: the payload half of a
// PrepareForBytes / ConfirmPreviousTag pair (e.g. RawData/RawDataLength,
// SecureData/SecureDataLen). The parser fast-tracks exactly Len() bytes
// into this field regardless of embedded SOH bytes.
type DataType struct {
	value []byte
}

func (f *DataType) SetValue(bytes []byte) bool {
	f.value = append([]byte(nil), bytes...)
	return true
}

func (f *DataType) Read(buf []byte) []byte {
	return append(buf, f.value...)
}

func (f *DataType) IsEmpty() bool {
	return len(f.value) == 0
}

func (f *DataType) Len() int {
	return len(f.value)
}

func (f *DataType) Value() []byte {
	return f.value
}

// LengthType holds the length-prefix half of a PrepareForBytes pair (e.g.
// RawDataLength). Declares ActionPrepareForBytes via its dictionary rule,
// not via the codec itself, since the bytes_tag it points to is schema
// metadata rather than a property of the integer value.
type LengthType struct {
	IntType
}
