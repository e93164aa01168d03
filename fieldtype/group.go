package fieldtype

// RepeatingGroupFieldType holds the folded entries of a nested repeating
// group once the parser has completed it. Entries are stored as interface{}
// (always a concrete message.Template under the hood) to avoid a fieldtype
// <-> message import cycle; SetGroups/Entries callers type-assert back.
type RepeatingGroupFieldType struct {
	groups []interface{}
}

// Action reports the BeginGroup action this field type implies, mirroring
// FieldType::action() in the reference engine; dictionaries in this port
// declare the rule explicitly on the template instead of deriving it here,
// so this is informational rather than consumed by the parser directly.
func (f *RepeatingGroupFieldType) Action() Action {
	return Action{Kind: ActionBeginGroup}
}

func (f *RepeatingGroupFieldType) SetValue(bytes []byte) bool {
	return false
}

func (f *RepeatingGroupFieldType) SetGroups(groups []interface{}) bool {
	f.groups = append([]interface{}(nil), groups...)
	return true
}

func (f *RepeatingGroupFieldType) Entries() []interface{} {
	return f.groups
}

func (f *RepeatingGroupFieldType) IsEmpty() bool {
	return len(f.groups) == 0
}

func (f *RepeatingGroupFieldType) Len() int {
	return len(f.groups)
}

// Read is implemented by the owning message template, which knows how to
// call ReadBody on each entry; a bare RepeatingGroupFieldType cannot
// serialize its own entries without that type information.
func (f *RepeatingGroupFieldType) Read(buf []byte) []byte {
	return buf
}
