// Package messages declares the concrete FIX message catalog: one
// Definition per MsgType (or per repeating-group) built from a small
// declarative table of tag -> Rule plus a tag -> field-type constructor,
// mirroring the dictionary-driven layout the reference engine's
// define_message! macro produces, without needing Go code generation.
package messages

import (
	"sort"
	"strconv"

	"github.com/epic1st/fixengine/fieldtype"
	"github.com/epic1st/fixengine/fixversion"
	"github.com/epic1st/fixengine/message"
	"github.com/epic1st/fixengine/rule"
)

// FieldCodec constructs a fresh, empty fieldtype.FieldType for one tag.
// The concrete type a tag decodes to is treated as stable across FIX
// versions; only a field's presence, required-ness, and grouping vary
// per version, which is what schemaEntry captures.
type FieldCodec func() fieldtype.FieldType

type schemaEntry struct {
	fields      map[string]rule.Rule
	required    map[string]struct{}
	firstField  string
	conditional []string
}

// Definition is the per-message-type schema: MsgType, the version table,
// and the tag -> codec table shared by every version.
type Definition struct {
	msgType string
	codecs  map[string]FieldCodec
	schema  map[fixversion.MessageVersion]schemaEntry
}

// New returns a fresh GenericTemplate bound to this definition, suitable
// for handing straight to dictionary.New() or returning from another
// template's New()/group entry construction.
func (d *Definition) New() message.Template {
	return &GenericTemplate{
		def:    d,
		values: make(map[string]fieldtype.FieldType),
		groups: make(map[string]*fieldtype.RepeatingGroupFieldType),
	}
}

func (d *Definition) entry(version fixversion.MessageVersion) schemaEntry {
	if e, ok := d.schema[version]; ok {
		return e
	}
	return schemaEntry{}
}

// GenericTemplate is the single message.Template implementation shared by
// every concrete FIX message in this catalog; what varies between e.g.
// Logon and NewOrderSingle is entirely captured in the Definition it
// points at. Always handed out as a pointer: dictionary.ValueToLengthTags
// keys a seen-set by message.Template, and a GenericTemplate value holds
// maps, so only the pointer is comparable.
type GenericTemplate struct {
	def    *Definition
	values map[string]fieldtype.FieldType
	groups map[string]*fieldtype.RepeatingGroupFieldType
	meta   message.Meta
}

func (t *GenericTemplate) New() message.Template { return t.def.New() }

func (t *GenericTemplate) MsgType() string { return t.def.msgType }

func (t *GenericTemplate) Fields(version fixversion.MessageVersion) map[string]rule.Rule {
	src := t.def.entry(version).fields
	out := make(map[string]rule.Rule, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func (t *GenericTemplate) RequiredFields(version fixversion.MessageVersion) map[string]struct{} {
	src := t.def.entry(version).required
	out := make(map[string]struct{}, len(src))
	for k := range src {
		out[k] = struct{}{}
	}
	return out
}

func (t *GenericTemplate) FirstField(version fixversion.MessageVersion) string {
	return t.def.entry(version).firstField
}

func (t *GenericTemplate) ConditionalRequiredFields(version fixversion.MessageVersion) []string {
	return t.def.entry(version).conditional
}

func (t *GenericTemplate) SetValue(tag string, bytes []byte) message.SetValueError {
	ft, ok := t.values[tag]
	if !ok {
		codec, ok2 := t.def.codecs[tag]
		if !ok2 {
			return message.SetValueWrongFormat
		}
		ft = codec()
		t.values[tag] = ft
	}
	if !ft.SetValue(bytes) {
		return message.SetValueWrongFormat
	}
	return message.SetValueOK
}

func (t *GenericTemplate) SetGroups(tag string, entries []message.Template) bool {
	rg, ok := t.groups[tag]
	if !ok {
		rg = &fieldtype.RepeatingGroupFieldType{}
		t.groups[tag] = rg
	}
	boxed := make([]interface{}, len(entries))
	for i, e := range entries {
		boxed[i] = e
	}
	return rg.SetGroups(boxed)
}

func (t *GenericTemplate) Meta() message.Meta     { return t.meta }
func (t *GenericTemplate) SetMeta(meta message.Meta) { t.meta = meta }

// ReadBody serializes every populated field, in ascending tag order,
// recursing into folded repeating-group entries.
func (t *GenericTemplate) ReadBody(buf []byte) []byte {
	tags := make([]string, 0, len(t.values)+len(t.groups))
	for tag := range t.values {
		tags = append(tags, tag)
	}
	for tag := range t.groups {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		a, _ := strconv.Atoi(tags[i])
		b, _ := strconv.Atoi(tags[j])
		return a < b
	})

	for _, tag := range tags {
		if ft, ok := t.values[tag]; ok {
			if ft.IsEmpty() {
				continue
			}
			buf = append(buf, tag...)
			buf = append(buf, '=')
			buf = ft.Read(buf)
			buf = append(buf, 0x01)
			continue
		}
		rg := t.groups[tag]
		entries := rg.Entries()
		buf = append(buf, tag...)
		buf = append(buf, '=')
		buf = strconv.AppendInt(buf, int64(len(entries)), 10)
		buf = append(buf, 0x01)
		for _, e := range entries {
			if tmpl, ok := e.(message.Template); ok {
				buf = tmpl.ReadBody(buf)
			}
		}
	}
	return buf
}

// Entries returns a group's folded entries as message.Template, for
// application code (session handlers, the live feed) that needs to read
// back a parsed message's repeating-group contents.
func (t *GenericTemplate) Entries(tag string) []message.Template {
	rg, ok := t.groups[tag]
	if !ok {
		return nil
	}
	boxed := rg.Entries()
	out := make([]message.Template, 0, len(boxed))
	for _, b := range boxed {
		if tmpl, ok := b.(message.Template); ok {
			out = append(out, tmpl)
		}
	}
	return out
}

// Value returns the decoded field type stored under tag, or nil if the
// field was never set.
func (t *GenericTemplate) Value(tag string) fieldtype.FieldType {
	return t.values[tag]
}

func codecString() fieldtype.FieldType  { return &fieldtype.StringType{} }
func codecChar() fieldtype.FieldType    { return &fieldtype.CharType{} }
func codecBool() fieldtype.FieldType    { return &fieldtype.BoolType{} }
func codecInt() fieldtype.FieldType     { return &fieldtype.IntType{} }
func codecUInt() fieldtype.FieldType    { return &fieldtype.UIntType{} }
func codecDecimal() fieldtype.FieldType { return &fieldtype.DecimalType{} }
func codecData() fieldtype.FieldType    { return &fieldtype.DataType{} }
func codecLength() fieldtype.FieldType  { return &fieldtype.LengthType{} }

// allVersions builds an identical schemaEntry for every version this
// engine supports; callers needing per-version variation build the map
// by hand instead of calling this helper.
func allVersions(fields map[string]rule.Rule, required map[string]struct{}, firstField string, conditional []string) map[fixversion.MessageVersion]schemaEntry {
	e := schemaEntry{fields: fields, required: required, firstField: firstField, conditional: conditional}
	out := make(map[fixversion.MessageVersion]schemaEntry, len(fixversion.All()))
	for _, v := range fixversion.All() {
		out[v] = e
	}
	return out
}

func req(tags ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		out[t] = struct{}{}
	}
	return out
}
