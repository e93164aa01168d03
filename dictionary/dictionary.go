// Package dictionary maps FIX MsgType bytes to message.Template values and
// validates, once at startup, that every template in the mapping (and
// every repeating-group template reachable from it) satisfies the
// structural invariants the parser relies on.
package dictionary

import (
	"fmt"

	"github.com/epic1st/fixengine/fixversion"
	"github.com/epic1st/fixengine/message"
	"github.com/epic1st/fixengine/rule"
)

// Dictionary is an immutable MsgType -> template mapping, built once and
// shared read-only across every parser that uses it.
type Dictionary struct {
	templates map[string]message.Template
}

// New builds a Dictionary from a MsgType -> template mapping and validates
// it. Validation failure panics: a malformed dictionary is a programmer
// error caught at startup, not a runtime parse error.
func New(templates map[string]message.Template) *Dictionary {
	d := &Dictionary{templates: templates}
	Validate(d)
	return d
}

// Lookup returns the template registered for msgType, or ok=false if none.
func (d *Dictionary) Lookup(msgType string) (message.Template, bool) {
	t, ok := d.templates[msgType]
	return t, ok
}

// IsTagKnown reports whether tag belongs to the field schema of any
// message in the dictionary at the given version — used to distinguish
// UnexpectedTag (known elsewhere, not here) from UnknownTag (unknown
// anywhere).
func (d *Dictionary) IsTagKnown(tag string, version fixversion.MessageVersion) bool {
	for _, t := range d.templates {
		if _, ok := t.Fields(version)[tag]; ok {
			return true
		}
	}
	return false
}

// ValueToLengthTags walks every template (transitively through nested
// repeating groups) and collects, for every field that declares
// ConfirmPreviousTag{previous_tag}, a tag -> previous_tag entry. The parser
// stores this map when it is constructed; its own check that a
// ConfirmPreviousTag field immediately follows its length tag reads the
// field's rule.Rule instead.
func (d *Dictionary) ValueToLengthTags() map[string]string {
	result := make(map[string]string)
	seen := map[message.Template]bool{}
	stack := make([]message.Template, 0, len(d.templates))
	for _, t := range d.templates {
		stack = append(stack, t)
	}

	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[t] {
			continue
		}
		seen[t] = true

		for _, version := range fixversion.All() {
			for tag, r := range t.Fields(version) {
				switch r.Kind {
				case rule.ConfirmPreviousTag:
					result[tag] = r.PreviousTag
				case rule.BeginGroup:
					if sub, ok := r.GroupTemplate.(message.Template); ok {
						stack = append(stack, sub)
					}
				}
			}
		}
	}

	return result
}

type messageKind int

const (
	kindStandard messageKind = iota
	kindRepeatingGroup
)

// Validate walks every template in d (and every nested repeating-group
// template reachable via BeginGroup rules) and panics if any of the
// invariants below are violated for every supported version:
//
//   - every message has at least one field;
//   - FirstField is present in Fields;
//   - for repeating-group templates, FirstField is in RequiredFields;
//   - RequiredFields is a subset of Fields;
//   - PrepareForBytes{b} on tag a is matched bijectively by
//     ConfirmPreviousTag{a} on tag b.
func Validate(d *Dictionary) {
	type entry struct {
		kind     messageKind
		template message.Template
	}

	var all []entry
	stack := make([]entry, 0, len(d.templates))
	for _, t := range d.templates {
		stack = append(stack, entry{kindStandard, t})
	}

	seenGroups := map[string]bool{}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, version := range fixversion.All() {
			for tag, r := range e.template.Fields(version) {
				if r.Kind != rule.BeginGroup {
					continue
				}
				key := fmt.Sprintf("%p:%s", e.template, tag)
				if seenGroups[key] {
					continue
				}
				seenGroups[key] = true
				if sub, ok := r.GroupTemplate.(message.Template); ok {
					stack = append(stack, entry{kindRepeatingGroup, sub})
				}
			}
		}

		all = append(all, e)
	}

	for _, e := range all {
		noFields := true
		firstFieldNotInFields := true
		groupFirstFieldNotRequired := true

		for _, version := range fixversion.All() {
			fields := e.template.Fields(version)
			noFields = len(fields) == 0

			firstField := e.template.FirstField(version)
			_, firstFieldNotInFields = fields[firstField]
			firstFieldNotInFields = !firstFieldNotInFields

			isGroup := e.kind == kindRepeatingGroup
			groupFirstFieldNotRequired = false
			if isGroup {
				required := e.template.RequiredFields(version)
				_, inRequired := required[firstField]
				groupFirstFieldNotRequired = !inRequired
			}

			if !noFields && !firstFieldNotInFields && (!groupFirstFieldNotRequired || !isGroup) {
				groupFirstFieldNotRequired = false
				break
			}
		}

		if noFields {
			panic(fmt.Sprintf("dictionary: message %q has no fields", e.template.MsgType()))
		}
		if firstFieldNotInFields {
			panic(fmt.Sprintf("dictionary: message %q FirstField is not in Fields", e.template.MsgType()))
		}
		if groupFirstFieldNotRequired {
			panic(fmt.Sprintf("dictionary: repeating-group message %q FirstField is not in RequiredFields", e.template.MsgType()))
		}
	}

	for _, version := range fixversion.All() {
		for _, e := range all {
			fields := e.template.Fields(version)
			required := e.template.RequiredFields(version)
			for tag := range required {
				if _, ok := fields[tag]; !ok {
					panic(fmt.Sprintf("dictionary: message %q RequiredFields is not a subset of Fields (tag %s)", e.template.MsgType(), tag))
				}
			}
		}

		for _, e := range all {
			fields := e.template.Fields(version)
			for tag, r := range fields {
				switch r.Kind {
				case rule.PrepareForBytes:
					bytesTagRule, ok := fields[r.BytesTag]
					if !ok {
						panic(fmt.Sprintf("dictionary: field %q declares PrepareForBytes but no matching %q field was found", tag, r.BytesTag))
					}
					if bytesTagRule.Kind != rule.ConfirmPreviousTag || bytesTagRule.PreviousTag != tag {
						panic(fmt.Sprintf("dictionary: field %q declares PrepareForBytes but %q's ConfirmPreviousTag is not bijective", tag, r.BytesTag))
					}
				case rule.ConfirmPreviousTag:
					previousTagRule, ok := fields[r.PreviousTag]
					if !ok {
						panic(fmt.Sprintf("dictionary: field %q declares ConfirmPreviousTag but no matching %q field was found", tag, r.PreviousTag))
					}
					if previousTagRule.Kind != rule.PrepareForBytes || previousTagRule.BytesTag != tag {
						panic(fmt.Sprintf("dictionary: field %q declares ConfirmPreviousTag but %q's PrepareForBytes is not bijective", tag, r.PreviousTag))
					}
				}
			}
		}
	}
}
