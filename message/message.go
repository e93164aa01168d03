// Package message defines the Template/Message abstraction the parser
// dispatches against: a per-MsgType, per-version field schema plus the
// populated value the parser mutates field by field as it consumes a
// message's bytes.
package message

import (
	"github.com/epic1st/fixengine/fixversion"
	"github.com/epic1st/fixengine/rule"
)

// SetValueError distinguishes why SetValue rejected a tag's bytes, so the
// parser can translate it into the right ParseError.
type SetValueError int

const (
	SetValueOK SetValueError = iota
	SetValueWrongFormat
	SetValueOutOfRange
)

// Meta carries framing details attached to a message once it is fully
// parsed, mainly useful for diagnostics and for constructing a Reject.
type Meta struct {
	BeginString fixversion.BeginString
	BodyLength  uint64
	CheckSum    byte
}

// Template is both the per-message-version schema descriptor and the
// populated-value contract. Concrete message types (messages/ package)
// implement it once per MsgType; the parser calls New() to get a fresh
// instance to populate, both for a whole message and for each
// repeating-group entry.
type Template interface {
	// New returns a fresh, empty instance of this message type (or, for a
	// repeating-group template, a fresh per-entry instance).
	New() Template

	// MsgType returns the tag-35 literal this template is registered under.
	// Repeating-group templates return "" since they are never dispatched
	// by MsgType directly.
	MsgType() string

	// Fields returns tag -> Rule for every field this message supports at
	// the given version.
	Fields(version fixversion.MessageVersion) map[string]rule.Rule

	// RequiredFields returns the set of tags that must be present for the
	// message to be considered complete at the given version.
	RequiredFields(version fixversion.MessageVersion) map[string]struct{}

	// FirstField returns the tag that must open every repeating-group
	// entry of this template. Meaningless for non-group templates but
	// still required to satisfy the dictionary validator's structural
	// check (every template declares one).
	FirstField(version fixversion.MessageVersion) string

	// ConditionalRequiredFields returns tags required given the values of
	// other already-set fields (evaluated only once the message otherwise
	// looks complete).
	ConditionalRequiredFields(version fixversion.MessageVersion) []string

	// SetValue decodes bytes into the field registered under tag.
	SetValue(tag string, bytes []byte) SetValueError

	// SetGroups atomically replaces the repeating-group field registered
	// under tag (the "number of entries" tag) with the parser's folded
	// entries.
	SetGroups(tag string, entries []Template) bool

	// Meta / SetMeta carry framing info attached at message completion.
	Meta() Meta
	SetMeta(meta Meta)

	// ReadBody serializes every set field (excluding the header/trailer)
	// in ascending numeric tag order, appending to buf.
	ReadBody(buf []byte) []byte
}

// NullMessage is the sentinel the parser substitutes for its working
// message slot immediately after transferring ownership of the real
// message to a ParseError or to the output queue.
type NullMessage struct{}

func (NullMessage) New() Template { return NullMessage{} }
func (NullMessage) MsgType() string { return "" }
func (NullMessage) Fields(fixversion.MessageVersion) map[string]rule.Rule {
	return map[string]rule.Rule{}
}
func (NullMessage) RequiredFields(fixversion.MessageVersion) map[string]struct{} {
	return map[string]struct{}{}
}
func (NullMessage) FirstField(fixversion.MessageVersion) string { return "" }
func (NullMessage) ConditionalRequiredFields(fixversion.MessageVersion) []string { return nil }
func (NullMessage) SetValue(string, []byte) SetValueError { return SetValueWrongFormat }
func (NullMessage) SetGroups(string, []Template) bool { return false }
func (NullMessage) Meta() Meta { return Meta{} }
func (NullMessage) SetMeta(Meta) {}
func (NullMessage) ReadBody(buf []byte) []byte { return buf }
