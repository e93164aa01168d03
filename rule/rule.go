// Package rule defines the tagged-variant taxonomy attached to every field
// in a message template, describing how the parser must treat the tag
// beyond a plain scalar read.
package rule

import "github.com/epic1st/fixengine/fixversion"

// Kind discriminates which Rule variant is populated.
type Kind int

const (
	Nothing Kind = iota
	BeginGroup
	PrepareForBytes
	ConfirmPreviousTag
	RequiresFIXVersion
)

// Rule is a tagged variant mirroring the taxonomy fieldtype.Action expresses
// on the codec side, but attached to the dictionary schema instead of a
// live field value.
//
// GroupTemplate is typed as interface{} rather than message.Template to
// avoid a rule<->message import cycle (message.Fields returns map[string]Rule,
// so message already depends on rule); callers that consume a BeginGroup
// rule (the dictionary validator, the parser) type-assert it back to
// message.Template, which is always the concrete type stored here.
type Rule struct {
	Kind Kind

	// BeginGroup
	GroupTemplate interface{}

	// PrepareForBytes
	BytesTag string

	// ConfirmPreviousTag
	PreviousTag string

	// RequiresFIXVersion
	MinVersion fixversion.MessageVersion
}

func NothingRule() Rule {
	return Rule{Kind: Nothing}
}

func BeginGroupRule(template interface{}) Rule {
	return Rule{Kind: BeginGroup, GroupTemplate: template}
}

func PrepareForBytesRule(bytesTag string) Rule {
	return Rule{Kind: PrepareForBytes, BytesTag: bytesTag}
}

func ConfirmPreviousTagRule(previousTag string) Rule {
	return Rule{Kind: ConfirmPreviousTag, PreviousTag: previousTag}
}

func RequiresFIXVersionRule(min fixversion.MessageVersion) Rule {
	return Rule{Kind: RequiresFIXVersion, MinVersion: min}
}
