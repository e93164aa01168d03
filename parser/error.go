package parser

import (
	"fmt"

	"github.com/epic1st/fixengine/message"
)

// ErrorKind enumerates the full parse-error taxonomy from the protocol
// specification this engine implements, each carrying whatever detail a
// session-level Reject generator needs.
type ErrorKind int

const (
	MissingRequiredTag ErrorKind = iota
	MissingConditionallyRequiredTag
	BeginStrNotFirstTag
	BodyLengthNotSecondTag
	BodyLengthNotNumber
	MsgTypeNotThirdTag
	MsgTypeUnknown
	SenderCompIDNotFourthTag
	TargetCompIDNotFifthTag
	ApplVerIDNotSixthTag
	ChecksumNotLastTag
	ChecksumDoesNotMatch
	ChecksumNotNumber
	DuplicateTag
	UnexpectedTag
	UnknownTag
	WrongFormatTag
	OutOfRangeTag
	NoValueAfterTag
	MissingPrecedingLengthTag
	MissingFollowingLengthTag
	NonRepeatingGroupTagInRepeatingGroup
	RepeatingGroupTagWithNoRepeatingGroup
	MissingFirstRepeatingGroupTagAfterNumberOfRepeatingGroupTag
)

func (k ErrorKind) String() string {
	switch k {
	case MissingRequiredTag:
		return "MissingRequiredTag"
	case MissingConditionallyRequiredTag:
		return "MissingConditionallyRequiredTag"
	case BeginStrNotFirstTag:
		return "BeginStrNotFirstTag"
	case BodyLengthNotSecondTag:
		return "BodyLengthNotSecondTag"
	case BodyLengthNotNumber:
		return "BodyLengthNotNumber"
	case MsgTypeNotThirdTag:
		return "MsgTypeNotThirdTag"
	case MsgTypeUnknown:
		return "MsgTypeUnknown"
	case SenderCompIDNotFourthTag:
		return "SenderCompIDNotFourthTag"
	case TargetCompIDNotFifthTag:
		return "TargetCompIDNotFifthTag"
	case ApplVerIDNotSixthTag:
		return "ApplVerIDNotSixthTag"
	case ChecksumNotLastTag:
		return "ChecksumNotLastTag"
	case ChecksumDoesNotMatch:
		return "ChecksumDoesNotMatch"
	case ChecksumNotNumber:
		return "ChecksumNotNumber"
	case DuplicateTag:
		return "DuplicateTag"
	case UnexpectedTag:
		return "UnexpectedTag"
	case UnknownTag:
		return "UnknownTag"
	case WrongFormatTag:
		return "WrongFormatTag"
	case OutOfRangeTag:
		return "OutOfRangeTag"
	case NoValueAfterTag:
		return "NoValueAfterTag"
	case MissingPrecedingLengthTag:
		return "MissingPrecedingLengthTag"
	case MissingFollowingLengthTag:
		return "MissingFollowingLengthTag"
	case NonRepeatingGroupTagInRepeatingGroup:
		return "NonRepeatingGroupTagInRepeatingGroup"
	case RepeatingGroupTagWithNoRepeatingGroup:
		return "RepeatingGroupTagWithNoRepeatingGroup"
	case MissingFirstRepeatingGroupTagAfterNumberOfRepeatingGroupTag:
		return "MissingFirstRepeatingGroupTagAfterNumberOfRepeatingGroupTag"
	default:
		return "Unknown"
	}
}

// ParseError is the single error type the parser returns. Kind selects
// which fields are meaningful; Tag/Calculated/Stated/PartialMessage are
// populated only by the kinds that carry them.
type ParseError struct {
	Kind ErrorKind

	Tag            string
	MsgType        string           // MsgTypeUnknown
	Calculated     byte             // ChecksumDoesNotMatch
	Stated         byte             // ChecksumDoesNotMatch
	PartialMessage message.Template // MissingRequiredTag / MissingConditionallyRequiredTag
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case MissingRequiredTag:
		return fmt.Sprintf("parser: missing required tag %s", e.Tag)
	case MissingConditionallyRequiredTag:
		return fmt.Sprintf("parser: missing conditionally required tag %s", e.Tag)
	case MsgTypeUnknown:
		return fmt.Sprintf("parser: unknown message type %q", e.MsgType)
	case ChecksumDoesNotMatch:
		return fmt.Sprintf("parser: checksum mismatch (calculated %d, stated %d)", e.Calculated, e.Stated)
	case DuplicateTag:
		return fmt.Sprintf("parser: duplicate tag %s", e.Tag)
	case UnexpectedTag:
		return fmt.Sprintf("parser: unexpected tag %s", e.Tag)
	case UnknownTag:
		return fmt.Sprintf("parser: unknown tag %s", e.Tag)
	case WrongFormatTag:
		return fmt.Sprintf("parser: wrong format for tag %s", e.Tag)
	case OutOfRangeTag:
		return fmt.Sprintf("parser: value out of range for tag %s", e.Tag)
	case NoValueAfterTag:
		return fmt.Sprintf("parser: no value after tag %s", e.Tag)
	case MissingPrecedingLengthTag:
		return fmt.Sprintf("parser: tag %s requires a preceding length tag", e.Tag)
	case MissingFollowingLengthTag:
		return fmt.Sprintf("parser: length tag %s not followed by its data tag", e.Tag)
	case NonRepeatingGroupTagInRepeatingGroup:
		return fmt.Sprintf("parser: tag %s does not belong in the active repeating group", e.Tag)
	case RepeatingGroupTagWithNoRepeatingGroup:
		return fmt.Sprintf("parser: tag %s exceeds the declared repeating group count", e.Tag)
	case MissingFirstRepeatingGroupTagAfterNumberOfRepeatingGroupTag:
		return fmt.Sprintf("parser: tag %s not followed by the repeating group's first field", e.Tag)
	default:
		return fmt.Sprintf("parser: %s", e.Kind)
	}
}

func errTag(kind ErrorKind, tag string) *ParseError {
	return &ParseError{Kind: kind, Tag: tag}
}
