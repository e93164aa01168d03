// Package fixversion defines the FIX dialects this engine understands and
// the byte-literal BeginString each one is framed with on the wire.
package fixversion

// BeginString identifies the wire-level FIX version taken from tag 8.
type BeginString int

const (
	FIX40 BeginString = iota
	FIX41
	FIX42
	FIX43
	FIX44
	FIXT11
)

func (b BeginString) String() string {
	switch b {
	case FIX40:
		return "FIX.4.0"
	case FIX41:
		return "FIX.4.1"
	case FIX42:
		return "FIX.4.2"
	case FIX43:
		return "FIX.4.3"
	case FIX44:
		return "FIX.4.4"
	case FIXT11:
		return "FIXT.1.1"
	default:
		return "UNKNOWN"
	}
}

// BeginStringFromBytes resolves the literal tag-8 value into a BeginString,
// returning ok=false for anything not in the supported set.
func BeginStringFromBytes(b []byte) (BeginString, bool) {
	switch string(b) {
	case "FIX.4.0":
		return FIX40, true
	case "FIX.4.1":
		return FIX41, true
	case "FIX.4.2":
		return FIX42, true
	case "FIX.4.3":
		return FIX43, true
	case "FIX.4.4":
		return FIX44, true
	case "FIXT.1.1":
		return FIXT11, true
	default:
		return 0, false
	}
}

// MessageVersion is the dialect used to select a message's field schema.
// Under FIXT.1.1 this may differ from the session's BeginString, since
// ApplVerID (tag 1128) can override it on a per-message basis.
type MessageVersion int

const (
	FIX40Version MessageVersion = iota
	FIX41Version
	FIX42Version
	FIX43Version
	FIX44Version
	FIX50Version
	FIX50SP1Version
	FIX50SP2Version
)

// All returns every supported MessageVersion, used by the dictionary
// validator to check invariants across every dialect a template supports.
func All() []MessageVersion {
	return []MessageVersion{
		FIX40Version, FIX41Version, FIX42Version, FIX43Version, FIX44Version,
		FIX50Version, FIX50SP1Version, FIX50SP2Version,
	}
}

func (v MessageVersion) String() string {
	switch v {
	case FIX40Version:
		return "FIX.4.0"
	case FIX41Version:
		return "FIX.4.1"
	case FIX42Version:
		return "FIX.4.2"
	case FIX43Version:
		return "FIX.4.3"
	case FIX44Version:
		return "FIX.4.4"
	case FIX50Version:
		return "FIX.5.0"
	case FIX50SP1Version:
		return "FIX.5.0SP1"
	case FIX50SP2Version:
		return "FIX.5.0SP2"
	default:
		return "UNKNOWN"
	}
}

// FromApplVerID resolves tag 1128's enumerated value (as transmitted on the
// wire, "0" or "2".."9") to a MessageVersion. Returns ok=false for anything
// else.
func FromApplVerID(b []byte) (MessageVersion, bool) {
	switch string(b) {
	case "0":
		return FIX27Compat, true
	case "2":
		return FIX40Version, true
	case "3":
		return FIX41Version, true
	case "4":
		return FIX42Version, true
	case "5":
		return FIX43Version, true
	case "6":
		return FIX44Version, true
	case "7":
		return FIX50Version, true
	case "8":
		return FIX50SP1Version, true
	case "9":
		return FIX50SP2Version, true
	default:
		return 0, false
	}
}

// FIX27Compat is a placeholder for ApplVerID "0" (FIX 2.7), which predates
// every dialect this engine actually dispatches on. It is not part of All(),
// so the catalog's templates define no fields for it: the MsgType still
// resolves, but every body tag of such a message is reported as UnknownTag.
const FIX27Compat MessageVersion = -1

// DefaultApplVerID is the fallback MessageVersion used when a FIXT.1.1
// session never specifies ApplVerID anywhere, matching the FIX 5.0 SP2
// default used by fix-rs's DefaultApplVerIDFieldType.
const DefaultApplVerID = FIX50SP2Version

// MessageVersionForBeginString derives the MessageVersion implied directly
// by a non-FIXT.1.1 BeginString. FIXT.1.1 sessions never use this: their
// message version comes from ApplVerID or a configured default instead.
func MessageVersionForBeginString(b BeginString) MessageVersion {
	switch b {
	case FIX40:
		return FIX40Version
	case FIX41:
		return FIX41Version
	case FIX42:
		return FIX42Version
	case FIX43:
		return FIX43Version
	case FIX44:
		return FIX44Version
	default:
		return DefaultApplVerID
	}
}
