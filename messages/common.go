package messages

import "github.com/epic1st/fixengine/rule"

// Standard header/trailer tags every message type exposes beyond the
// positionally-validated 8/9/35(/49/56/1128) and the checksum. MsgSeqNum is
// the only one marked required: SenderCompID/TargetCompID are consumed
// positionally under FIXT.1.1 and are therefore declared optional here so a
// valid FIXT.1.1 message is never flagged as missing them twice.
const (
	TagMsgSeqNum       = "34"
	TagSenderCompID    = "49"
	TagTargetCompID    = "56"
	TagSendingTime     = "52"
	TagPossDupFlag     = "43"
	TagPossResend      = "97"
	TagOrigSendingTime = "122"
)

func commonFields() map[string]rule.Rule {
	return map[string]rule.Rule{
		TagMsgSeqNum:       rule.NothingRule(),
		TagSenderCompID:    rule.NothingRule(),
		TagTargetCompID:    rule.NothingRule(),
		TagSendingTime:     rule.NothingRule(),
		TagPossDupFlag:     rule.NothingRule(),
		TagPossResend:      rule.NothingRule(),
		TagOrigSendingTime: rule.NothingRule(),
	}
}

func commonCodecs() map[string]FieldCodec {
	return map[string]FieldCodec{
		TagMsgSeqNum:       codecUInt,
		TagSenderCompID:    codecString,
		TagTargetCompID:    codecString,
		TagSendingTime:     codecString,
		TagPossDupFlag:     codecBool,
		TagPossResend:      codecBool,
		TagOrigSendingTime: codecString,
	}
}

func commonRequired() map[string]struct{} {
	return req(TagMsgSeqNum)
}

// mergeFields overlays extra on top of the common header/trailer fields,
// extra winning on any tag collision.
func mergeFields(extra map[string]rule.Rule) map[string]rule.Rule {
	out := commonFields()
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func mergeCodecs(extra map[string]FieldCodec) map[string]FieldCodec {
	out := commonCodecs()
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func mergeRequired(extra ...string) map[string]struct{} {
	out := commonRequired()
	for _, t := range extra {
		out[t] = struct{}{}
	}
	return out
}
