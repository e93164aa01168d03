package messages

import "github.com/epic1st/fixengine/rule"

const (
	MsgTypeLogon         = "A"
	MsgTypeLogout        = "5"
	MsgTypeHeartbeat     = "0"
	MsgTypeTestRequest   = "1"
	MsgTypeResendRequest = "2"
	MsgTypeReject        = "3"
	MsgTypeSequenceReset = "4"
	MsgTypeBusinessReject = "j"
)

const (
	TagEncryptMethod    = "98"
	TagHeartBtInt       = "108"
	TagRawDataLength    = "95"
	TagRawData          = "96"
	TagResetSeqNumFlag  = "141"
	TagDefaultApplVerID = "1137"
	TagText             = "58"
	TagTestReqID        = "112"
	TagBeginSeqNo       = "7"
	TagEndSeqNo         = "16"
	TagGapFillFlag      = "123"
	TagNewSeqNo         = "36"
	TagRefSeqNum        = "45"
	TagRefTagID         = "371"
	TagRefMsgType       = "372"
	TagSessionRejReason = "373"
	TagBusinessRejRefID = "379"
	TagBusinessRejReason = "380"
)

func logonDefinition() *Definition {
	fields := mergeFields(map[string]rule.Rule{
		TagEncryptMethod:    rule.NothingRule(),
		TagHeartBtInt:       rule.NothingRule(),
		TagRawDataLength:    rule.PrepareForBytesRule(TagRawData),
		TagRawData:          rule.ConfirmPreviousTagRule(TagRawDataLength),
		TagResetSeqNumFlag:  rule.NothingRule(),
		TagDefaultApplVerID: rule.NothingRule(),
	})
	codecs := mergeCodecs(map[string]FieldCodec{
		TagEncryptMethod:    codecInt,
		TagHeartBtInt:       codecInt,
		TagRawDataLength:    codecLength,
		TagRawData:          codecData,
		TagResetSeqNumFlag:  codecBool,
		TagDefaultApplVerID: codecString,
	})
	required := mergeRequired(TagEncryptMethod, TagHeartBtInt)
	return &Definition{
		msgType: MsgTypeLogon,
		codecs:  codecs,
		schema:  allVersions(fields, required, TagMsgSeqNum, nil),
	}
}

func logoutDefinition() *Definition {
	fields := mergeFields(map[string]rule.Rule{TagText: rule.NothingRule()})
	codecs := mergeCodecs(map[string]FieldCodec{TagText: codecString})
	return &Definition{
		msgType: MsgTypeLogout,
		codecs:  codecs,
		schema:  allVersions(fields, commonRequired(), TagMsgSeqNum, nil),
	}
}

func heartbeatDefinition() *Definition {
	fields := mergeFields(map[string]rule.Rule{TagTestReqID: rule.NothingRule()})
	codecs := mergeCodecs(map[string]FieldCodec{TagTestReqID: codecString})
	return &Definition{
		msgType: MsgTypeHeartbeat,
		codecs:  codecs,
		schema:  allVersions(fields, commonRequired(), TagMsgSeqNum, nil),
	}
}

func testRequestDefinition() *Definition {
	fields := mergeFields(map[string]rule.Rule{TagTestReqID: rule.NothingRule()})
	codecs := mergeCodecs(map[string]FieldCodec{TagTestReqID: codecString})
	return &Definition{
		msgType: MsgTypeTestRequest,
		codecs:  codecs,
		schema:  allVersions(fields, mergeRequired(TagTestReqID), TagMsgSeqNum, nil),
	}
}

func resendRequestDefinition() *Definition {
	fields := mergeFields(map[string]rule.Rule{
		TagBeginSeqNo: rule.NothingRule(),
		TagEndSeqNo:   rule.NothingRule(),
	})
	codecs := mergeCodecs(map[string]FieldCodec{
		TagBeginSeqNo: codecUInt,
		TagEndSeqNo:   codecUInt,
	})
	return &Definition{
		msgType: MsgTypeResendRequest,
		codecs:  codecs,
		schema:  allVersions(fields, mergeRequired(TagBeginSeqNo, TagEndSeqNo), TagMsgSeqNum, nil),
	}
}

func sequenceResetDefinition() *Definition {
	fields := mergeFields(map[string]rule.Rule{
		TagGapFillFlag: rule.NothingRule(),
		TagNewSeqNo:    rule.NothingRule(),
	})
	codecs := mergeCodecs(map[string]FieldCodec{
		TagGapFillFlag: codecBool,
		TagNewSeqNo:    codecUInt,
	})
	return &Definition{
		msgType: MsgTypeSequenceReset,
		codecs:  codecs,
		schema:  allVersions(fields, mergeRequired(TagNewSeqNo), TagMsgSeqNum, nil),
	}
}

func rejectDefinition() *Definition {
	fields := mergeFields(map[string]rule.Rule{
		TagRefSeqNum:        rule.NothingRule(),
		TagRefTagID:         rule.NothingRule(),
		TagRefMsgType:       rule.NothingRule(),
		TagSessionRejReason: rule.NothingRule(),
		TagText:             rule.NothingRule(),
	})
	codecs := mergeCodecs(map[string]FieldCodec{
		TagRefSeqNum:        codecUInt,
		TagRefTagID:         codecInt,
		TagRefMsgType:       codecString,
		TagSessionRejReason: codecInt,
		TagText:             codecString,
	})
	return &Definition{
		msgType: MsgTypeReject,
		codecs:  codecs,
		schema:  allVersions(fields, mergeRequired(TagRefSeqNum), TagMsgSeqNum, nil),
	}
}

func businessMessageRejectDefinition() *Definition {
	fields := mergeFields(map[string]rule.Rule{
		TagRefSeqNum:         rule.NothingRule(),
		TagRefMsgType:        rule.NothingRule(),
		TagBusinessRejRefID:  rule.NothingRule(),
		TagBusinessRejReason: rule.NothingRule(),
		TagText:              rule.NothingRule(),
	})
	codecs := mergeCodecs(map[string]FieldCodec{
		TagRefSeqNum:         codecUInt,
		TagRefMsgType:        codecString,
		TagBusinessRejRefID:  codecString,
		TagBusinessRejReason: codecInt,
		TagText:              codecString,
	})
	return &Definition{
		msgType: MsgTypeBusinessReject,
		codecs:  codecs,
		schema:  allVersions(fields, mergeRequired(TagRefMsgType, TagBusinessRejReason), TagMsgSeqNum, nil),
	}
}
