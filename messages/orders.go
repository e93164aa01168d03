package messages

import "github.com/epic1st/fixengine/rule"

const (
	MsgTypeNewOrderSingle            = "D"
	MsgTypeExecutionReport           = "8"
	MsgTypeOrderCancelRequest        = "F"
	MsgTypeOrderCancelReplaceRequest = "G"
	MsgTypeOrderCancelReject         = "9"
)

const (
	TagClOrdID           = "11"
	TagOrigClOrdID       = "41"
	TagSymbol            = "55"
	TagSide              = "54"
	TagOrderQty          = "38"
	TagOrdType           = "40"
	TagPrice             = "44"
	TagTimeInForce       = "59"
	TagAccount           = "1"
	TagTransactTime      = "60"
	TagOrderID           = "37"
	TagExecID            = "17"
	TagExecType          = "150"
	TagOrdStatus         = "39"
	TagLastQty           = "32"
	TagLastPx            = "31"
	TagCumQty            = "14"
	TagAvgPx             = "6"
	TagLeavesQty         = "151"
	TagCxlRejResponseTo  = "434"
	TagCxlRejReason      = "102"
)

func newOrderSingleDefinition() *Definition {
	fields := mergeFields(map[string]rule.Rule{
		TagClOrdID:      rule.NothingRule(),
		TagSymbol:       rule.NothingRule(),
		TagSide:         rule.NothingRule(),
		TagOrderQty:     rule.NothingRule(),
		TagOrdType:      rule.NothingRule(),
		TagPrice:        rule.NothingRule(),
		TagTimeInForce:  rule.NothingRule(),
		TagAccount:      rule.NothingRule(),
		TagTransactTime: rule.NothingRule(),
	})
	codecs := mergeCodecs(map[string]FieldCodec{
		TagClOrdID:      codecString,
		TagSymbol:       codecString,
		TagSide:         codecChar,
		TagOrderQty:     codecDecimal,
		TagOrdType:      codecChar,
		TagPrice:        codecDecimal,
		TagTimeInForce:  codecChar,
		TagAccount:      codecString,
		TagTransactTime: codecString,
	})
	required := mergeRequired(TagClOrdID, TagSymbol, TagSide, TagOrderQty, TagOrdType, TagTransactTime)
	// Price is listed as a conditional tag whatever the OrdType: the list is
	// static, so once the rest of the message is complete the parser reports
	// MissingConditionallyRequiredTag for any NewOrderSingle without Price,
	// a market order included.
	conditional := []string{TagPrice}
	return &Definition{
		msgType: MsgTypeNewOrderSingle,
		codecs:  codecs,
		schema:  allVersions(fields, required, TagMsgSeqNum, conditional),
	}
}

func executionReportDefinition() *Definition {
	fields := mergeFields(map[string]rule.Rule{
		TagOrderID:      rule.NothingRule(),
		TagClOrdID:      rule.NothingRule(),
		TagExecID:       rule.NothingRule(),
		TagExecType:     rule.NothingRule(),
		TagOrdStatus:    rule.NothingRule(),
		TagSymbol:       rule.NothingRule(),
		TagSide:         rule.NothingRule(),
		TagOrderQty:     rule.NothingRule(),
		TagPrice:        rule.NothingRule(),
		TagLastQty:      rule.NothingRule(),
		TagLastPx:       rule.NothingRule(),
		TagCumQty:       rule.NothingRule(),
		TagAvgPx:        rule.NothingRule(),
		TagLeavesQty:    rule.NothingRule(),
		TagText:         rule.NothingRule(),
		TagTransactTime: rule.NothingRule(),
	})
	codecs := mergeCodecs(map[string]FieldCodec{
		TagOrderID:      codecString,
		TagClOrdID:      codecString,
		TagExecID:       codecString,
		TagExecType:     codecChar,
		TagOrdStatus:    codecChar,
		TagSymbol:       codecString,
		TagSide:         codecChar,
		TagOrderQty:     codecDecimal,
		TagPrice:        codecDecimal,
		TagLastQty:      codecDecimal,
		TagLastPx:       codecDecimal,
		TagCumQty:       codecDecimal,
		TagAvgPx:        codecDecimal,
		TagLeavesQty:    codecDecimal,
		TagText:         codecString,
		TagTransactTime: codecString,
	})
	required := mergeRequired(TagOrderID, TagClOrdID, TagExecID, TagExecType, TagOrdStatus,
		TagSymbol, TagSide, TagOrderQty, TagCumQty, TagAvgPx, TagLeavesQty, TagTransactTime)
	return &Definition{
		msgType: MsgTypeExecutionReport,
		codecs:  codecs,
		schema:  allVersions(fields, required, TagMsgSeqNum, nil),
	}
}

func orderCancelRequestDefinition() *Definition {
	fields := mergeFields(map[string]rule.Rule{
		TagOrigClOrdID:  rule.NothingRule(),
		TagClOrdID:      rule.NothingRule(),
		TagSymbol:       rule.NothingRule(),
		TagSide:         rule.NothingRule(),
		TagTransactTime: rule.NothingRule(),
	})
	codecs := mergeCodecs(map[string]FieldCodec{
		TagOrigClOrdID:  codecString,
		TagClOrdID:      codecString,
		TagSymbol:       codecString,
		TagSide:         codecChar,
		TagTransactTime: codecString,
	})
	required := mergeRequired(TagOrigClOrdID, TagClOrdID, TagSymbol, TagSide, TagTransactTime)
	return &Definition{
		msgType: MsgTypeOrderCancelRequest,
		codecs:  codecs,
		schema:  allVersions(fields, required, TagMsgSeqNum, nil),
	}
}

func orderCancelReplaceRequestDefinition() *Definition {
	fields := mergeFields(map[string]rule.Rule{
		TagOrigClOrdID:  rule.NothingRule(),
		TagClOrdID:      rule.NothingRule(),
		TagSymbol:       rule.NothingRule(),
		TagSide:         rule.NothingRule(),
		TagOrderQty:     rule.NothingRule(),
		TagOrdType:      rule.NothingRule(),
		TagPrice:        rule.NothingRule(),
		TagTransactTime: rule.NothingRule(),
	})
	codecs := mergeCodecs(map[string]FieldCodec{
		TagOrigClOrdID:  codecString,
		TagClOrdID:      codecString,
		TagSymbol:       codecString,
		TagSide:         codecChar,
		TagOrderQty:     codecDecimal,
		TagOrdType:      codecChar,
		TagPrice:        codecDecimal,
		TagTransactTime: codecString,
	})
	required := mergeRequired(TagOrigClOrdID, TagClOrdID, TagSymbol, TagSide, TagOrderQty, TagOrdType, TagTransactTime)
	return &Definition{
		msgType: MsgTypeOrderCancelReplaceRequest,
		codecs:  codecs,
		schema:  allVersions(fields, required, TagMsgSeqNum, []string{TagPrice}),
	}
}

func orderCancelRejectDefinition() *Definition {
	fields := mergeFields(map[string]rule.Rule{
		TagOrderID:          rule.NothingRule(),
		TagClOrdID:          rule.NothingRule(),
		TagOrigClOrdID:      rule.NothingRule(),
		TagOrdStatus:        rule.NothingRule(),
		TagCxlRejResponseTo: rule.NothingRule(),
		TagCxlRejReason:     rule.NothingRule(),
		TagText:             rule.NothingRule(),
	})
	codecs := mergeCodecs(map[string]FieldCodec{
		TagOrderID:          codecString,
		TagClOrdID:          codecString,
		TagOrigClOrdID:      codecString,
		TagOrdStatus:        codecChar,
		TagCxlRejResponseTo: codecChar,
		TagCxlRejReason:     codecInt,
		TagText:             codecString,
	})
	required := mergeRequired(TagOrderID, TagClOrdID, TagOrigClOrdID, TagOrdStatus, TagCxlRejResponseTo)
	return &Definition{
		msgType: MsgTypeOrderCancelReject,
		codecs:  codecs,
		schema:  allVersions(fields, required, TagMsgSeqNum, nil),
	}
}
