package messages

import "github.com/epic1st/fixengine/rule"

const (
	MsgTypeMarketDataRequest                = "V"
	MsgTypeMarketDataSnapshotFullRefresh    = "W"
	MsgTypeMarketDataIncrementalRefresh     = "X"
	MsgTypeMarketDataRequestReject          = "Y"
	MsgTypeQuoteRequest                     = "R"
	MsgTypeQuote                            = "S"
)

const (
	TagMDReqID                 = "262"
	TagSubscriptionRequestType = "263"
	TagMarketDepth             = "264"
	TagNoRelatedSym            = "146"
	TagNoMDEntryTypes          = "267"
	TagMDEntryType             = "269"
	TagNoMDEntries             = "268"
	TagMDEntryPx               = "270"
	TagMDEntrySize             = "271"
	TagMDEntryID               = "278"
	TagMDUpdateAction          = "279"
	TagMDReqRejReason          = "281"
	TagQuoteReqID              = "131"
	TagQuoteID                 = "117"
	TagBidPx                   = "132"
	TagOfferPx                 = "133"
	TagBidSize                 = "134"
	TagOfferSize               = "135"
	TagValidUntilTime          = "62"
)

// relatedSymEntryDefinition is the NoRelatedSym group entry: just the
// instrument symbol, keyed on itself as the group's first (and only)
// field.
func relatedSymEntryDefinition() *Definition {
	fields := map[string]rule.Rule{TagSymbol: rule.NothingRule()}
	codecs := map[string]FieldCodec{TagSymbol: codecString}
	required := req(TagSymbol)
	return &Definition{
		codecs: codecs,
		schema: allVersions(fields, required, TagSymbol, nil),
	}
}

func mdEntryTypeEntryDefinition() *Definition {
	fields := map[string]rule.Rule{TagMDEntryType: rule.NothingRule()}
	codecs := map[string]FieldCodec{TagMDEntryType: codecChar}
	required := req(TagMDEntryType)
	return &Definition{
		codecs: codecs,
		schema: allVersions(fields, required, TagMDEntryType, nil),
	}
}

// mdFullEntryDefinition is one NoMDEntries entry of a snapshot: type, price,
// size, and an optional venue-assigned entry ID.
func mdFullEntryDefinition() *Definition {
	fields := map[string]rule.Rule{
		TagMDEntryType: rule.NothingRule(),
		TagMDEntryPx:   rule.NothingRule(),
		TagMDEntrySize: rule.NothingRule(),
		TagMDEntryID:   rule.NothingRule(),
	}
	codecs := map[string]FieldCodec{
		TagMDEntryType: codecChar,
		TagMDEntryPx:   codecDecimal,
		TagMDEntrySize: codecDecimal,
		TagMDEntryID:   codecString,
	}
	required := req(TagMDEntryType, TagMDEntryPx)
	return &Definition{
		codecs: codecs,
		schema: allVersions(fields, required, TagMDEntryType, nil),
	}
}

// mdIncrementalEntryDefinition is one NoMDEntries entry of an incremental
// refresh: the update action comes first, per the wire convention.
func mdIncrementalEntryDefinition() *Definition {
	fields := map[string]rule.Rule{
		TagMDUpdateAction: rule.NothingRule(),
		TagMDEntryType:    rule.NothingRule(),
		TagSymbol:         rule.NothingRule(),
		TagMDEntryPx:      rule.NothingRule(),
		TagMDEntrySize:    rule.NothingRule(),
	}
	codecs := map[string]FieldCodec{
		TagMDUpdateAction: codecChar,
		TagMDEntryType:    codecChar,
		TagSymbol:         codecString,
		TagMDEntryPx:      codecDecimal,
		TagMDEntrySize:    codecDecimal,
	}
	required := req(TagMDUpdateAction, TagMDEntryType, TagSymbol)
	return &Definition{
		codecs: codecs,
		schema: allVersions(fields, required, TagMDUpdateAction, nil),
	}
}

func marketDataRequestDefinition() *Definition {
	relatedSym := relatedSymEntryDefinition()
	entryTypes := mdEntryTypeEntryDefinition()

	fields := mergeFields(map[string]rule.Rule{
		TagMDReqID:                 rule.NothingRule(),
		TagSubscriptionRequestType: rule.NothingRule(),
		TagMarketDepth:             rule.NothingRule(),
		TagNoMDEntryTypes:          rule.BeginGroupRule(entryTypes.New()),
		TagNoRelatedSym:            rule.BeginGroupRule(relatedSym.New()),
	})
	codecs := mergeCodecs(map[string]FieldCodec{
		TagMDReqID:                 codecString,
		TagSubscriptionRequestType: codecChar,
		TagMarketDepth:             codecInt,
	})
	required := mergeRequired(TagMDReqID, TagSubscriptionRequestType, TagMarketDepth, TagNoMDEntryTypes, TagNoRelatedSym)
	return &Definition{
		msgType: MsgTypeMarketDataRequest,
		codecs:  codecs,
		schema:  allVersions(fields, required, TagMsgSeqNum, nil),
	}
}

func marketDataSnapshotFullRefreshDefinition() *Definition {
	entries := mdFullEntryDefinition()
	fields := mergeFields(map[string]rule.Rule{
		TagMDReqID:     rule.NothingRule(),
		TagSymbol:      rule.NothingRule(),
		TagNoMDEntries: rule.BeginGroupRule(entries.New()),
	})
	codecs := mergeCodecs(map[string]FieldCodec{
		TagMDReqID: codecString,
		TagSymbol:  codecString,
	})
	required := mergeRequired(TagSymbol, TagNoMDEntries)
	return &Definition{
		msgType: MsgTypeMarketDataSnapshotFullRefresh,
		codecs:  codecs,
		schema:  allVersions(fields, required, TagMsgSeqNum, nil),
	}
}

func marketDataIncrementalRefreshDefinition() *Definition {
	entries := mdIncrementalEntryDefinition()
	fields := mergeFields(map[string]rule.Rule{
		TagNoMDEntries: rule.BeginGroupRule(entries.New()),
	})
	required := mergeRequired(TagNoMDEntries)
	return &Definition{
		msgType: MsgTypeMarketDataIncrementalRefresh,
		codecs:  mergeCodecs(nil),
		schema:  allVersions(fields, required, TagMsgSeqNum, nil),
	}
}

func marketDataRequestRejectDefinition() *Definition {
	fields := mergeFields(map[string]rule.Rule{
		TagMDReqID:        rule.NothingRule(),
		TagMDReqRejReason: rule.NothingRule(),
		TagText:           rule.NothingRule(),
	})
	codecs := mergeCodecs(map[string]FieldCodec{
		TagMDReqID:        codecString,
		TagMDReqRejReason: codecChar,
		TagText:           codecString,
	})
	required := mergeRequired(TagMDReqID)
	return &Definition{
		msgType: MsgTypeMarketDataRequestReject,
		codecs:  codecs,
		schema:  allVersions(fields, required, TagMsgSeqNum, nil),
	}
}

func quoteRequestDefinition() *Definition {
	fields := mergeFields(map[string]rule.Rule{
		TagQuoteReqID:   rule.NothingRule(),
		TagSymbol:       rule.NothingRule(),
		TagOrderQty:     rule.NothingRule(),
		TagSide:         rule.NothingRule(),
		TagTransactTime: rule.NothingRule(),
	})
	codecs := mergeCodecs(map[string]FieldCodec{
		TagQuoteReqID:   codecString,
		TagSymbol:       codecString,
		TagOrderQty:     codecDecimal,
		TagSide:         codecChar,
		TagTransactTime: codecString,
	})
	required := mergeRequired(TagQuoteReqID, TagSymbol)
	return &Definition{
		msgType: MsgTypeQuoteRequest,
		codecs:  codecs,
		schema:  allVersions(fields, required, TagMsgSeqNum, nil),
	}
}

func quoteDefinition() *Definition {
	fields := mergeFields(map[string]rule.Rule{
		TagQuoteID:        rule.NothingRule(),
		TagQuoteReqID:     rule.NothingRule(),
		TagSymbol:         rule.NothingRule(),
		TagBidPx:          rule.NothingRule(),
		TagOfferPx:        rule.NothingRule(),
		TagBidSize:        rule.NothingRule(),
		TagOfferSize:      rule.NothingRule(),
		TagValidUntilTime: rule.NothingRule(),
	})
	codecs := mergeCodecs(map[string]FieldCodec{
		TagQuoteID:        codecString,
		TagQuoteReqID:     codecString,
		TagSymbol:         codecString,
		TagBidPx:          codecDecimal,
		TagOfferPx:        codecDecimal,
		TagBidSize:        codecDecimal,
		TagOfferSize:      codecDecimal,
		TagValidUntilTime: codecString,
	})
	required := mergeRequired(TagQuoteID, TagSymbol)
	return &Definition{
		msgType: MsgTypeQuote,
		codecs:  codecs,
		schema:  allVersions(fields, required, TagMsgSeqNum, nil),
	}
}
