package messages

import "github.com/epic1st/fixengine/message"

// Catalog returns the full MsgType -> template mapping this engine
// understands, ready to hand to dictionary.New.
func Catalog() map[string]message.Template {
	defs := []*Definition{
		logonDefinition(),
		logoutDefinition(),
		heartbeatDefinition(),
		testRequestDefinition(),
		resendRequestDefinition(),
		sequenceResetDefinition(),
		rejectDefinition(),
		businessMessageRejectDefinition(),

		newOrderSingleDefinition(),
		executionReportDefinition(),
		orderCancelRequestDefinition(),
		orderCancelReplaceRequestDefinition(),
		orderCancelRejectDefinition(),

		marketDataRequestDefinition(),
		marketDataSnapshotFullRefreshDefinition(),
		marketDataIncrementalRefreshDefinition(),
		marketDataRequestRejectDefinition(),
		quoteRequestDefinition(),
		quoteDefinition(),
	}

	out := make(map[string]message.Template, len(defs))
	for _, d := range defs {
		out[d.msgType] = d.New()
	}
	return out
}
