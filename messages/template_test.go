package messages

import (
	"testing"

	"github.com/epic1st/fixengine/fixversion"
	"github.com/epic1st/fixengine/message"
)

func TestCatalog_EveryEntryResolvesItsOwnMsgType(t *testing.T) {
	catalog := Catalog()
	if len(catalog) == 0 {
		t.Fatal("Catalog() is empty")
	}
	for msgType, tmpl := range catalog {
		if tmpl.MsgType() != msgType {
			t.Errorf("catalog[%q].MsgType() = %q, want %q", msgType, tmpl.MsgType(), msgType)
		}
	}
}

func TestGenericTemplate_New_IsIndependentInstance(t *testing.T) {
	tmpl := Catalog()[MsgTypeLogon]
	a := tmpl.New()
	b := tmpl.New()
	if a == b {
		t.Fatal("New() returned the same instance twice")
	}

	if a.SetValue(TagHeartBtInt, []byte("30")) != message.SetValueOK {
		t.Fatal("SetValue() on a failed")
	}
	gt := b.(*GenericTemplate)
	if gt.Value(TagHeartBtInt) != nil {
		t.Error("setting a field on one instance leaked into a sibling New() instance")
	}
}

func TestGenericTemplate_SetValue_UnknownTagRejected(t *testing.T) {
	tmpl := Catalog()[MsgTypeLogon].New()
	if got := tmpl.SetValue("99999", []byte("x")); got != message.SetValueWrongFormat {
		t.Errorf("SetValue() for an unknown tag = %v, want SetValueWrongFormat", got)
	}
}

func TestGenericTemplate_SetValue_WrongFormatRejected(t *testing.T) {
	tmpl := Catalog()[MsgTypeLogon].New()
	if got := tmpl.SetValue(TagHeartBtInt, []byte("not-an-int")); got != message.SetValueWrongFormat {
		t.Errorf("SetValue() with malformed int bytes = %v, want SetValueWrongFormat", got)
	}
}

func TestGenericTemplate_RequiredFields_LogonIncludesHeartBtInt(t *testing.T) {
	tmpl := Catalog()[MsgTypeLogon]
	required := tmpl.RequiredFields(fixversion.FIX42Version)
	if _, ok := required[TagHeartBtInt]; !ok {
		t.Errorf("RequiredFields(FIX.4.2) for Logon = %v, want it to include %q", required, TagHeartBtInt)
	}
}

func TestGenericTemplate_ReadBody_RoundTripsScalarFields(t *testing.T) {
	tmpl := Catalog()[MsgTypeLogon].New()
	tmpl.SetValue(TagEncryptMethod, []byte("0"))
	tmpl.SetValue(TagHeartBtInt, []byte("30"))

	body := tmpl.ReadBody(nil)
	got := string(body)
	if got != "98=0\x01108=30\x01" {
		t.Errorf("ReadBody() = %q, want %q", got, "98=0\x01108=30\x01")
	}
}

func TestGenericTemplate_EntriesOnUnsetGroupReturnsNil(t *testing.T) {
	tmpl := Catalog()[MsgTypeMarketDataSnapshotFullRefresh].New()
	gt := tmpl.(*GenericTemplate)
	if entries := gt.Entries(TagNoMDEntries); entries != nil {
		t.Errorf("Entries() on an unset group = %v, want nil", entries)
	}
}
