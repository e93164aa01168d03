package dictionary

import (
	"testing"

	"github.com/epic1st/fixengine/fixversion"
	"github.com/epic1st/fixengine/message"
	"github.com/epic1st/fixengine/messages"
	"github.com/epic1st/fixengine/rule"
)

func TestNew_ValidatesRealCatalogWithoutPanicking(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("New() panicked on the real catalog: %v", r)
		}
	}()
	d := New(messages.Catalog())
	if _, ok := d.Lookup(messages.MsgTypeLogon); !ok {
		t.Error("Lookup(Logon) = false, want true")
	}
	if _, ok := d.Lookup("ZZZ"); ok {
		t.Error("Lookup(ZZZ) = true, want false for an unregistered MsgType")
	}
}

func TestIsTagKnown_TrueForAnyTemplateField(t *testing.T) {
	d := New(messages.Catalog())
	if !d.IsTagKnown(messages.TagHeartBtInt, fixversion.FIX42Version) {
		t.Error("IsTagKnown(HeartBtInt) = false, want true")
	}
	if d.IsTagKnown("999999", fixversion.FIX42Version) {
		t.Error("IsTagKnown(999999) = true, want false")
	}
}

// fakeTemplate is a minimal message.Template double used to exercise
// Validate's panic paths without touching the real catalog.
type fakeTemplate struct {
	msgType    string
	fields     map[string]rule.Rule
	required   map[string]struct{}
	firstField string
}

func (f *fakeTemplate) New() message.Template { return f }
func (f *fakeTemplate) MsgType() string        { return f.msgType }
func (f *fakeTemplate) Fields(fixversion.MessageVersion) map[string]rule.Rule {
	return f.fields
}
func (f *fakeTemplate) RequiredFields(fixversion.MessageVersion) map[string]struct{} {
	return f.required
}
func (f *fakeTemplate) FirstField(fixversion.MessageVersion) string { return f.firstField }
func (f *fakeTemplate) ConditionalRequiredFields(fixversion.MessageVersion) []string {
	return nil
}
func (f *fakeTemplate) SetValue(string, []byte) message.SetValueError {
	return message.SetValueOK
}
func (f *fakeTemplate) SetGroups(string, []message.Template) bool { return true }
func (f *fakeTemplate) Meta() message.Meta                         { return message.Meta{} }
func (f *fakeTemplate) SetMeta(message.Meta)                       {}
func (f *fakeTemplate) ReadBody(buf []byte) []byte                 { return buf }

func expectPanic(t *testing.T, templates map[string]message.Template) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected Validate to panic, it did not")
		}
	}()
	New(templates)
}

func TestValidate_PanicsOnMessageWithNoFields(t *testing.T) {
	expectPanic(t, map[string]message.Template{
		"X": &fakeTemplate{msgType: "X", fields: map[string]rule.Rule{}},
	})
}

func TestValidate_PanicsWhenFirstFieldNotInFields(t *testing.T) {
	expectPanic(t, map[string]message.Template{
		"X": &fakeTemplate{
			msgType:    "X",
			fields:     map[string]rule.Rule{"1": rule.NothingRule()},
			firstField: "2",
		},
	})
}

func TestValidate_PanicsWhenRequiredNotSubsetOfFields(t *testing.T) {
	expectPanic(t, map[string]message.Template{
		"X": &fakeTemplate{
			msgType:    "X",
			fields:     map[string]rule.Rule{"1": rule.NothingRule()},
			required:   map[string]struct{}{"2": {}},
			firstField: "1",
		},
	})
}

func TestValidate_PanicsOnNonBijectivePrepareForBytes(t *testing.T) {
	expectPanic(t, map[string]message.Template{
		"X": &fakeTemplate{
			msgType: "X",
			fields: map[string]rule.Rule{
				"95": rule.PrepareForBytesRule("96"),
				// 96 never confirms 95 back, breaking bijectivity.
			},
			firstField: "95",
		},
	})
}

func TestValidate_AcceptsBijectivePrepareForBytesPair(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Validate() panicked on a valid bijective pair: %v", r)
		}
	}()
	New(map[string]message.Template{
		"X": &fakeTemplate{
			msgType: "X",
			fields: map[string]rule.Rule{
				"95": rule.PrepareForBytesRule("96"),
				"96": rule.ConfirmPreviousTagRule("95"),
			},
			firstField: "95",
		},
	})
}
