package rule

import (
	"testing"

	"github.com/epic1st/fixengine/fixversion"
)

func TestNothingRule(t *testing.T) {
	r := NothingRule()
	if r.Kind != Nothing {
		t.Errorf("Kind = %v, want Nothing", r.Kind)
	}
}

func TestBeginGroupRule_CarriesTemplate(t *testing.T) {
	tmpl := struct{ name string }{"group-template"}
	r := BeginGroupRule(tmpl)
	if r.Kind != BeginGroup {
		t.Errorf("Kind = %v, want BeginGroup", r.Kind)
	}
	if r.GroupTemplate != interface{}(tmpl) {
		t.Errorf("GroupTemplate = %v, want %v", r.GroupTemplate, tmpl)
	}
}

func TestPrepareForBytesRule_CarriesBytesTag(t *testing.T) {
	r := PrepareForBytesRule("96")
	if r.Kind != PrepareForBytes {
		t.Errorf("Kind = %v, want PrepareForBytes", r.Kind)
	}
	if r.BytesTag != "96" {
		t.Errorf("BytesTag = %q, want %q", r.BytesTag, "96")
	}
}

func TestConfirmPreviousTagRule_CarriesPreviousTag(t *testing.T) {
	r := ConfirmPreviousTagRule("95")
	if r.Kind != ConfirmPreviousTag {
		t.Errorf("Kind = %v, want ConfirmPreviousTag", r.Kind)
	}
	if r.PreviousTag != "95" {
		t.Errorf("PreviousTag = %q, want %q", r.PreviousTag, "95")
	}
}

func TestRequiresFIXVersionRule_CarriesMinVersion(t *testing.T) {
	r := RequiresFIXVersionRule(fixversion.FIX44Version)
	if r.Kind != RequiresFIXVersion {
		t.Errorf("Kind = %v, want RequiresFIXVersion", r.Kind)
	}
	if r.MinVersion != fixversion.FIX44Version {
		t.Errorf("MinVersion = %v, want %v", r.MinVersion, fixversion.FIX44Version)
	}
}
