package encoder_test

import (
	"strings"
	"testing"

	"github.com/epic1st/fixengine/dictionary"
	"github.com/epic1st/fixengine/encoder"
	"github.com/epic1st/fixengine/fixversion"
	"github.com/epic1st/fixengine/messages"
	"github.com/epic1st/fixengine/parser"
)

func TestEncode_FramesHeaderAndChecksum(t *testing.T) {
	tmpl := messages.Catalog()[messages.MsgTypeLogon].New()
	tmpl.SetValue("34", []byte("1"))
	tmpl.SetValue("98", []byte("0"))
	tmpl.SetValue("108", []byte("30"))

	out := encoder.Encode(fixversion.FIX42, tmpl)
	s := string(out)

	if !strings.HasPrefix(s, "8=FIX.4.2\x01") {
		t.Fatalf("Encode() did not start with BeginString, got %q", s)
	}
	if !strings.Contains(s, "\x0135=A\x01") {
		t.Errorf("Encode() is missing MsgType, got %q", s)
	}
	if !strings.HasSuffix(s, "\x01") || !strings.Contains(s, "10=") {
		t.Errorf("Encode() is missing a trailing CheckSum, got %q", s)
	}
}

func TestEncode_OutputReparsesToAnEquivalentMessage(t *testing.T) {
	tmpl := messages.Catalog()[messages.MsgTypeLogon].New()
	tmpl.SetValue("34", []byte("1"))
	tmpl.SetValue("98", []byte("0"))
	tmpl.SetValue("108", []byte("30"))

	out := encoder.Encode(fixversion.FIX42, tmpl)

	p := parser.New(dictionary.New(messages.Catalog()))
	n, err := p.Parse(out)
	if err != nil {
		t.Fatalf("Parse(Encode(...)) error = %v", err)
	}
	if n != len(out) {
		t.Fatalf("Parse(Encode(...)) consumed %d of %d bytes", n, len(out))
	}
	if len(p.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(p.Messages))
	}
	if got := p.Messages[0].MsgType(); got != messages.MsgTypeLogon {
		t.Errorf("MsgType() = %q, want %q", got, messages.MsgTypeLogon)
	}
}
