package parser

import (
	"bytes"
	"testing"

	"github.com/epic1st/fixengine/encoder"
)

// TestParse_RoundTripLogonSerializesBackToEquivalentBytes exercises the
// parse -> serialize -> parse loop the spec's round-trip invariant
// describes: a message encoder.Encode re-serializes must reparse into a
// message with the same MsgType and the same populated fields.
func TestParse_RoundTripLogonSerializesBackToEquivalentBytes(t *testing.T) {
	p := New(testDictionary())
	raw := logonBytes()

	if _, err := p.Parse(raw); err != nil {
		t.Fatalf("first Parse() error = %v", err)
	}
	if len(p.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(p.Messages))
	}
	first := p.Messages[0]

	encoded := encoder.Encode(first.Meta().BeginString, first)

	p2 := New(testDictionary())
	n, err := p2.Parse(encoded)
	if err != nil {
		t.Fatalf("re-Parse() error = %v", err)
	}
	if n != len(encoded) {
		t.Fatalf("re-Parse() consumed %d of %d encoded bytes", n, len(encoded))
	}
	if len(p2.Messages) != 1 {
		t.Fatalf("got %d re-parsed messages, want 1", len(p2.Messages))
	}
	second := p2.Messages[0]

	if second.MsgType() != first.MsgType() {
		t.Errorf("MsgType() after round trip = %q, want %q", second.MsgType(), first.MsgType())
	}
	if !bytes.Equal(second.ReadBody(nil), first.ReadBody(nil)) {
		t.Errorf("ReadBody() after round trip = %q, want %q", second.ReadBody(nil), first.ReadBody(nil))
	}
}
