package parser

import (
	"strconv"

	"github.com/epic1st/fixengine/dictionary"
	"github.com/epic1st/fixengine/messages"
)

// testDictionary builds a fresh Dictionary over the full message catalog,
// matching what cmd/fixgateway wires at startup.
func testDictionary() *dictionary.Dictionary {
	return dictionary.New(messages.Catalog())
}

// buildMessage assembles a well-formed FIX wire message from an ordered
// list of body tag=value pairs (everything after MsgType, before the
// checksum), computing BodyLength and the trailing checksum itself.
func buildMessage(beginString, msgType string, body [][2]string) []byte {
	var payload []byte
	payload = appendField(payload, "35", msgType)
	for _, f := range body {
		payload = appendField(payload, f[0], f[1])
	}

	var out []byte
	out = appendField(out, "8", beginString)
	out = appendField(out, "9", strconv.Itoa(len(payload)))
	out = append(out, payload...)

	sum := 0
	for _, b := range out {
		sum += int(b)
	}
	out = appendField(out, "10", pad3(sum%256))
	return out
}

func appendField(buf []byte, tag, value string) []byte {
	buf = append(buf, tag...)
	buf = append(buf, '=')
	buf = append(buf, value...)
	buf = append(buf, 0x01)
	return buf
}

func pad3(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
