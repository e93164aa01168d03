// Package encoder serializes a populated message.Template back into FIX
// wire bytes: BeginString/BodyLength/MsgType framing around whatever
// ReadBody reports, closed with a freshly computed trailing CheckSum — the
// inverse of the parser's own positional-header and checksum handling.
package encoder

import (
	"fmt"
	"strconv"

	"github.com/epic1st/fixengine/fixversion"
	"github.com/epic1st/fixengine/message"
)

const soh = 0x01

// Encode serializes m into wire bytes under beginString. beginString is
// supplied by the caller (typically m.Meta().BeginString for a message that
// was itself parsed) rather than read off m, since a Template only carries
// its own body fields — the parser never stores BeginString, BodyLength, or
// MsgType as settable fields on the message it populates.
func Encode(beginString fixversion.BeginString, m message.Template) []byte {
	body := m.ReadBody(nil)

	header := make([]byte, 0, len(body)+16)
	header = append(header, "35="...)
	header = append(header, m.MsgType()...)
	header = append(header, soh)
	header = append(header, body...)

	buf := make([]byte, 0, len(header)+32)
	buf = append(buf, "8="...)
	buf = append(buf, beginString.String()...)
	buf = append(buf, soh)
	buf = append(buf, "9="...)
	buf = strconv.AppendInt(buf, int64(len(header)), 10)
	buf = append(buf, soh)
	buf = append(buf, header...)

	var sum byte
	for _, c := range buf {
		sum += c
	}
	buf = append(buf, fmt.Sprintf("10=%03d", sum)...)
	buf = append(buf, soh)

	return buf
}
