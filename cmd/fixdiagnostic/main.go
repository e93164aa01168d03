// Command fixdiagnostic decodes a single FIX message from a file, from a
// literal argument, or from stdin, and prints every field the parser
// extracted from it — grounded on the teacher's verbose diagnostic tool
// style, without any of the LP-connection business logic.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/epic1st/fixengine/dictionary"
	"github.com/epic1st/fixengine/fixversion"
	"github.com/epic1st/fixengine/message"
	"github.com/epic1st/fixengine/messages"
	"github.com/epic1st/fixengine/parser"
)

func main() {
	file := flag.String("file", "", "path to a file containing one or more FIX messages")
	literal := flag.String("msg", "", "a literal FIX message, with '|' standing in for SOH (0x01)")
	flag.Parse()

	log.Println("=== FIX Diagnostic ===")

	raw, err := readInput(*file, *literal)
	if err != nil {
		log.Fatalf("failed to read input: %v", err)
	}

	dict := dictionary.New(messages.Catalog())
	p := parser.New(dict)
	p.SetDefaultMessageVersion(fixversion.DefaultApplVerID)

	consumed, parseErr := p.Parse(raw)
	log.Printf("consumed %d of %d bytes", consumed, len(raw))

	for i, m := range p.Messages {
		log.Printf("--- message %d: MsgType=%q ---", i+1, m.MsgType())
		printFields(m)
	}

	if parseErr != nil {
		pe, ok := parseErr.(*parser.ParseError)
		if ok {
			log.Fatalf("parse error: %s (tag=%s)", pe.Kind.String(), pe.Tag)
		}
		log.Fatalf("parse error: %v", parseErr)
	}

	if len(p.Messages) == 0 {
		log.Println("no complete message decoded (input may be truncated mid-message)")
	}
}

func printFields(m message.Template) {
	body := m.ReadBody(nil)
	for _, field := range strings.Split(string(body), "\x01") {
		if field == "" {
			continue
		}
		fmt.Printf("    %s\n", field)
	}
}

func readInput(file, literal string) ([]byte, error) {
	if literal != "" {
		return []byte(strings.ReplaceAll(literal, "|", "\x01")), nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		return normalizeDelimiters(data), nil
	}

	reader := bufio.NewReader(os.Stdin)
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return normalizeDelimiters(data), nil
}

// normalizeDelimiters lets diagnostic input use '|' in place of SOH, since
// SOH is awkward to type into a file or terminal.
func normalizeDelimiters(data []byte) []byte {
	if !strings.ContainsRune(string(data), '\x01') {
		return []byte(strings.ReplaceAll(strings.TrimSpace(string(data)), "|", "\x01"))
	}
	return data
}
