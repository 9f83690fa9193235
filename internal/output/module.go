package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/technical-communicator/central-florida-events/internal/event"
)

const moduleConst = "SCRAPED_EVENTS"

// keyPattern matches a JSON object key. In marshaled JSON an unescaped
// quote occurs only at string boundaries, and a closing value quote is
// never followed by a colon, so this cannot match inside a value.
var keyPattern = regexp.MustCompile(`"(\w+)":`)

// bareKeyPattern matches a bare object key at the start of a line in the
// module form. Values never span lines (newlines are escaped), so a line
// can only start with a key, a brace, or a bracket.
var bareKeyPattern = regexp.MustCompile(`(?m)^(\s*)(\w+):`)

// WriteModule serializes events as a JavaScript source module declaring
// a SCRAPED_EVENTS constant. Object keys are bare identifiers; strings
// carry JSON escaping (backslash, quote, newline), so the literal is
// both valid JavaScript and mechanically recoverable by ParseModule.
func WriteModule(w io.Writer, events []event.Event, generatedAt string) error {
	if events == nil {
		events = []event.Event{}
	}

	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling events: %w", err)
	}
	data = keyPattern.ReplaceAll(data, []byte("$1:"))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Central Florida events\n")
	fmt.Fprintf(&buf, "// Generated: %s\n", generatedAt)
	fmt.Fprintf(&buf, "// Events: %d\n\n", len(events))
	fmt.Fprintf(&buf, "const %s = ", moduleConst)
	buf.Write(data)
	fmt.Fprintf(&buf, ";\n\nexport default %s;\n", moduleConst)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing module: %w", err)
	}
	return nil
}

// ParseModule recovers the event slice from a module written by
// WriteModule.
func ParseModule(r io.Reader) ([]event.Event, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading module: %w", err)
	}

	marker := []byte("const " + moduleConst + " = ")
	start := bytes.Index(src, marker)
	if start < 0 {
		return nil, errors.New("parsing module: missing " + moduleConst + " declaration")
	}
	body := src[start+len(marker):]

	end := bytes.LastIndexByte(body, ']')
	if end < 0 {
		return nil, errors.New("parsing module: unterminated event array")
	}
	body = body[:end+1]

	body = bareKeyPattern.ReplaceAll(body, []byte(`$1"$2":`))

	var events []event.Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("parsing module events: %w", err)
	}
	return events, nil
}
