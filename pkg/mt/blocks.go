package mt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirosfoundation/go-finmsg/pkg/model"
)

// ErrUnterminated reports a Block 4 body with no "-}" terminator line.
var ErrUnterminated = errors.New("unterminated block 4")

// Blocks maps a block identifier ("1" through "5") to its raw content,
// braces and identifier stripped.
type Blocks map[string]string

// Field is one tagged field of Block 4, e.g. {Tag: "32A", Value:
// "231024USD1000,50"}. Multi-line fields keep their interior newlines.
type Field struct {
	Tag   string
	Value string
}

// SplitBlocks tokenizes raw MT bytes into their top-level blocks.
// Brace matching is scoped to the block grammar: Block 4 runs to its
// "-}" terminator line, every other block to its closing brace with
// nested {tag:value} pairs honored. The first occurrence of a block
// identifier wins.
//
// A missing Block 4 terminator or a byte sequence outside block
// grammar wraps [model.ErrMalformed].
func SplitBlocks(data []byte) (Blocks, error) {
	s := string(data)
	blocks := make(Blocks)

	i := 0
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
			i++
			continue
		case '{':
		default:
			return nil, fmt.Errorf("%w: text outside block braces at offset %d", model.ErrMalformed, i)
		}

		colon := strings.IndexByte(s[i:], ':')
		if colon < 0 {
			return nil, fmt.Errorf("%w: block header missing colon", model.ErrMalformed)
		}
		id := s[i+1 : i+colon]
		if id == "" || !allDigits(id) {
			return nil, fmt.Errorf("%w: block identifier %q", model.ErrMalformed, id)
		}

		body := s[i+colon+1:]
		var (
			content  string
			consumed int
			err      error
		)
		if id == "4" {
			content, consumed, err = splitBlock4(body)
		} else {
			content, consumed, err = splitBraced(id, body)
		}
		if err != nil {
			return nil, err
		}
		if _, dup := blocks[id]; !dup {
			blocks[id] = content
		}
		i += colon + 1 + consumed
	}

	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: no blocks found", model.ErrMalformed)
	}
	return blocks, nil
}

// splitBlock4 runs to the "-}" terminator line. A trailing "-" at end
// of input is also accepted; file splitting tools commonly drop the
// closing brace.
func splitBlock4(body string) (string, int, error) {
	if end := strings.Index(body, "\n-}"); end >= 0 {
		return body[:end], end + 3, nil
	}
	trimmed := strings.TrimRight(body, " \t\r\n")
	if strings.HasSuffix(trimmed, "\n-") {
		return trimmed[:len(trimmed)-2], len(body), nil
	}
	return "", 0, fmt.Errorf("%w: %w", model.ErrMalformed, ErrUnterminated)
}

// splitBraced scans to the block's closing brace, honoring nested
// {tag:value} pairs such as Block 3 service tags.
func splitBraced(id, body string) (string, int, error) {
	depth := 1
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return body[:i], i + 1, nil
			}
		}
	}
	return "", 0, fmt.Errorf("%w: block %s not closed", model.ErrMalformed, id)
}

// Fields splits a Block 4 body into its tagged fields, preserving
// first-occurrence order. A line that does not open a new tag is
// folded into the preceding field as a continuation line.
func Fields(body string) []Field {
	var fields []Field
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if tag, value, ok := tagLine(line); ok {
			fields = append(fields, Field{Tag: tag, Value: value})
			continue
		}
		if line == "" || len(fields) == 0 {
			continue
		}
		last := &fields[len(fields)-1]
		last.Value += "\n" + line
	}
	return fields
}

// tagLine splits ":32A:231024USD1000,50" into tag and value. Tag
// codes are two digits plus an optional letter option.
func tagLine(line string) (tag, value string, ok bool) {
	if len(line) < 4 || line[0] != ':' {
		return "", "", false
	}
	rest := line[1:]
	end := strings.IndexByte(rest, ':')
	if end < 2 || end > 3 {
		return "", "", false
	}
	for i := 0; i < end; i++ {
		c := rest[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'Z') {
			return "", "", false
		}
	}
	return rest[:end], rest[end+1:], true
}

// serviceTags walks the {tag:value} pairs of a service block, such as
// {121:...} inside Block 3.
func serviceTags(body string) []Field {
	var fields []Field
	i := 0
	for i < len(body) {
		open := strings.IndexByte(body[i:], '{')
		if open < 0 {
			break
		}
		i += open + 1
		colon := strings.IndexByte(body[i:], ':')
		if colon < 0 {
			break
		}
		closing := strings.IndexByte(body[i+colon:], '}')
		if closing < 0 {
			break
		}
		fields = append(fields, Field{
			Tag:   body[i : i+colon],
			Value: body[i+colon+1 : i+colon+closing],
		})
		i += colon + closing + 1
	}
	return fields
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
