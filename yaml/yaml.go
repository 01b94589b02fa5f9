// Package yaml renders and parses corpus record front matter using
// gopkg.in/yaml.v3.
//
// A record is a front matter block between "---" lines, a blank line, the
// Markdown content and a trailing newline.
package yaml

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/fwojciec/relic"
	"gopkg.in/yaml.v3"
)

const (
	delimiter = "---\n"
	indent    = 4

	// DateLayout is the ISO-8601 UTC form dates are written in.
	DateLayout = "2006-01-02T15:04:05.000Z"
)

// FormatPost renders a complete corpus record.
func FormatPost(fm relic.FrontMatter, content string) (string, error) {
	block, err := Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(delimiter)
	b.Write(block)
	b.WriteString(delimiter)
	b.WriteString("\n")
	b.WriteString(content)
	b.WriteString("\n")
	return b.String(), nil
}

// Marshal renders front matter as a YAML mapping in field order.
func Marshal(fm relic.FrontMatter) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range fm {
		value, err := valueNode(f.Value)
		if err != nil {
			return nil, relic.Errorf(relic.EINVALID, "front matter field %q: %v", f.Key, err)
		}
		root.Content = append(root.Content, scalar("!!str", f.Key), value)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(root); err != nil {
		return nil, relic.Errorf(relic.EINVALID, "failed to encode front matter: %v", err)
	}
	if err := enc.Close(); err != nil {
		return nil, relic.Errorf(relic.EINVALID, "failed to encode front matter: %v", err)
	}
	return buf.Bytes(), nil
}

func valueNode(v any) (*yaml.Node, error) {
	switch v := v.(type) {
	case string:
		return stringScalar(v), nil
	case int:
		return scalar("!!int", strconv.Itoa(v)), nil
	case int64:
		return scalar("!!int", strconv.FormatInt(v, 10)), nil
	case time.Time:
		// Quoted, so readers see the same string the corpus always had.
		n := scalar("!!str", v.UTC().Format(DateLayout))
		n.Style = yaml.SingleQuotedStyle
		return n, nil
	case []string:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, s := range v {
			seq.Content = append(seq.Content, stringScalar(s))
		}
		if len(v) == 0 {
			seq.Style = yaml.FlowStyle
		}
		return seq, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		return n, nil
	}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// stringScalar renders empty strings as '' to match existing records.
func stringScalar(value string) *yaml.Node {
	n := scalar("!!str", value)
	if value == "" {
		n.Style = yaml.SingleQuotedStyle
	}
	return n
}

// Split separates a record into its front matter block and its content.
func Split(data []byte) (block, content []byte, err error) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(data, []byte(delimiter)) {
		return nil, nil, relic.Errorf(relic.EINVALID, "record does not start with front matter")
	}
	rest := data[len(delimiter):]

	end := bytes.Index(rest, []byte("\n"+delimiter))
	switch {
	case bytes.HasPrefix(rest, []byte(delimiter)):
		return nil, bytes.TrimPrefix(rest[len(delimiter):], []byte("\n")), nil
	case end < 0:
		return nil, nil, relic.Errorf(relic.EINVALID, "unterminated front matter")
	}

	block = rest[:end+1]
	content = rest[end+1+len(delimiter):]
	content = bytes.TrimPrefix(content, []byte("\n"))
	content = bytes.TrimSuffix(content, []byte("\n"))
	return block, content, nil
}

// Unmarshal parses a front matter block, preserving key order. Scalars
// decode to their YAML types, sequences to []any.
func Unmarshal(block []byte) (relic.FrontMatter, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(block, &doc); err != nil {
		return nil, relic.Errorf(relic.EINVALID, "failed to parse front matter: %v", err)
	}
	if len(doc.Content) == 0 {
		return relic.FrontMatter{}, nil
	}

	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, relic.Errorf(relic.EINVALID, "front matter is not a mapping")
	}

	fm := make(relic.FrontMatter, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		var v any
		if err := m.Content[i+1].Decode(&v); err != nil {
			return nil, relic.Errorf(relic.EINVALID, "front matter field %q: %v", m.Content[i].Value, err)
		}
		fm = append(fm, relic.Field{Key: m.Content[i].Value, Value: v})
	}
	return fm, nil
}

// ParseDate returns the creation date recorded in a corpus record. Dates
// written by older tooling may be quoted or plain, with or without zone.
func ParseDate(data []byte) (time.Time, error) {
	block, _, err := Split(data)
	if err != nil {
		return time.Time{}, err
	}

	var fm struct {
		Date string `yaml:"date"`
	}
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return time.Time{}, relic.Errorf(relic.EINVALID, "failed to parse front matter: %v", err)
	}
	if fm.Date == "" {
		return time.Time{}, relic.Errorf(relic.EINVALID, "record has no date")
	}

	t, err := dateparse.ParseIn(fm.Date, time.UTC)
	if err != nil {
		return time.Time{}, relic.Errorf(relic.EINVALID, "invalid date %q: %v", fm.Date, err)
	}
	return t.UTC(), nil
}
