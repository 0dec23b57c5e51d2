// Package collector decodes upstream facility snapshots. Sub packages fetch them over
// http or from local files
package collector

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"facilities/internal/core/facility"
	perr "facilities/internal/platform/errors"
)

// Envelope is the wrapped snapshot form; a bare array is accepted as well.
// Facilities is a pointer so a missing or null list can be told apart from an empty one
type Envelope struct {
	Facilities *[]facility.Payload `json:"facilities" yaml:"facilities"`
}

// list rejects an envelope without a facilities list; it must not read as an empty snapshot
func (e Envelope) list() ([]facility.Payload, error) {
	if e.Facilities == nil {
		return nil, perr.New(perr.ErrorCodeJSON, "snapshot has no facilities list")
	}
	return *e.Facilities, nil
}

// DecodeJSON reads a snapshot as either `[...]` or `{"facilities":[...]}`.
// Any other shape, null included, is an error
func DecodeJSON(r io.Reader) ([]facility.Payload, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "read snapshot")
	}
	dec := json.NewDecoder(br)
	switch first {
	case '[':
		var out []facility.Payload
		if err := dec.Decode(&out); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeJSON, "decode snapshot")
		}
		return out, nil
	case '{':
		var env Envelope
		if err := dec.Decode(&env); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeJSON, "decode snapshot")
		}
		return env.list()
	default:
		return nil, perr.Newf(perr.ErrorCodeJSON, "snapshot must be an array or an object, got %q", first)
	}
}

// DecodeYAML reads a snapshot written as YAML, with the same two shapes as DecodeJSON.
// An empty document is an error
func DecodeYAML(r io.Reader) ([]facility.Payload, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "read snapshot")
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "decode snapshot")
	}
	if len(node.Content) == 0 {
		return nil, perr.New(perr.ErrorCodeJSON, "snapshot document is empty")
	}
	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var out []facility.Payload
		if err := root.Decode(&out); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeJSON, "decode snapshot")
		}
		return out, nil
	case yaml.MappingNode:
		var env Envelope
		if err := root.Decode(&env); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeJSON, "decode snapshot")
		}
		return env.list()
	default:
		return nil, perr.New(perr.ErrorCodeJSON, "snapshot must be a sequence or a mapping")
	}
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		if !bytes.ContainsRune([]byte(" \t\r\n"), rune(b)) {
			return b, br.UnreadByte()
		}
	}
}
