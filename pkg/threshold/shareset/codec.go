// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-secretshare.
//
// go-secretshare is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package shareset

import (
	"bytes"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-secretshare/pkg/validation"
)

// Format is an envelope encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatPEM  Format = "pem"

	// PEMBlockType is the PEM type line of an encoded share
	PEMBlockType = "SECRET SHARE"
)

const (
	headerSetID     = "Set-Id"
	headerIndex     = "Index"
	headerThreshold = "Threshold"
	headerTotal     = "Total"
	headerModulus   = "Modulus"
	headerMetaPfx   = "Meta-"
)

// Formats lists the supported encodings
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatPEM}
}

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "pem":
		return FormatPEM, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// DetectFormat guesses the encoding of data from its first non-blank bytes.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(trimmed, []byte("-----BEGIN ")):
		return FormatPEM
	case bytes.HasPrefix(trimmed, []byte("{")), bytes.HasPrefix(trimmed, []byte("[")):
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Marshal encodes a single envelope.
func Marshal(env *Envelope, format Format) ([]byte, error) {
	return MarshalAll([]*Envelope{env}, format)
}

// MarshalAll encodes envelopes as a JSON array, a multi-document YAML
// stream, or concatenated PEM blocks. A single envelope is encoded as a
// JSON object rather than an array.
func MarshalAll(envelopes []*Envelope, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		var v interface{} = envelopes
		if len(envelopes) == 1 {
			v = envelopes[0]
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil

	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		for _, env := range envelopes {
			if err := enc.Encode(env); err != nil {
				return nil, fmt.Errorf("failed to encode envelope %d: %w", env.Index, err)
			}
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case FormatPEM:
		var buf bytes.Buffer
		for _, env := range envelopes {
			block, err := toPEMBlock(env)
			if err != nil {
				return nil, err
			}
			if err := pem.Encode(&buf, block); err != nil {
				return nil, err
			}
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Unmarshal decodes exactly one envelope.
func Unmarshal(data []byte, format Format) (*Envelope, error) {
	envelopes, err := UnmarshalAll(data, format)
	if err != nil {
		return nil, err
	}
	if len(envelopes) != 1 {
		return nil, fmt.Errorf("%w: expected 1 envelope, found %d", ErrInvalidEnvelope, len(envelopes))
	}
	return envelopes[0], nil
}

// UnmarshalAll decodes every envelope in data. Envelopes are returned
// as-is; use Collect to validate them as a set.
func UnmarshalAll(data []byte, format Format) ([]*Envelope, error) {
	switch format {
	case FormatJSON:
		trimmed := bytes.TrimSpace(data)
		if bytes.HasPrefix(trimmed, []byte("[")) {
			var envelopes []*Envelope
			if err := json.Unmarshal(trimmed, &envelopes); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
			}
			return envelopes, nil
		}
		env := &Envelope{}
		if err := json.Unmarshal(trimmed, env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
		}
		return []*Envelope{env}, nil

	case FormatYAML:
		var envelopes []*Envelope
		dec := yaml.NewDecoder(bytes.NewReader(data))
		for {
			env := &Envelope{}
			err := dec.Decode(env)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
			}
			envelopes = append(envelopes, env)
		}
		return envelopes, nil

	case FormatPEM:
		var envelopes []*Envelope
		rest := data
		for {
			var block *pem.Block
			block, rest = pem.Decode(rest)
			if block == nil {
				break
			}
			if block.Type != PEMBlockType {
				continue
			}
			env, err := fromPEMBlock(block)
			if err != nil {
				return nil, err
			}
			envelopes = append(envelopes, env)
		}
		if len(envelopes) == 0 {
			return nil, fmt.Errorf("%w: no %s blocks", ErrInvalidEnvelope, PEMBlockType)
		}
		return envelopes, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func toPEMBlock(env *Envelope) (*pem.Block, error) {
	value, ok := new(big.Int).SetString(env.Value, 10)
	if !ok || value.Sign() < 0 {
		return nil, fmt.Errorf("%w: value at index %d is not a non-negative decimal integer", ErrInvalidEnvelope, env.Index)
	}
	if err := validation.ValidateMetadata(env.Metadata); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}
	headers := map[string]string{
		headerSetID:     env.SetID,
		headerIndex:     strconv.Itoa(env.Index),
		headerThreshold: strconv.Itoa(env.Threshold),
		headerTotal:     strconv.Itoa(env.Total),
		headerModulus:   env.Modulus,
	}
	for k, v := range env.Metadata {
		// pem.Decode trims header values
		if strings.TrimSpace(v) != v {
			return nil, fmt.Errorf("%w: metadata %q has leading or trailing whitespace", ErrInvalidEnvelope, k)
		}
		headers[headerMetaPfx+k] = v
	}
	return &pem.Block{Type: PEMBlockType, Headers: headers, Bytes: value.Bytes()}, nil
}

func fromPEMBlock(block *pem.Block) (*Envelope, error) {
	atoi := func(key string) (int, error) {
		n, err := strconv.Atoi(block.Headers[key])
		if err != nil {
			return 0, fmt.Errorf("%w: header %s: %v", ErrInvalidEnvelope, key, err)
		}
		return n, nil
	}

	env := &Envelope{
		SetID:   block.Headers[headerSetID],
		Modulus: block.Headers[headerModulus],
		Value:   new(big.Int).SetBytes(block.Bytes).String(),
	}
	var err error
	if env.Index, err = atoi(headerIndex); err != nil {
		return nil, err
	}
	if env.Threshold, err = atoi(headerThreshold); err != nil {
		return nil, err
	}
	if env.Total, err = atoi(headerTotal); err != nil {
		return nil, err
	}

	for k, v := range block.Headers {
		if !strings.HasPrefix(k, headerMetaPfx) {
			continue
		}
		if env.Metadata == nil {
			env.Metadata = make(map[string]string)
		}
		env.Metadata[strings.TrimPrefix(k, headerMetaPfx)] = v
	}
	return env, nil
}
