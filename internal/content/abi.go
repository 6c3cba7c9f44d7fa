// Package content holds the structural validators for contract interface
// files, contract source text and contact emails.
package content

import (
	"bytes"
	"errors"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/finding"
	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/safety"
)

// recognized ABI element types and whether they carry inputs/outputs.
var abiElementTypes = map[string]struct{ inputs, outputs bool }{
	"function":    {true, true},
	"event":       {true, false},
	"constructor": {true, false},
	"error":       {true, false},
	"fallback":    {false, false},
	"receive":     {false, false},
}

// ValidateABI checks that path parses as a list of well-formed interface
// elements and that the document loads with the canonical go-ethereum ABI
// decoder. Structural violations name the offending element index.
func ValidateABI(path, subject string, maxBytes int64) []finding.Finding {
	elements, raw, err := safety.LoadArray(path, maxBytes)
	if err != nil {
		return []finding.Finding{loadFinding(err, subject, path)}
	}
	if len(elements) == 0 {
		return []finding.Finding{finding.Errorf(finding.KindInvalidABI, subject, "ABI %s is empty", path)}
	}

	var out []finding.Finding
	for i, el := range elements {
		obj, ok := el.(map[string]interface{})
		if !ok {
			out = append(out, finding.Errorf(finding.KindInvalidABI, subject,
				"ABI element %d is not an object", i))
			continue
		}
		typ, _ := obj["type"].(string)
		shape, known := abiElementTypes[typ]
		if !known {
			out = append(out, finding.Errorf(finding.KindInvalidABI, subject,
				"ABI element %d has unrecognized type %q", i, typ))
			continue
		}
		if shape.inputs {
			out = append(out, checkParams(obj, "inputs", i, subject)...)
		}
		if shape.outputs {
			out = append(out, checkParams(obj, "outputs", i, subject)...)
		}
		if typ == "function" || typ == "event" {
			if name, _ := obj["name"].(string); name == "" {
				out = append(out, finding.Errorf(finding.KindInvalidABI, subject,
					"ABI element %d (%s) is missing a name", i, typ))
			}
		}
	}
	if len(out) > 0 {
		return out
	}

	// Structure looks sane; make sure the standard decoder agrees.
	if _, err := gethabi.JSON(bytes.NewReader(raw)); err != nil {
		out = append(out, finding.Errorf(finding.KindInvalidABI, subject,
			"ABI %s rejected by decoder: %v", path, err))
	}
	return out
}

func checkParams(obj map[string]interface{}, key string, idx int, subject string) []finding.Finding {
	val, present := obj[key]
	if !present {
		// inputs/outputs may be omitted entirely (e.g. fallback-like shapes).
		return nil
	}
	list, ok := val.([]interface{})
	if !ok {
		return []finding.Finding{finding.Errorf(finding.KindInvalidABI, subject,
			"ABI element %d: %s is not an array", idx, key)}
	}
	var out []finding.Finding
	for j, p := range list {
		param, ok := p.(map[string]interface{})
		if !ok {
			out = append(out, finding.Errorf(finding.KindInvalidABI, subject,
				"ABI element %d: %s[%d] is not an object", idx, key, j))
			continue
		}
		if typ, _ := param["type"].(string); typ == "" {
			out = append(out, finding.Errorf(finding.KindInvalidABI, subject,
				"ABI element %d: %s[%d] is missing a type", idx, key, j))
		}
		if _, hasName := param["name"]; !hasName {
			out = append(out, finding.Errorf(finding.KindInvalidABI, subject,
				"ABI element %d: %s[%d] is missing a name", idx, key, j))
		}
	}
	return out
}

func loadFinding(err error, subject, path string) finding.Finding {
	kind := classifyLoadError(err)
	return finding.Errorf(kind, subject, "load %s: %v", path, err)
}

func classifyLoadError(err error) finding.Kind {
	switch {
	case errors.Is(err, safety.ErrPayloadTooLarge):
		return finding.KindPayloadTooLarge
	case errors.Is(err, safety.ErrUnsafeKey):
		return finding.KindUnsafeKey
	case errors.Is(err, safety.ErrParse), errors.Is(err, safety.ErrNotArray),
		errors.Is(err, safety.ErrNotObject), errors.Is(err, safety.ErrTooDeep):
		return finding.KindParseError
	default:
		return finding.KindReadError
	}
}
