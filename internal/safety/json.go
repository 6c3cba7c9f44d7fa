package safety

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Sentinel errors for the bounded JSON loader.
var (
	ErrPayloadTooLarge = errors.New("payload exceeds size limit")
	ErrUnsafeKey       = errors.New("unsafe object key")
	ErrParse           = errors.New("invalid JSON")
	ErrRead            = errors.New("read failed")
	ErrNotObject       = errors.New("not a JSON object")
	ErrNotArray        = errors.New("not a JSON array")
	ErrTooDeep         = errors.New("nesting depth exceeded")
)

// MaxNestingDepth bounds recursion while scanning parsed documents.
const MaxNestingDepth = 32

// dangerousKeys are object keys that would shadow prototype/base-object
// properties in the ecosystems that consume these files.
var dangerousKeys = map[string]bool{
	"__proto__":   true,
	"constructor": true,
	"prototype":   true,
}

// LoadObject reads path and parses it as a single JSON object, enforcing a
// byte ceiling and rejecting dangerous keys at any depth. The raw bytes are
// returned alongside the parsed document so callers can decode into typed
// structs after the document has been vetted.
func LoadObject(path string, maxBytes int64) (map[string]interface{}, []byte, error) {
	raw, err := readBounded(path, maxBytes)
	if err != nil {
		return nil, nil, err
	}
	var doc map[string]interface{}
	if err := strictUnmarshal(raw, &doc); err != nil {
		if errors.Is(err, ErrParse) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %s", ErrNotObject, path)
	}
	if err := scanValue(doc, 0); err != nil {
		return nil, nil, err
	}
	return doc, raw, nil
}

// LoadArray is LoadObject for top-level JSON arrays (ABI files).
func LoadArray(path string, maxBytes int64) ([]interface{}, []byte, error) {
	raw, err := readBounded(path, maxBytes)
	if err != nil {
		return nil, nil, err
	}
	var doc []interface{}
	if err := strictUnmarshal(raw, &doc); err != nil {
		if errors.Is(err, ErrParse) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %s", ErrNotArray, path)
	}
	if err := scanValue(doc, 0); err != nil {
		return nil, nil, err
	}
	return doc, raw, nil
}

func readBounded(path string, maxBytes int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrPayloadTooLarge, path, info.Size(), maxBytes)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	// The file may have grown between stat and read.
	if maxBytes > 0 && int64(len(raw)) > maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrPayloadTooLarge, path, len(raw), maxBytes)
	}
	return raw, nil
}

// strictUnmarshal distinguishes malformed JSON from a shape mismatch: a
// syntactically broken document maps to ErrParse, a valid document of the
// wrong top-level type surfaces the json unmarshal type error.
func strictUnmarshal(raw []byte, v interface{}) error {
	if !json.Valid(raw) {
		return fmt.Errorf("%w", ErrParse)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

func scanValue(v interface{}, depth int) error {
	if depth > MaxNestingDepth {
		return fmt.Errorf("%w: deeper than %d", ErrTooDeep, MaxNestingDepth)
	}
	switch val := v.(type) {
	case map[string]interface{}:
		for k, inner := range val {
			if dangerousKeys[k] {
				return fmt.Errorf("%w: %q", ErrUnsafeKey, k)
			}
			if err := scanValue(inner, depth+1); err != nil {
				return err
			}
		}
	case []interface{}:
		for _, inner := range val {
			if err := scanValue(inner, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
