// Package safety holds the defensive primitives every other validator builds
// on: path resolution that cannot escape the registry root, and JSON loading
// that is bounded in size and rejects prototype-style keys.
//
// Path validation here is lexical only. Callers perform the actual I/O with
// the returned path.
package safety

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathTraversal is returned for any untrusted segment that could move the
// resolved path outside its root.
var ErrPathTraversal = errors.New("path traversal detected")

// ResolveUnder joins untrusted segments onto root and returns an absolute
// path guaranteed to be a strict descendant of root. Each segment must be a
// single path element: separators, parent references, null bytes and volume
// names are all rejected.
func ResolveUnder(root string, segments ...string) (string, error) {
	if len(segments) == 0 {
		return "", fmt.Errorf("%w: no path segments supplied", ErrPathTraversal)
	}
	for _, seg := range segments {
		if err := checkSegment(seg); err != nil {
			return "", err
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %q: %w", root, err)
	}

	joined := filepath.Join(append([]string{absRoot}, segments...)...)
	resolved, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", joined, err)
	}

	// Join cleans the path; re-check containment after normalization.
	if resolved == absRoot || !strings.HasPrefix(resolved, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q escapes root %q", ErrPathTraversal, strings.Join(segments, "/"), root)
	}
	return resolved, nil
}

func checkSegment(seg string) error {
	if seg == "" {
		return fmt.Errorf("%w: empty path segment", ErrPathTraversal)
	}
	if strings.IndexByte(seg, 0) >= 0 {
		return fmt.Errorf("%w: null byte in segment", ErrPathTraversal)
	}
	if strings.ContainsAny(seg, `/\`) {
		return fmt.Errorf("%w: separator in segment %q", ErrPathTraversal, seg)
	}
	if seg == "." || seg == ".." {
		return fmt.Errorf("%w: relative reference %q", ErrPathTraversal, seg)
	}
	if filepath.VolumeName(seg) != "" {
		return fmt.Errorf("%w: volume name in segment %q", ErrPathTraversal, seg)
	}
	return nil
}
