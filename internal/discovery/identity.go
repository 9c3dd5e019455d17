// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// Suffix is the filename suffix identifying extension candidates.
	Suffix = ".so"

	// nameSeparator joins qualified name segments.
	nameSeparator = "."

	// privateMarker prefixes names excluded from discovery. Any path
	// segment starting with it makes the whole candidate private.
	privateMarker = "_"
)

// Resolver derives canonical qualified names for extension candidates
// from their paths beneath a fixed root. Identity is a pure function of
// the path: the same path always resolves to the same name, and two
// distinct accepted paths never resolve to the same name.
type Resolver struct {
	root      string
	qualifier string
}

// NewResolver creates a Resolver rooted at root. qualifier is the
// qualified name of the root itself (e.g. "plugins") and prefixes every
// resolved name.
func NewResolver(root, qualifier string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve plugins root %q: %w", root, err)
	}
	if qualifier == "" {
		return nil, fmt.Errorf("empty root qualifier")
	}
	return &Resolver{root: abs, qualifier: qualifier}, nil
}

// Root returns the absolute plugins root.
func (r *Resolver) Root() string {
	return r.root
}

// QualifiedName maps a candidate path to its dotted qualified name.
// ok is false when the path is not a candidate: outside the root, wrong
// suffix, an empty or dotted segment, or any private-marked segment.
// A non-candidate is silently excluded, never an error.
func (r *Resolver) QualifiedName(path string) (name string, ok bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(r.root, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return "", false
	}

	base := filepath.Base(rel)
	// Split on the final suffix only. Substring stripping would
	// mis-normalize names like "a.so.bak" or "a.solo.so".
	if !strings.HasSuffix(base, Suffix) || len(base) == len(Suffix) {
		return "", false
	}
	rel = rel[:len(rel)-len(Suffix)]

	segments := strings.Split(filepath.ToSlash(rel), "/")
	for _, seg := range segments {
		if seg == "" || strings.HasPrefix(seg, privateMarker) {
			return "", false
		}
		// A dot inside a segment would collide with the separator and
		// break the distinct-path/distinct-name guarantee.
		if strings.Contains(seg, nameSeparator) {
			return "", false
		}
	}

	return r.qualifier + nameSeparator + strings.Join(segments, nameSeparator), true
}
