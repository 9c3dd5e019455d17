// SPDX-License-Identifier: MPL-2.0

package discovery

import "relaybot/pkg/extension"

// setupFor confirms the unit exposes the required Setup entry point and
// returns it. ok is false when the symbol is absent or has the wrong
// type; such a unit is not an extension and is skipped, not failed.
//
// The symbol may be exported either as a plain function (looked up as
// func(extension.Host)) or as a SetupFunc variable (looked up as a
// pointer to it).
func setupFor(u Unit) (fn extension.SetupFunc, ok bool) {
	sym, err := u.Lookup(extension.SetupSymbol)
	if err != nil {
		return nil, false
	}

	switch s := sym.(type) {
	case func(extension.Host):
		return extension.SetupFunc(s), true
	case extension.SetupFunc:
		return s, true
	case *extension.SetupFunc:
		if s != nil && *s != nil {
			return *s, true
		}
	}
	return nil, false
}

// metadataFor extracts the unit's declared metadata. ok is false when no
// metadata symbol is exported or it has the wrong type; the caller
// substitutes the default.
//
// Variables are exposed by the plugin mechanism as pointers to their
// declared type, so a `var ExtMetadata = extension.Metadata{...}` arrives
// as *extension.Metadata.
func metadataFor(u Unit) (meta extension.Metadata, ok bool) {
	sym, err := u.Lookup(extension.MetadataSymbol)
	if err != nil {
		return extension.Metadata{}, false
	}

	switch m := sym.(type) {
	case *extension.Metadata:
		if m != nil {
			return *m, true
		}
	case extension.Metadata:
		return m, true
	}
	return extension.Metadata{}, false
}
