// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"relaybot/pkg/extension"
)

// fakeUnit exposes a fixed symbol table.
type fakeUnit struct {
	symbols map[string]any
}

func (u fakeUnit) Lookup(symbol string) (any, error) {
	sym, ok := u.symbols[symbol]
	if !ok {
		return nil, errors.New("symbol " + symbol + " not found")
	}
	return sym, nil
}

// fakeLoader serves canned units keyed by qualified name and records the
// order of load attempts. Names in failures return load errors.
type fakeLoader struct {
	units    map[string]fakeUnit
	failures map[string]error
	loaded   []string
}

func (l *fakeLoader) Load(name, _ string) (Unit, error) {
	l.loaded = append(l.loaded, name)
	if err, ok := l.failures[name]; ok {
		return nil, err
	}
	unit, ok := l.units[name]
	if !ok {
		return nil, errors.New("no such unit: " + name)
	}
	return unit, nil
}

// validUnit builds a fake unit exposing a Setup entry point and, when
// modes is non-zero, declared metadata.
func validUnit(modes extension.Mode) fakeUnit {
	symbols := map[string]any{
		extension.SetupSymbol: func(extension.Host) {},
	}
	if modes != 0 {
		symbols[extension.MetadataSymbol] = &extension.Metadata{LoadIfMode: modes}
	}
	return fakeUnit{symbols: symbols}
}

// writeCandidate creates an empty candidate file (and parent dirs) under
// root. The fake loader never reads file contents.
func writeCandidate(t *testing.T, root string, rel ...string) string {
	t.Helper()
	path := filepath.Join(append([]string{root}, rel...)...)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// quietLogger discards all output so tests stay silent.
func quietLogger() *log.Logger {
	return log.New(io.Discard)
}
