// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"relaybot/pkg/extension"
)

// ErrBadRoot is the sentinel error wrapped by BadRootError.
var ErrBadRoot = errors.New("invalid plugins root")

type (
	// BadRootError is returned when the configured plugins root does not
	// exist, is unreadable, or is not a directory. It wraps ErrBadRoot
	// for errors.Is() compatibility.
	BadRootError struct {
		Root  string
		Cause error
	}

	// Options configures a Discovery.
	Options struct {
		// Root is the plugins root directory to scan.
		Root string
		// Qualifier is the dotted name of the root itself; it prefixes
		// every qualified name. Defaults to "plugins".
		Qualifier string
		// ActiveMode is the process-wide runtime mode, fixed for the run.
		ActiveMode extension.Mode
		// Loader loads candidates. Defaults to the plugin-backed loader.
		Loader Loader
		// Logger receives per-candidate diagnostics. Defaults to a
		// stderr logger with a "discovery" prefix.
		Logger *log.Logger
	}

	// Discovery scans the plugins root and yields activation decisions.
	// It holds no per-run state: every call to Results re-walks the tree.
	Discovery struct {
		resolver *Resolver
		mode     extension.Mode
		loader   Loader
		logger   *log.Logger
	}

	// Result is one discovered extension with its activation decision.
	// Results are transient: consumed by the caller, never cached here.
	Result struct {
		// Name is the dotted qualified name derived from the path.
		Name string
		// Path is the absolute candidate path the name was derived from.
		Path string
		// Eligible reports whether the active mode permits activation.
		Eligible bool
		// ModeNames lists the modes the extension declares itself
		// loadable under, for diagnostic reporting.
		ModeNames []string
		// Setup is the validated entry point. The caller invokes it to
		// activate the extension; discovery never calls it.
		Setup extension.SetupFunc
	}
)

// Error implements the error interface.
func (e *BadRootError) Error() string {
	return fmt.Sprintf("invalid plugins root %q: %v", e.Root, e.Cause)
}

// Unwrap supports errors.Is(err, ErrBadRoot) and unwrapping the cause.
func (e *BadRootError) Unwrap() []error {
	return []error{ErrBadRoot, e.Cause}
}

// New creates a Discovery from opts, applying defaults for Qualifier,
// Loader, and Logger.
func New(opts Options) (*Discovery, error) {
	if opts.Qualifier == "" {
		opts.Qualifier = "plugins"
	}
	if opts.Loader == nil {
		opts.Loader = NewPluginLoader()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "discovery"})
	}

	resolver, err := NewResolver(opts.Root, opts.Qualifier)
	if err != nil {
		return nil, err
	}

	return &Discovery{
		resolver: resolver,
		mode:     opts.ActiveMode,
		loader:   opts.Loader,
		logger:   opts.Logger,
	}, nil
}

// Results returns the lazy discovery sequence over every candidate under
// the root, in lexicographic path order. Root-level problems are
// returned here, before the first pull; every per-candidate failure is
// logged and absorbed so the scan always completes.
//
// The sequence is pull-based and restartable: each range over it
// re-walks the filesystem, and breaking out of the loop releases the
// traversal without leaking directory handles.
func (d *Discovery) Results() (iter.Seq[Result], error) {
	root := d.resolver.Root()
	info, err := os.Stat(root)
	if err != nil {
		return nil, &BadRootError{Root: root, Cause: err}
	}
	if !info.IsDir() {
		return nil, &BadRootError{Root: root, Cause: errors.New("not a directory")}
	}

	return func(yield func(Result) bool) {
		// WalkDir visits entries in lexical order, which gives the
		// deterministic traversal the caller relies on.
		_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				d.logger.Warn("skipping unreadable path", "path", path, "error", walkErr)
				return nil
			}
			if entry.IsDir() {
				// Prune private subtrees instead of testing every file
				// beneath them.
				if path != root && strings.HasPrefix(entry.Name(), privateMarker) {
					return fs.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(entry.Name(), Suffix) {
				return nil
			}

			name, ok := d.resolver.QualifiedName(path)
			if !ok {
				d.logger.Debug("not a candidate, skipping", "path", path)
				return nil
			}

			res, ok := d.resolve(name, path)
			if !ok {
				return nil
			}
			if !yield(res) {
				return fs.SkipAll
			}
			return nil
		})
	}, nil
}

// resolve loads, validates, and decides a single candidate. ok is false
// when the candidate is not an extension or failed to load; the failure
// never propagates past this boundary.
func (d *Discovery) resolve(name, path string) (Result, bool) {
	unit, err := d.loader.Load(name, path)
	if err != nil {
		d.logger.Error("failed to load extension; not considered installed",
			"name", name, "path", path, "error", err)
		return Result{}, false
	}

	setup, ok := setupFor(unit)
	if !ok {
		d.logger.Debug("no setup entry point, not an extension", "name", name)
		return Result{}, false
	}

	meta, ok := metadataFor(unit)
	if !ok {
		meta = extension.DefaultMetadata()
		d.logger.Info("extension declares no metadata, assuming production-only", "name", name)
	}

	dec := Decide(meta, d.mode)
	d.logger.Debug("activation decision",
		"name", name, "eligible", dec.Eligible, "modes", meta.LoadIfMode.String())

	return Result{
		Name:      name,
		Path:      path,
		Eligible:  dec.Eligible,
		ModeNames: dec.ModeNames,
		Setup:     setup,
	}, true
}
