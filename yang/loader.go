package yang

import (
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/coreyang/yangcore/internal/telemetry"
)

// Loader resolves a module name (and optional revision constraint) to its
// source text and the revision it actually resolved to. Name is the bare
// module name, never prefix-qualified; Revision may be "" to mean
// "latest available".
type Loader interface {
	Load(name, revision string) (src string, resolvedRevision string, err error)
}

// FSLoader implements §6's filesystem search algorithm over an fs.FS: for
// a requested module name, it lists every configured directory (and each
// one's immediate subdirectories) for "<name>.yang" and
// "<name>@<revision>.yang" files (or the same names ending in ".yin"),
// accepts exact revisioned matches ("<name>@<revision>.yang")
// first, falls back to the lexicographically greatest "@YYYY-MM-DD" file
// when no revision was requested, and only accepts an unrevisioned
// "<name>.yang" file when no revisioned match exists at all.
type FSLoader struct {
	FS   fs.FS
	Dirs []string

	// SearchCWD adds "." to the search, alongside Dirs, unless Dirs
	// already names it. "." is searched non-recursively, unlike the other
	// entries of Dirs, whose immediate subdirectories are searched too.
	SearchCWD bool

	// Log receives a warn-level event whenever Load falls back to an
	// unrevisioned file because no revisioned candidate was found. Defaults
	// to telemetry.Logger.
	Log zerolog.Logger
}

// NewFSLoader builds a loader rooted at fsys, searching dirs in order plus
// the current working directory ("."), matching §6's default loader
// behavior. Use the SearchCWD field directly to disable the CWD search.
func NewFSLoader(fsys fs.FS, dirs ...string) *FSLoader {
	return &FSLoader{FS: fsys, Dirs: dirs, SearchCWD: true, Log: telemetry.Logger}
}

// searchDirs returns l.Dirs with "." appended when SearchCWD is set and
// Dirs doesn't already include it.
func (l *FSLoader) searchDirs() []string {
	if !l.SearchCWD {
		return l.Dirs
	}
	for _, d := range l.Dirs {
		if d == "." {
			return l.Dirs
		}
	}
	return append(append([]string{}, l.Dirs...), ".")
}

type candidate struct {
	path     string
	revision string
	hasRev   bool
}

func (l *FSLoader) Load(name, revision string) (string, string, error) {
	var revisioned []candidate
	var unrevisioned *candidate

	visit := func(dir string) {
		entries, err := fs.ReadDir(l.FS, dir)
		if err != nil {
			return
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			rev, hasRev, ok := matchModuleFile(e.Name(), name)
			if !ok {
				continue
			}
			full := dir + "/" + e.Name()
			if dir == "." {
				full = e.Name()
			}
			if hasRev {
				revisioned = append(revisioned, candidate{path: full, revision: rev, hasRev: true})
			} else if unrevisioned == nil {
				unrevisioned = &candidate{path: full}
			}
		}
	}

	for _, dir := range l.searchDirs() {
		visit(dir)
		// §6: explicit search paths are walked one level deep; the CWD
		// entry is never recursed.
		if dir == "." {
			continue
		}
		subEntries, err := fs.ReadDir(l.FS, dir)
		if err != nil {
			continue
		}
		for _, sub := range subEntries {
			if !sub.IsDir() {
				continue
			}
			visit(dir + "/" + sub.Name())
		}
	}

	var chosen *candidate
	if revision != "" {
		for i := range revisioned {
			if revisioned[i].revision == revision {
				chosen = &revisioned[i]
				break
			}
		}
	} else if len(revisioned) > 0 {
		sort.Slice(revisioned, func(i, j int) bool { return revisioned[i].revision > revisioned[j].revision })
		chosen = &revisioned[0]
	}
	if chosen == nil && revision == "" && unrevisioned != nil {
		chosen = unrevisioned
		l.Log.Warn().Str("module", name).Str("path", chosen.path).
			Msg("accepted unrevisioned fallback file, no revisioned candidate found")
	}
	if chosen == nil {
		return "", "", fmt.Errorf("yang: module %q revision %q not found in search path", name, revision)
	}

	f, err := l.FS.Open(chosen.path)
	if err != nil {
		return "", "", fmt.Errorf("yang: open %s: %w", chosen.path, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", "", fmt.Errorf("yang: read %s: %w", chosen.path, err)
	}
	return string(data), chosen.revision, nil
}

// matchModuleFile reports whether filename is a YANG or YIN source for
// module name, returning its revision suffix if it carries one.
func matchModuleFile(filename, name string) (revision string, hasRevision, ok bool) {
	base := filename
	var suffix string
	switch {
	case strings.HasSuffix(base, ".yang"):
		suffix = ".yang"
	case strings.HasSuffix(base, ".yin"):
		suffix = ".yin"
	default:
		return "", false, false
	}
	base = strings.TrimSuffix(base, suffix)

	if base == name {
		return "", false, true
	}
	prefix := name + "@"
	if strings.HasPrefix(base, prefix) {
		rev := base[len(prefix):]
		if len(rev) == 10 { // "YYYY-MM-DD"
			return rev, true, true
		}
	}
	return "", false, false
}
