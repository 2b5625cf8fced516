package build

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"

	"git.home.luguber.info/inful/typstbuilder/internal/assemble"
	"git.home.luguber.info/inful/typstbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/typstbuilder/internal/logfields"
	"git.home.luguber.info/inful/typstbuilder/internal/metrics"
	"git.home.luguber.info/inful/typstbuilder/internal/observability"
)

// OutputResult reports one file the executor handled.
type OutputResult struct {
	// Path is relative to the output directory, slash separated.
	Path string
	Kind assemble.EffectKind
	// Changed is false when the file already had this content.
	Changed bool
	// Digest is the BLAKE3 digest of the content, hex encoded.
	Digest string
}

// Executor applies plan effects to an output directory.
type Executor struct {
	Dir string
	// DryRun computes the results without touching the directory.
	DryRun bool
	// Diff receives diffs of changed text files during a dry run.
	Diff io.Writer
	// Clean removes the directory before writing.
	Clean bool

	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// Apply runs effects in order and stops at the first failure.
func (e *Executor) Apply(ctx context.Context, effects []assemble.Effect) ([]OutputResult, error) {
	if e.Recorder == nil {
		e.Recorder = metrics.NoopRecorder{}
	}
	if e.Logger == nil {
		e.Logger = slog.Default()
	}
	if !e.DryRun {
		if e.Clean {
			if err := os.RemoveAll(e.Dir); err != nil {
				return nil, errors.WrapError(err, errors.CategoryFileSystem, "clean output directory").
					WithContext("path", e.Dir).Build()
			}
		}
		if err := os.MkdirAll(e.Dir, 0o750); err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "create output directory").
				WithContext("path", e.Dir).Build()
		}
	}

	var out []OutputResult
	for _, effect := range effects {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		results, err := e.apply(effect)
		out = append(out, results...)
		if err != nil {
			return out, errors.WrapError(err, errors.CategoryFileSystem, "apply output "+effect.Kind.String()).
				WithContext("path", effect.Path).Build()
		}
	}
	for _, r := range out {
		e.Recorder.IncOutputWrite(r.Changed)
	}
	observability.DebugContext(ctx, "Applied outputs",
		logfields.Count(len(out)), logfields.Path(e.Dir), slog.Bool("dry_run", e.DryRun))
	return out, nil
}

func (e *Executor) apply(effect assemble.Effect) ([]OutputResult, error) {
	switch effect.Kind {
	case assemble.WriteFile:
		r, err := e.write(effect.Kind, effect.Path, effect.Content)
		return []OutputResult{r}, err
	case assemble.CopyImage, assemble.AttachFile:
		content, err := os.ReadFile(effect.Source)
		if err != nil {
			return nil, err
		}
		r, err := e.write(effect.Kind, effect.Path, content)
		return []OutputResult{r}, err
	case assemble.CopyTemplate:
		return e.copyTree(effect)
	default:
		return nil, fmt.Errorf("unknown effect kind %d", effect.Kind)
	}
}

func (e *Executor) copyTree(effect assemble.Effect) ([]OutputResult, error) {
	var out []OutputResult
	err := fs.WalkDir(effect.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := fs.ReadFile(effect.FS, p)
		if err != nil {
			return err
		}
		r, err := e.write(effect.Kind, path.Join(effect.Path, p), content)
		out = append(out, r)
		return err
	})
	return out, err
}

// write stores content at rel unless the file already holds it.
func (e *Executor) write(kind assemble.EffectKind, rel string, content []byte) (OutputResult, error) {
	sum := blake3.Sum256(content)
	result := OutputResult{Path: rel, Kind: kind, Digest: hex.EncodeToString(sum[:])}
	dest := filepath.Join(e.Dir, filepath.FromSlash(rel))

	previous, err := os.ReadFile(dest)
	switch {
	case err == nil && blake3.Sum256(previous) == sum:
		return result, nil
	case err != nil && !os.IsNotExist(err):
		return result, err
	}
	result.Changed = true

	if e.DryRun {
		if e.Diff != nil && isText(rel) {
			_, err := io.WriteString(e.Diff, UnifiedDiff(rel, string(previous), string(content)))
			return result, err
		}
		return result, nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return result, err
	}
	// #nosec G306 -- outputs are meant to be readable by the Typst compiler and other users
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return result, err
	}
	e.Logger.Debug("Wrote output", logfields.Path(rel), slog.String("digest", result.Digest))
	return result, nil
}

var textExtensions = []string{".typ", ".json", ".yaml", ".yml", ".txt", ".md"}

func isText(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, t := range textExtensions {
		if ext == t {
			return true
		}
	}
	return false
}
