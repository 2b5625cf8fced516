package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyDocument   = "document"
	KeyTarget     = "target"
	KeyTemplate   = "template"
	KeyNodeKind   = "node_kind"
	KeyURI        = "uri"
	KeyPath       = "path"
	KeyCode       = "code"
	KeyCount      = "count"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Document(name string) slog.Attr   { return slog.String(KeyDocument, name) }
func Target(name string) slog.Attr     { return slog.String(KeyTarget, name) }
func Template(name string) slog.Attr   { return slog.String(KeyTemplate, name) }
func NodeKind(kind string) slog.Attr   { return slog.String(KeyNodeKind, kind) }
func URI(uri string) slog.Attr         { return slog.String(KeyURI, uri) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Code(c string) slog.Attr          { return slog.String(KeyCode, c) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
