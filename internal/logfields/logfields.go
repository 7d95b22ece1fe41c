package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPassID     = "pass_id"
	KeyPath       = "path"
	KeyOtherPath  = "other_path"
	KeyURL        = "url"
	KeySegment    = "segment"
	KeyFile       = "file"
	KeyCount      = "count"
	KeyEntry      = "entry"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func PassID(id string) slog.Attr      { return slog.String(KeyPassID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func OtherPath(p string) slog.Attr    { return slog.String(KeyOtherPath, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Segment(s string) slog.Attr      { return slog.String(KeySegment, s) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Entry(e string) slog.Attr        { return slog.String(KeyEntry, e) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
