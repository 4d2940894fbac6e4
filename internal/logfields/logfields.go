package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyRoute      = "route"
	KeyOutputKey  = "output_key"
	KeyGenerator  = "generator"
	KeyProcessor  = "processor"
	KeyOutputPath = "output_path"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Route(path string) slog.Attr      { return slog.String(KeyRoute, path) }
func OutputKey(key string) slog.Attr   { return slog.String(KeyOutputKey, key) }
func Generator(name string) slog.Attr  { return slog.String(KeyGenerator, name) }
func Processor(name string) slog.Attr  { return slog.String(KeyProcessor, name) }
func OutputPath(p string) slog.Attr    { return slog.String(KeyOutputPath, p) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
