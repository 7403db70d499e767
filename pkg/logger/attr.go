package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RunID records the identifier of a generation run under the key "run_id".
func RunID(id string) slog.Attr {
	return slog.String("run_id", id)
}

// Field records a model field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Template records a raw template under the key "template".
func Template(tmpl string) slog.Attr {
	return slog.String("template", tmpl)
}

// Pool records a variable pool name under the key "pool".
func Pool(name string) slog.Attr {
	return slog.String("pool", name)
}

// Model records a model file path under the key "model".
func Model(path string) slog.Attr {
	return slog.String("model", path)
}

// Collection records the target collection or table under the key "collection".
func Collection(name string) slog.Attr {
	return slog.String("collection", name)
}

// Sink records the output sink name under the key "sink".
func Sink(name string) slog.Attr {
	return slog.String("sink", name)
}

// Count records a number of records under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
