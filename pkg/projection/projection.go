package projection

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dmitrymomot/seedkit/pkg/engine"
	"github.com/dmitrymomot/seedkit/pkg/pool"
)

// IDPool is the output name ids are saved under, so a later run can
// reference them as "@ids".
const IDPool = "ids"

// Spec selects one record field and the pool file its values go to.
type Spec struct {
	Field string
	Name  string
}

func (s Spec) String() string {
	return s.Field + ":" + s.Name
}

// ParseSpec parses "prop:name". A bare "prop" writes to a pool of the same name.
func ParseSpec(s string) (Spec, error) {
	field, name, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		name = field
	}
	field, name = strings.TrimSpace(field), strings.TrimSpace(name)
	if field == "" || name == "" {
		return Spec{}, fmt.Errorf("%w: %q", ErrInvalidSpec, s)
	}
	if err := checkName(name); err != nil {
		return Spec{}, err
	}
	return Spec{Field: field, Name: name}, nil
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidOutputName, name)
	}
	return nil
}

type output struct {
	file *os.File
	path string
	buf  *bufio.Writer
	enc  *json.Encoder
}

// Writer appends selected record fields as JSON lines to <dir>/<name>.dat.
// Lines go to a temporary file next to the target. Close replaces the
// target with it; Abort discards it and leaves any existing pool untouched.
type Writer struct {
	specs []Spec

	mu      sync.Mutex
	outputs map[string]*output
	closed  bool
}

// Open creates dir if needed and one temporary file per distinct spec name.
// On failure every file opened so far is removed again.
func Open(dir string, specs ...Spec) (*Writer, error) {
	w := &Writer{
		specs:   specs,
		outputs: make(map[string]*output, len(specs)),
	}
	if len(specs) == 0 {
		return w, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Join(ErrCreateOutput, err)
	}
	for _, spec := range specs {
		if _, ok := w.outputs[spec.Name]; ok {
			continue
		}
		if err := checkName(spec.Name); err != nil {
			_ = w.Abort()
			return nil, err
		}

		f, err := os.CreateTemp(dir, spec.Name+pool.Extension+".*.tmp")
		if err != nil {
			_ = w.Abort()
			return nil, errors.Join(ErrCreateOutput, err)
		}
		if err := f.Chmod(0o644); err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
			_ = w.Abort()
			return nil, errors.Join(ErrCreateOutput, err)
		}
		buf := bufio.NewWriter(f)
		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)
		w.outputs[spec.Name] = &output{
			file: f,
			path: filepath.Join(dir, spec.Name+pool.Extension),
			buf:  buf,
			enc:  enc,
		}
	}
	return w, nil
}

// Write appends the truthy projected fields of rec.
func (w *Writer) Write(rec engine.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWriterClosed
	}
	for _, spec := range w.specs {
		v, ok := rec[spec.Field]
		if !ok || !Truthy(v) {
			continue
		}
		if err := w.outputs[spec.Name].enc.Encode(v); err != nil {
			return errors.Join(ErrWriteOutput, fmt.Errorf("%s: %w", spec, err))
		}
	}
	return nil
}

// WriteAll writes every record in order.
func (w *Writer) WriteAll(records []engine.Record) error {
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes every temporary file and moves it over its target pool.
// When any file cannot be flushed nothing is replaced.
// Close and Abort are safe to call more than once; only the first call acts.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	for name, out := range w.outputs {
		if err := out.buf.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("flush %s: %w", name, err))
		}
		if err := out.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
	}
	if len(errs) == 0 {
		for name, out := range w.outputs {
			if err := os.Rename(out.file.Name(), out.path); err != nil {
				errs = append(errs, fmt.Errorf("replace %s: %w", name, err))
			}
		}
	}
	if len(errs) > 0 {
		w.removeTemp()
		return errors.Join(append([]error{ErrWriteOutput}, errs...)...)
	}
	return nil
}

// Abort closes and removes the temporary files without touching the targets.
func (w *Writer) Abort() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	for _, out := range w.outputs {
		_ = out.file.Close()
	}
	return w.removeTemp()
}

func (w *Writer) removeTemp() error {
	var errs []error
	for _, out := range w.outputs {
		if err := os.Remove(out.file.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SaveIDs writes ids as JSON strings, one per line, to <dir>/ids.dat.
func SaveIDs(dir string, ids []string) error {
	w, err := Open(dir, Spec{Field: IDPool, Name: IDPool})
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := w.Write(engine.Record{IDPool: id}); err != nil {
			return errors.Join(err, w.Abort())
		}
	}
	return w.Close()
}

// Truthy reports whether v counts as present: false, zero numbers, NaN,
// empty strings and nil are skipped. Empty containers count as present.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int64:
		return t != 0
	case int:
		return t != 0
	case float64:
		return t != 0 && !math.IsNaN(t)
	}
	return true
}
