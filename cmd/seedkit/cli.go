package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrymomot/seedkit/pkg/logger"
	"github.com/dmitrymomot/seedkit/pkg/projection"
)

// Sink names accepted by --sink.
const (
	sinkMongo    = "mongo"
	sinkPostgres = "postgres"
	sinkStdout   = "stdout"
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// options is the parsed command line. Zero values fall back to the environment.
type options struct {
	URL        string
	DB         string
	Collection string
	Model      string
	Count      int
	Save       []projection.Spec
	SaveID     bool
	Sink       string
	PoolDir    string
	OutDir     string
	Workers    int
	Seed       uint64
	LogLevel   string
	LogFormat  string
	EnvFiles   []string
}

type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// parse processes command-line arguments. It returns the options, whether the
// program should exit cleanly (help was printed), or an ExitError.
func parse(args []string, output io.Writer) (*options, bool, error) {
	fs := flag.NewFlagSet("seedkit", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
seedkit - fills a database with generated records described by a model file.

Usage:
  seedkit -c <collection> -m <model> [options]

Options:
`)
		fs.PrintDefaults()
	}

	var (
		opts  options
		saves stringList
		envs  stringList
	)
	fs.StringVar(&opts.URL, "url", "localhost", "Database host, used as mongodb://<url>:27017/<db> unless MONGODB_URL is set.")
	fs.StringVar(&opts.URL, "u", "localhost", "Database host (shorthand).")
	fs.StringVar(&opts.DB, "db", "", "Database name.")
	fs.StringVar(&opts.DB, "d", "", "Database name (shorthand).")
	fs.StringVar(&opts.Collection, "collection", "", "Collection or table receiving the records. Required.")
	fs.StringVar(&opts.Collection, "c", "", "Collection or table (shorthand).")
	fs.StringVar(&opts.Model, "model", "", "Path to the model file. Required.")
	fs.StringVar(&opts.Model, "m", "", "Path to the model file (shorthand).")
	fs.IntVar(&opts.Count, "count", 1, "Number of records to generate.")
	fs.IntVar(&opts.Count, "n", 1, "Number of records to generate (shorthand).")
	fs.Var(&saves, "save", "Save a record property into a pool, as prop:name. Repeatable.")
	fs.Var(&saves, "s", "Save a record property (shorthand).")
	fs.BoolVar(&opts.SaveID, "save-id", false, "Save inserted ids into the ids pool.")
	fs.BoolVar(&opts.SaveID, "i", false, "Save inserted ids (shorthand).")
	fs.StringVar(&opts.Sink, "sink", sinkMongo, "Where records go: 'mongo', 'postgres' or 'stdout'.")
	fs.StringVar(&opts.PoolDir, "pools", "", "Directory holding pool files. Defaults to the model's directory.")
	fs.StringVar(&opts.OutDir, "out", "", "Directory for saved pools. Defaults to the pool directory.")
	fs.IntVar(&opts.Workers, "workers", 0, "Records generated concurrently. Defaults to SEEDKIT_WORKERS.")
	fs.Uint64Var(&opts.Seed, "seed", 0, "Seed the random streams. Output is reproducible only with --workers 1. 0 draws a random seed.")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	fs.StringVar(&opts.LogFormat, "log-format", "", "Log output format: 'text' or 'json'.")
	fs.Var(&envs, "env-file", "Extra .env file to load. Repeatable.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if fs.NArg() > 0 {
		return nil, false, usageError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if opts.Model == "" {
		return nil, false, usageError("missing required flag: --model")
	}
	if opts.Collection == "" {
		return nil, false, usageError("missing required flag: --collection")
	}
	if opts.Count < 1 {
		return nil, false, usageError("invalid count %d: must be positive", opts.Count)
	}
	if opts.Workers < 0 {
		return nil, false, usageError("invalid workers %d: must not be negative", opts.Workers)
	}

	switch opts.Sink {
	case sinkMongo, sinkPostgres, sinkStdout:
	default:
		return nil, false, usageError("invalid sink %q: must be 'mongo', 'postgres' or 'stdout'", opts.Sink)
	}

	if err := checkLogFlags(opts.LogLevel, opts.LogFormat); err != nil {
		return nil, false, err
	}

	for _, s := range saves {
		spec, err := projection.ParseSpec(s)
		if err != nil {
			return nil, false, usageError("save switch cannot accept value %q: %v", s, err)
		}
		opts.Save = append(opts.Save, spec)
	}
	opts.EnvFiles = envs

	return &opts, false, nil
}

func checkLogFlags(level, format string) error {
	if level != "" {
		if _, err := logger.ParseLevel(level); err != nil {
			return usageError("%v", err)
		}
	}
	switch logger.Format(strings.ToLower(format)) {
	case "", logger.FormatJSON, logger.FormatText:
	default:
		return usageError("invalid log-format %q: must be 'text' or 'json'", format)
	}
	return nil
}
