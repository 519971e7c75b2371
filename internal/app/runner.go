package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/tidwall/sjson"

	"github.com/dshills/ropecut/internal/config"
	"github.com/dshills/ropecut/internal/engine"
	"github.com/dshills/ropecut/internal/script"
	"github.com/dshills/ropecut/internal/watcher"
)

// Runner applies scripts to fresh engines and writes the results.
type Runner struct {
	cfg    config.Config
	fs     afero.Fs
	out    io.Writer
	logger *Logger
	runID  string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithFS sets the file system scripts are read from.
func WithFS(fs afero.Fs) RunnerOption {
	return func(r *Runner) {
		r.fs = fs
	}
}

// WithOutput sets where results are written.
func WithOutput(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.out = w
	}
}

// WithLogger sets the logger. The runner adds a run field to it.
func WithLogger(l *Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithRunID overrides the generated run id.
func WithRunID(id string) RunnerOption {
	return func(r *Runner) {
		r.runID = id
	}
}

// NewRunner creates a runner for cfg.
func NewRunner(cfg config.Config, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:    cfg,
		fs:     afero.NewOsFs(),
		out:    os.Stdout,
		logger: NullLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.runID == "" {
		r.runID = uuid.NewString()
	}
	r.logger = r.logger.WithField("run", r.runID)
	return r
}

// RunID returns the id tagging this runner's logs and reports.
func (r *Runner) RunID() string {
	return r.runID
}

// Result describes one applied script.
type Result struct {
	RunID   string
	Source  string
	Text    string
	Ops     int
	Digest  uint64
	Elapsed time.Duration
	Stats   engine.Stats
	Invalid error // tree validation failure, when validation is on
}

// Execute applies s to a new engine built from the configuration.
// Either every move is applied or the error says which one failed.
func (r *Runner) Execute(ctx context.Context, s *script.Script, source string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := r.logger.WithComponent("engine")
	start := time.Now()

	opts := append(r.cfg.EngineOptions(), engine.WithContent(s.Text))
	e := engine.New(opts...)
	log.Debug("built %d-byte rope (%s)", e.Len(), e.Construction())

	if err := e.Apply(source, s.Moves()); err != nil {
		return nil, NewOperationError("apply", source, err)
	}

	res := &Result{
		RunID:   r.runID,
		Source:  source,
		Text:    e.Text(),
		Ops:     len(s.Ops),
		Elapsed: time.Since(start),
		Stats:   e.Stats(),
	}
	if r.cfg.Output.Digest {
		res.Digest = e.Digest()
	}
	if r.cfg.Rope.Validate {
		res.Invalid = e.Validate()
	}

	log.Info("applied %d moves to %s in %s", res.Ops, source, res.Elapsed)
	log.Debug("splays=%d rotations=%d height=%d", res.Stats.Splays, res.Stats.Rotations, e.Height())
	return res, nil
}

// RunFile loads the script at path, applies it and writes the result.
func (r *Runner) RunFile(ctx context.Context, path string) (*Result, error) {
	r.logger.Debug("loading %s", path)
	s, err := script.Load(ctx, r.fs, path)
	if err != nil {
		return nil, NewOperationError("load", path, err)
	}
	return r.run(ctx, s, path)
}

// RunFileAs is RunFile with an explicit format, ignoring the extension.
func (r *Runner) RunFileAs(ctx context.Context, format script.Format, path string) (*Result, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return nil, NewOperationError("load", path, err)
	}
	defer f.Close()
	return r.RunReader(ctx, format, path, f)
}

// RunReader decodes a script from rd, applies it and writes the result.
func (r *Runner) RunReader(ctx context.Context, format script.Format, source string, rd io.Reader) (*Result, error) {
	s, err := script.DecodeContext(ctx, format, source, rd)
	if err != nil {
		return nil, NewOperationError("load", source, err)
	}
	return r.run(ctx, s, source)
}

func (r *Runner) run(ctx context.Context, s *script.Script, source string) (*Result, error) {
	res, err := r.Execute(ctx, s, source)
	if err != nil {
		return nil, err
	}
	if err := r.Write(res); err != nil {
		return nil, NewOperationError("write", source, err)
	}
	return res, nil
}

// Write renders res in the configured output format.
func (r *Runner) Write(res *Result) error {
	if r.cfg.Output.Format == config.FormatJSON {
		doc, err := Report(res, r.cfg.Output.Digest)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, doc)
		return err
	}

	if _, err := io.WriteString(r.out, res.Text+"\n"); err != nil {
		return err
	}
	if r.cfg.Output.Digest {
		_, err := fmt.Fprintf(r.out, "xxhash64 %016x\n", res.Digest)
		return err
	}
	return nil
}

// reportField is one path set in a JSON report.
type reportField struct {
	path  string
	value any
}

// Report renders res as a JSON document.
func Report(res *Result, withDigest bool) (string, error) {
	fields := []reportField{
		{"run", res.RunID},
		{"source", res.Source},
		{"text", res.Text},
		{"length", len(res.Text)},
		{"ops", res.Ops},
		{"elapsed_ms", float64(res.Elapsed.Microseconds()) / 1000},
		{"stats.vertices", res.Stats.Vertices},
		{"stats.splays", res.Stats.Splays},
		{"stats.rotations", res.Stats.Rotations},
	}
	if withDigest {
		fields = append(fields, reportField{"digest", fmt.Sprintf("%016x", res.Digest)})
	}
	if res.Invalid != nil {
		fields = append(fields, reportField{"invalid", res.Invalid.Error()})
	}

	doc := "{}"
	for _, f := range fields {
		var err error
		if doc, err = sjson.Set(doc, f.path, f.value); err != nil {
			return "", fmt.Errorf("building report: %w", err)
		}
	}
	return doc, nil
}

// Watch runs the script at path now and again whenever it changes, until
// ctx is done. Failed runs are logged and do not stop the watch.
func (r *Runner) Watch(ctx context.Context, path string) error {
	log := r.logger.WithComponent("watch")
	log.Info("watching %s", path)

	err := watcher.Run(ctx, path, r.cfg.Watch.Debounce, func(ev watcher.Event) error {
		if ev.Op != 0 {
			log.Debug("change detected (op=%b)", ev.Op)
		}
		if _, err := r.RunFile(ctx, path); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error("%v", err)
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		log.Info("stopped")
		return nil
	}
	return err
}
