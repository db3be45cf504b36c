// Copyright © 2024 The junkcheck authors

// Package task runs the junk checker as a pre-commit task.  It selects the
// files a context covers, skips when there is nothing to check and maps scan
// results to passed or failed outcomes with a human readable message.
package task

import (
	"context"
	"fmt"

	"github.com/luthersystems/junkcheck/config"
	"github.com/luthersystems/junkcheck/junk"
	"github.com/sirupsen/logrus"
)

// Name identifies the task in configuration files and results.
const Name = "junk_checker"

// Status is the outcome of a task run.
type Status int

const (
	Passed Status = iota
	Failed
	Skipped
)

func (s Status) String() string {
	switch s {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result is the outcome of running a task in a context.
type Result struct {
	Task       string
	Status     Status
	Message    string
	Violations []junk.Violation
}

// JunkChecker is the junk_checker task.  The zero value is not usable; call
// NewJunkChecker.
type JunkChecker struct {
	config   *config.Config
	log      *logrus.Entry
	scanOpts []junk.Option
}

// NewJunkChecker returns a task with the default configuration.
func NewJunkChecker() *JunkChecker {
	return &JunkChecker{
		config: config.Default(),
		log:    logrus.WithField("task", Name),
	}
}

func (t *JunkChecker) Name() string {
	return Name
}

func (t *JunkChecker) Config() *config.Config {
	return t.config
}

// WithConfig returns a copy of t using cfg.
func (t *JunkChecker) WithConfig(cfg *config.Config) *JunkChecker {
	c := *t
	c.config = cfg
	return &c
}

// WithLogger returns a copy of t logging to log.
func (t *JunkChecker) WithLogger(log *logrus.Entry) *JunkChecker {
	c := *t
	c.log = log.WithField("task", Name)
	return &c
}

// WithScanOptions returns a copy of t passing opts to junk.Scan.
func (t *JunkChecker) WithScanOptions(opts ...junk.Option) *JunkChecker {
	c := *t
	c.scanOpts = append(append([]junk.Option{}, t.scanOpts...), opts...)
	return &c
}

// CanRunInContext reports whether the task applies to c.  Only files about to
// be committed are checked.
func (t *JunkChecker) CanRunInContext(c Context) bool {
	_, ok := c.(*PreCommitContext)
	return ok
}

// Run scans the files of c which match the configured extensions.  The run is
// skipped when no file matches or no junks are configured.  Errors reading or
// tokenizing a file abort the run.
func (t *JunkChecker) Run(ctx context.Context, c Context) (*Result, error) {
	paths := t.config.Select(c.Files())
	log := t.log.WithField("files", len(paths))
	if len(paths) == 0 {
		log.Debugf("skipped: no files match %v", t.config.TriggeredBy)
		return t.result(Skipped, nil), nil
	}
	if len(t.config.Junks) == 0 {
		log.Debug("skipped: no junks configured")
		return t.result(Skipped, nil), nil
	}

	files := make([]junk.File, 0, len(paths))
	for _, path := range paths {
		content, err := c.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		files = append(files, junk.File{Path: path, Content: content})
	}

	vs, err := junk.Scan(ctx, files, t.config.Names(), t.scanOpts...)
	if err != nil {
		return nil, err
	}
	log.WithField("violations", len(vs)).Debug("scan complete")
	if len(vs) == 0 {
		return t.result(Passed, nil), nil
	}
	return t.result(Failed, vs), nil
}

func (t *JunkChecker) result(status Status, vs []junk.Violation) *Result {
	r := &Result{
		Task:       Name,
		Status:     status,
		Violations: vs,
	}
	if status == Failed {
		r.Message = junk.Message(vs, t.config.MessageStyle)
	}
	return r
}
