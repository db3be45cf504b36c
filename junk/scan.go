// Copyright © 2024 The junkcheck authors

// Package junk detects calls to banned ("junk") functions in PHP source.
//
// Detection is lexical.  Each file is tokenized, reduced to the tokens that
// matter for recognizing a call (see Relevant) and walked once with a window
// of one token on either side of every identifier.  A banned name is reported
// only when it is immediately followed by an open parenthesis and is not
// preceded by the function keyword or a member access operator.
package junk

import (
	"context"
	"sort"

	"github.com/luthersystems/junkcheck/parser/lexer"
	"github.com/luthersystems/junkcheck/parser/token"
	"github.com/sourcegraph/conc/iter"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/luthersystems/junkcheck/junk"

// NameSet is a set of banned identifiers.  Membership is exact and case
// sensitive.
type NameSet map[string]struct{}

// NewNameSet returns a set containing names.
func NewNameSet(names ...string) NameSet {
	set := make(NameSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s NameSet) Len() int {
	return len(s)
}

// Names returns the members of s in sorted order.
func (s NameSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// File is a candidate source file.
type File struct {
	Path    string
	Content []byte
}

// Tokenizer converts file content into raw tokens.
type Tokenizer func(file string, src []byte) ([]*token.Token, error)

// Option configures Scan.
type Option func(*scanConfig)

type scanConfig struct {
	workers  int
	tokenize Tokenizer
}

// WithWorkers bounds the number of files scanned concurrently.  A value of 1
// scans files sequentially.  Values below 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(c *scanConfig) { c.workers = n }
}

// WithTokenizer replaces the PHP lexer used to tokenize files.
func WithTokenizer(fn Tokenizer) Option {
	return func(c *scanConfig) { c.tokenize = fn }
}

func newScanConfig(opts []Option) *scanConfig {
	cfg := &scanConfig{tokenize: lexer.Tokenize}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.workers < 0 {
		cfg.workers = 0
	}
	return cfg
}

type fileResult struct {
	violations []Violation
	err        error
}

// Scan reports every junk call in files.  Violations are ordered by file, in
// the order files were given, and then by position within each file.  When
// files or names is empty Scan returns immediately without tokenizing
// anything.
//
// A file that cannot be tokenized aborts the scan.  The error for the first
// such file in input order is returned along with no violations.
func Scan(ctx context.Context, files []File, names NameSet, opts ...Option) ([]Violation, error) {
	if len(files) == 0 || names.Len() == 0 {
		return nil, nil
	}
	cfg := newScanConfig(opts)

	ctx, span := tracer().Start(ctx, "junk.Scan", trace.WithAttributes(
		attribute.Int("junk.files", len(files)),
		attribute.StringSlice("junk.names", names.Names()),
	))
	defer span.End()

	mapper := iter.Mapper[File, fileResult]{MaxGoroutines: cfg.workers}
	results := mapper.Map(files, func(f *File) fileResult {
		vs, err := scanFile(ctx, cfg.tokenize, f.Path, f.Content, names)
		return fileResult{violations: vs, err: err}
	})

	var all []Violation
	for _, r := range results {
		if r.err != nil {
			span.RecordError(r.err)
			span.SetStatus(codes.Error, r.err.Error())
			return nil, r.err
		}
		all = append(all, r.violations...)
	}
	span.SetAttributes(attribute.Int("junk.violations", len(all)))
	return all, nil
}

// ScanFile reports the junk calls in a single file using the PHP lexer.
func ScanFile(path string, content []byte, names NameSet) ([]Violation, error) {
	if names.Len() == 0 {
		return nil, nil
	}
	return scanFile(context.Background(), lexer.Tokenize, path, content, names)
}

func scanFile(ctx context.Context, tokenize Tokenizer, path string, content []byte, names NameSet) ([]Violation, error) {
	_, span := tracer().Start(ctx, "junk.ScanFile", trace.WithAttributes(semconv.CodeFilepath(path)))
	defer span.End()

	raw, err := tokenize(path, content)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	vs := ScanTokens(path, Relevant(raw), names)
	span.SetAttributes(attribute.Int("junk.violations", len(vs)))
	return vs, nil
}

// ScanTokens walks a relevant token stream and returns a violation for each
// identifier in names that is called as a bare function.
func ScanTokens(path string, stream []Token, names NameSet) []Violation {
	var violations []Violation
	for i, tok := range stream {
		if tok.Category != Identifier {
			continue
		}
		if !names.Has(tok.Text) {
			continue
		}
		if i+1 >= len(stream) {
			continue
		}
		if stream[i+1].Category != OpenParenthesis {
			continue
		}
		if i > 0 {
			switch stream[i-1].Category {
			case FunctionDeclarationKeyword:
				// declaration of a function sharing the name
				continue
			case InstanceMemberOperator, StaticMemberOperator:
				// method calls are allowed
				continue
			}
		}
		violations = append(violations, Violation{
			Path: path,
			Line: tok.Line(),
			Col:  tok.Col(),
			Name: tok.Text,
		})
	}
	return violations
}

func tracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer(tracerName)
}
