// Copyright © 2024 The junkcheck authors

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/luthersystems/junkcheck/config"
	"github.com/luthersystems/junkcheck/diagnostic"
	"github.com/luthersystems/junkcheck/junk"
	"github.com/luthersystems/junkcheck/parser/lexer"
	"github.com/luthersystems/junkcheck/task"
)

// violationToDiagnostic converts a junk call to a Diagnostic for display.
func violationToDiagnostic(v junk.Violation) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Code:     task.Name,
		Message:  "junk call to " + v.Name,
		Notes:    []string{v.Name + " is listed in " + config.OptionJunks},
	}
	d.Spans = append(d.Spans, diagnostic.Span{
		File:  v.Path,
		Line:  v.Line,
		Col:   v.Col,
		Label: "remove this call before committing",
	})
	return d
}

// errorToDiagnostic converts a fatal task error to a Diagnostic.
func errorToDiagnostic(err error) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Message:  err.Error(),
	}
	var terr *lexer.TokenizationError
	var cerr *config.ConfigurationError
	switch {
	case errors.As(err, &terr) && terr.Source != nil:
		d.Message = "cannot tokenize " + terr.Source.File + ": " + terr.Err.Error()
		d.Spans = append(d.Spans, diagnostic.Span{
			File: terr.Source.File,
			Line: terr.Source.Line,
			Col:  terr.Source.Col,
		})
	case errors.As(err, &cerr):
		d.Code = task.Name
		d.Help = append(d.Help, "run junkcheck config --help for the supported options")
	}
	return d
}

func (c *cmdConfig) newRenderer(source func(string) ([]byte, error)) (*diagnostic.Renderer, error) {
	mode, err := c.colorMode()
	if err != nil {
		return nil, err
	}
	return &diagnostic.Renderer{Color: mode, SourceReader: source}, nil
}

// fail renders err to w and returns the error which exits with a failure
// status.
func (c *cmdConfig) fail(w io.Writer, err error, source func(string) ([]byte, error)) error {
	r, rerr := c.newRenderer(source)
	if rerr != nil {
		r = &diagnostic.Renderer{Color: diagnostic.ColorNever, SourceReader: source}
	}
	if werr := r.Render(w, errorToDiagnostic(err)); werr != nil {
		return &ExitError{Code: exitFailure, Err: fmt.Errorf("%w (writing diagnostic: %v)", err, werr)}
	}
	return &ExitError{Code: exitFailure, Err: err}
}

// Output formats of the check and pre-commit commands.
const (
	formatPretty = "pretty"
	formatShort  = "short"
	formatJSON   = "json"
)

// report writes the outcome of a task run.  In the pretty format violations
// are rendered to stderr followed by the task message on stdout.  The short
// format writes one go vet style line per violation to stdout and the JSON
// format writes a JSON array to stdout, even when nothing was found.
func (c *cmdConfig) report(stdout, stderr io.Writer, res *task.Result, tc task.Context, format string) error {
	switch format {
	case formatJSON:
		if err := junk.FormatJSON(stdout, res.Violations); err != nil {
			return &ExitError{Code: exitFailure, Err: err}
		}
	case formatShort:
		junk.FormatText(stdout, res.Violations)
	default:
		if res.Status != task.Failed {
			break
		}
		r, err := c.newRenderer(tc.ReadFile)
		if err != nil {
			return c.fail(stderr, err, nil)
		}
		diags := make([]diagnostic.Diagnostic, len(res.Violations))
		for i, v := range res.Violations {
			diags[i] = violationToDiagnostic(v)
		}
		if err := r.RenderAll(stderr, diags); err != nil {
			return &ExitError{Code: exitFailure, Err: err}
		}
		fmt.Fprintln(stderr)              //nolint:errcheck // best-effort output to writer
		fmt.Fprintln(stdout, res.Message) //nolint:errcheck // best-effort output to writer
	}
	if res.Status == task.Failed {
		return &ExitError{Code: exitViolations}
	}
	return nil
}

// outputFormat resolves the --json and --short flags.
func outputFormat(asJSON, short bool) (string, error) {
	switch {
	case asJSON && short:
		return "", errors.New("--json and --short cannot be used together")
	case asJSON:
		return formatJSON, nil
	case short:
		return formatShort, nil
	default:
		return formatPretty, nil
	}
}
