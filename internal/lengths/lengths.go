// Package lengths writes the identifier and sequence length of every record
// in a FASTA file as tab separated lines.
package lengths

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"fastalen/internal/fasta"
	"fastalen/internal/sniff"
)

// StdinPath makes Run read standard input instead of a file.
const StdinPath = "-"

// ErrFileAccess is matched by every FileAccessError.
var ErrFileAccess = errors.New("cannot access input file")

var errIsDirectory = errors.New("is a directory")

// FileAccessError reports an input path that does not exist, cannot be read
// or is a directory.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot read %q: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

func (e *FileAccessError) Is(target error) bool { return target == ErrFileAccess }

// Options configures a Run.
type Options struct {
	// Path of the FASTA file, or StdinPath.
	Path string

	// Stdin is read when Path is StdinPath. Defaults to os.Stdin.
	Stdin io.Reader
}

// Summary counts what a Run wrote.
type Summary struct {
	Records  int
	Residues int
}

// Run scans the input named by opts and writes one "<id>\t<length>" line per
// record to stdout. The input is closed on every return path. Lines written
// before an error stay written. A nil logger discards log output.
func Run(ctx context.Context, opts Options, stdout io.Writer, logger *slog.Logger) (Summary, error) {
	var summary Summary
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	input, err := openInput(opts)
	if err != nil {
		return summary, err
	}
	defer func() {
		if err := input.Close(); err != nil {
			logger.Warn("failed to close input", "path", opts.Path, "err", err)
		}
	}()

	body, format, err := sniff.Detect(input)
	if err != nil {
		return summary, fmt.Errorf("%s: %w", opts.Path, err)
	}
	logger.Debug("input format", "path", opts.Path, "format", format)

	out := bufio.NewWriter(stdout)
	for record, err := range fasta.Records(body) {
		if err != nil {
			_ = out.Flush()
			return summary, fmt.Errorf("%s: %w", opts.Path, err)
		}
		if err := ctx.Err(); err != nil {
			_ = out.Flush()
			return summary, err
		}
		if _, err := fmt.Fprintf(out, "%s\t%d\n", record.ID, record.Length); err != nil {
			return summary, fmt.Errorf("write output: %w", err)
		}
		summary.Records++
		summary.Residues += record.Length
	}
	if err := out.Flush(); err != nil {
		return summary, fmt.Errorf("write output: %w", err)
	}

	logger.Debug("scan finished", "path", opts.Path, "records", summary.Records, "residues", summary.Residues)
	return summary, nil
}

func openInput(opts Options) (io.ReadCloser, error) {
	if opts.Path == StdinPath {
		stdin := opts.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		return io.NopCloser(stdin), nil
	}

	info, err := os.Stat(opts.Path)
	if err != nil {
		return nil, &FileAccessError{Path: opts.Path, Err: err}
	}
	if info.IsDir() {
		return nil, &FileAccessError{Path: opts.Path, Err: errIsDirectory}
	}

	f, err := os.Open(opts.Path)
	if err != nil {
		return nil, &FileAccessError{Path: opts.Path, Err: err}
	}
	return f, nil
}
