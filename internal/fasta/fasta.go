// Package fasta scans FASTA formatted text and reports the identifier and
// sequence length of every record. Only the record being read is held in
// memory; sequence data itself is never stored.
package fasta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentinel marks the start of a header line.
const Sentinel = '>'

// ErrMalformedInput is matched by every MalformedInputError.
var ErrMalformedInput = errors.New("malformed FASTA input")

// Record is one FASTA entry reduced to its identifier and sequence length.
type Record struct {
	ID     string
	Length int
}

// MalformedInputError reports input that breaks the header-before-sequence
// rule or carries a header without an identifier.
type MalformedInputError struct {
	Line   int
	Reason string
	Text   string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// Scanner reads records one at a time, in the manner of bufio.Scanner.
// A Scanner makes a single forward pass and cannot be rewound.
type Scanner struct {
	reader *bufio.Reader
	line   int
	eof    bool
	err    error

	// record being accumulated
	open   bool
	id     string
	length int

	record Record
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{reader: bufio.NewReader(r)}
}

// Scan advances to the next record. It returns false at the end of the input
// or on the first error; Err tells the two apart.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for !s.eof {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = fmt.Errorf("reading line %d: %w", s.line+1, err)
				return false
			}
			s.eof = true
		}
		if line == "" {
			continue
		}
		s.line++
		if s.consume(line) {
			return true
		}
		if s.err != nil {
			return false
		}
	}
	if s.open {
		s.record = Record{ID: s.id, Length: s.length}
		s.open = false
		return true
	}
	return false
}

// Record returns the record produced by the last successful call to Scan.
func (s *Scanner) Record() Record {
	return s.record
}

// Err returns the first error encountered, or nil at a clean end of input.
func (s *Scanner) Err() error {
	return s.err
}

// consume handles one raw line and reports whether it completed a record.
func (s *Scanner) consume(line string) bool {
	text := strings.TrimRightFunc(line, unicode.IsSpace)
	content := strings.TrimLeftFunc(text, unicode.IsSpace)
	if content == "" {
		return false
	}

	if content[0] != Sentinel {
		if !s.open {
			s.err = &MalformedInputError{Line: s.line, Reason: "sequence data before first header", Text: clip(content)}
			return false
		}
		s.length += utf8.RuneCountInString(text)
		return false
	}

	id := headerID(content[1:])
	if id == "" {
		s.err = &MalformedInputError{Line: s.line, Reason: "header has no identifier", Text: clip(content)}
		return false
	}
	completed := s.open
	if completed {
		s.record = Record{ID: s.id, Length: s.length}
	}
	s.open, s.id, s.length = true, id, 0
	return completed
}

// headerID returns the first whitespace delimited token of a header line
// with the sentinel already removed. The rest of the line is a description.
func headerID(header string) string {
	header = strings.TrimLeftFunc(header, unicode.IsSpace)
	if i := strings.IndexFunc(header, unicode.IsSpace); i >= 0 {
		return header[:i]
	}
	return header
}

func clip(text string) string {
	const limit = 40
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit]) + "..."
}

// Records returns the records of r as a lazy sequence. An error ends the
// sequence and is yielded with a zero Record. Ranging over the sequence a
// second time yields nothing, as the input has already been consumed.
func Records(r io.Reader) iter.Seq2[Record, error] {
	s := NewScanner(r)
	return func(yield func(Record, error) bool) {
		for s.Scan() {
			if !yield(s.Record(), nil) {
				return
			}
		}
		if err := s.Err(); err != nil {
			yield(Record{}, err)
		}
	}
}
