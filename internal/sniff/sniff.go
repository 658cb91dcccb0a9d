// Package sniff looks at the head of an input stream to reject data that is
// plainly not FASTA before it reaches the record scanner.
package sniff

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"fastalen/internal/fasta"
)

// Format is the kind of input found at the head of a stream
type Format string

const (
	// FormatEmpty is an input with no bytes besides whitespace.
	FormatEmpty Format = "empty"
	// FormatFASTA is an input whose first non-blank byte is the header sentinel.
	FormatFASTA Format = "fasta"
	// FormatUnknown is anything else; the scanner decides whether it parses.
	FormatUnknown Format = "unknown"
)

// Rejections all match fasta.ErrMalformedInput, as none of them starts with
// a header line.
var (
	// ErrCompressed reports gzip magic bytes.
	ErrCompressed = fmt.Errorf("%w: input is gzip compressed, decompress it first", fasta.ErrMalformedInput)
	// ErrFASTQ reports an input starting with a FASTQ '@' record.
	ErrFASTQ = fmt.Errorf("%w: input looks like FASTQ, not FASTA", fasta.ErrMalformedInput)
	// ErrBinary reports NUL bytes or mostly control bytes before any header.
	ErrBinary = fmt.Errorf("%w: input looks like binary data, not FASTA", fasta.ErrMalformedInput)
)

// PeekSize is how many bytes Detect inspects
const PeekSize = 8192

// Detect inspects the head of r without consuming it. The returned reader
// yields the complete input, including the inspected bytes.
//
// Inputs that are plainly not FASTA (gzip, FASTQ, binary) are rejected.
// An input starting with a header always passes: sequence content is never
// inspected. Anything else passes too, FormatUnknown included, and the FASTA
// scanner reports the exact line that is wrong.
func Detect(r io.Reader) (*bufio.Reader, Format, error) {
	br := bufio.NewReaderSize(r, PeekSize)
	head, err := br.Peek(PeekSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return br, FormatUnknown, fmt.Errorf("peek input: %w", err)
	}

	if len(head) >= 2 && head[0] == 0x1f && head[1] == 0x8b {
		return br, FormatUnknown, ErrCompressed
	}

	first := firstNonSpace(head)
	if first < 0 {
		return br, FormatEmpty, nil
	}
	if head[first] == fasta.Sentinel {
		return br, FormatFASTA, nil
	}
	if head[first] == '@' {
		return br, FormatUnknown, ErrFASTQ
	}
	if isBinaryData(head) {
		return br, FormatUnknown, ErrBinary
	}
	return br, FormatUnknown, nil
}

func firstNonSpace(head []byte) int {
	for i, b := range head {
		switch b {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			continue
		}
		return i
	}
	return -1
}

// isBinaryData reports NUL bytes or more than 30% control bytes. Counting is
// by byte, so multi-byte UTF-8 text never looks binary.
func isBinaryData(head []byte) bool {
	nonPrintableCount := 0
	for _, b := range head {
		// Null bytes never appear in text
		if b == 0 {
			return true
		}
		if (b < 32 && b != '\t' && b != '\n' && b != '\r') || b == 0x7f {
			nonPrintableCount++
		}
	}

	threshold := float64(len(head)) * 0.3
	return float64(nonPrintableCount) > threshold
}
