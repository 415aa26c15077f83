// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package printer

import (
	"bufio"
	"io"
	"strconv"

	"github.com/hashicorp/powerset/powerset"
)

// nullLiteral is rendered in array format for an empty string item.
const nullLiteral = "NULL"

// Printer renders accepted subsets, one line each, in the order it receives
// them. Output is buffered and Flush must be called once the enumeration is
// complete.
type Printer struct {
	w      *bufio.Writer
	format powerset.Format
	line   []byte
}

// New returns a Printer writing to w in the given format.
func New(w io.Writer, format powerset.Format) *Printer {
	return &Printer{
		w:      bufio.NewWriter(w),
		format: format,
	}
}

// Print renders s as a single line. It satisfies powerset.EmitFunc.
func (p *Printer) Print(s *powerset.Subset) error {
	p.line = AppendSubset(p.line[:0], s, p.format)
	p.line = append(p.line, '\n')
	_, err := p.w.Write(p.line)
	return err
}

// Flush writes any buffered output to the underlying writer.
func (p *Printer) Flush() error {
	return p.w.Flush()
}

// AppendSubset appends the rendering of s in the given format to dst,
// without a trailing newline.
func AppendSubset(dst []byte, s *powerset.Subset, format powerset.Format) []byte {
	if s.Empty() {
		if format == powerset.FormatArray {
			dst = append(dst, '[', ']')
		}
		return dst
	}

	if format == powerset.FormatArray {
		dst = append(dst, '[')
	}

	for i, item := range s.Members() {
		if i > 0 {
			if format == powerset.FormatArray {
				dst = append(dst, ',', ' ')
			} else {
				dst = append(dst, ' ')
			}
		}
		dst = appendItem(dst, item, format)
	}

	if format == powerset.FormatArray {
		dst = append(dst, ']')
	}
	return dst
}

func appendItem(dst []byte, item powerset.Item, format powerset.Format) []byte {
	if item.Mode() == powerset.ModeInteger {
		return strconv.AppendInt(dst, item.Int(), 10)
	}

	if format != powerset.FormatArray {
		return append(dst, item.Text()...)
	}

	if item.Text() == "" {
		return append(dst, nullLiteral...)
	}
	dst = append(dst, '"')
	dst = append(dst, item.Text()...)
	return append(dst, '"')
}
