// Copyright 2026 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package mddocx converts Markdown text into a word-processing document.
//
// Conversion is a single forward pass:
// the input is split into [Line] values,
// the lines are grouped into [Block] values,
// each block's text is split into styled [Run] values,
// and a [Builder] hands the result to a [Backend]
// that owns the document being written.
// [Document] wraps the whole pipeline.
package mddocx

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// A Parser splits Markdown input into lines.
type Parser struct {
	buf      []byte // unconsumed input
	parsePos int    // parse position within buf
	lineno   int    // index of the next line

	r   io.Reader
	err error // non-nil indicates there is no more data after end of buf
}

// NewParser returns a parser that reads from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{
		r: r,
	}
}

// Parse splits source into blocks.
// Parse never fails: malformed Markdown is treated as paragraph text.
func Parse(source []byte) []*Block {
	p := &Parser{
		buf: source,
		err: io.EOF,
	}
	blocks, err := p.Blocks()
	if err != nil {
		panic(err)
	}
	return blocks
}

// Blocks reads the rest of the input and groups it into blocks.
// The only errors Blocks returns are read errors.
func (p *Parser) Blocks() ([]*Block, error) {
	s := new(segmenter)
	for {
		line, err := p.NextLine()
		if err == io.EOF {
			return s.finish(), nil
		}
		if err != nil {
			return nil, err
		}
		if err := s.feed(line); err != nil {
			return nil, err
		}
	}
}

// NextLine returns the next line of input.
// NUL bytes are replaced with the Unicode replacement character
// and the text is normalized to NFC.
// NextLine returns [io.EOF] when there are no more lines.
func (p *Parser) NextLine() (Line, error) {
	text := p.readline()
	if text == nil {
		if p.err == io.EOF {
			return Line{}, io.EOF
		}
		return Line{}, fmt.Errorf("read markdown: %w", p.err)
	}
	if bytes.IndexByte(text, 0) >= 0 {
		text = bytes.ReplaceAll(text, []byte{0}, []byte("\ufffd"))
	}
	s := norm.NFC.String(string(text))
	line := Line{
		Text:   s,
		Index:  p.lineno,
		Indent: indentWidth(s),
	}
	p.lineno++
	return line, nil
}

// readline reads the next line of input without its line ending,
// growing p.buf as necessary.
// It will return nil if and only if it has reached the end of input
// or encountered an error.
func (p *Parser) readline() []byte {
	const (
		chunkSize   = 8 * 1024
		maxLineSize = 1024 * 1024
	)

	eolStart, eolEnd := -1, -1
	for {
		// Check if we have a line ending available.
		if i := bytes.IndexAny(p.buf[p.parsePos:], "\r\n"); i >= 0 {
			eolStart = p.parsePos + i
			if p.buf[eolStart] == '\n' {
				eolEnd = eolStart + 1
				break
			}
			if eolStart+1 < len(p.buf) {
				// Carriage return with enough buffer for 1 byte lookahead.
				eolEnd = eolStart + 1
				if p.buf[eolEnd] == '\n' {
					eolEnd++
				}
				break
			}
			if p.err != nil {
				// Carriage return right before EOF.
				eolEnd = len(p.buf)
				break
			}
		}

		// If we don't have any more line ending available,
		// but we're at EOF, return everything we have.
		if p.err != nil {
			if p.parsePos >= len(p.buf) {
				return nil
			}
			eolStart = len(p.buf)
			eolEnd = len(p.buf)
			break
		}

		if len(p.buf)-p.parsePos >= maxLineSize {
			p.err = fmt.Errorf("line %d: too long", p.lineno+1)
			return nil
		}

		// Drop consumed lines before growing the buffer.
		if p.parsePos > 0 {
			n := copy(p.buf, p.buf[p.parsePos:])
			p.buf = p.buf[:n]
			p.parsePos = 0
		}
		newSize := len(p.buf) + chunkSize
		if cap(p.buf) < newSize {
			newbuf := make([]byte, len(p.buf), newSize)
			copy(newbuf, p.buf)
			p.buf = newbuf
		}
		var n int
		n, p.err = p.r.Read(p.buf[len(p.buf):newSize])
		p.buf = p.buf[:len(p.buf)+n]
	}

	line := p.buf[p.parsePos:eolStart:eolStart]
	p.parsePos = eolEnd
	return line
}

// Segment groups an ordered sequence of lines into blocks.
// Every line belongs to exactly one of the returned blocks
// and the blocks are in source order.
// Segment returns a [*ParseInternalError]
// if the line indices are negative or not strictly increasing.
func Segment(lines []Line) ([]*Block, error) {
	s := new(segmenter)
	for _, line := range lines {
		if err := s.feed(line); err != nil {
			return nil, err
		}
	}
	return s.finish(), nil
}

// segmenter is the block segmentation state machine.
// It is in one of three states:
//
//   - no open block (open == nil)
//   - an open block of any kind other than fenced code (open != nil, fence == nil)
//   - an open fenced code block (open != nil, fence != nil)
type segmenter struct {
	blocks []*Block
	open   *Block
	fence  *fenceSpec
	parts  []string // content of the open block, one entry per line
	last   int      // index of the last line fed
	fed    bool     // whether any line has been fed
}

func (s *segmenter) feed(line Line) error {
	if line.Index < 0 {
		return &ParseInternalError{Line: line.Index, Reason: "negative line index"}
	}
	if s.fed && line.Index <= s.last {
		return &ParseInternalError{
			Line:   line.Index,
			Reason: fmt.Sprintf("out of order after line %d", s.last),
		}
	}
	s.fed = true
	s.last = line.Index

	c := classifyLine(line, s.fence)
	if s.fence != nil {
		s.open.Lines = append(s.open.Lines, line)
		if c.fence {
			s.open.Closed = true
			s.closeBlock()
			return nil
		}
		s.parts = append(s.parts, c.content)
		return nil
	}

	if s.open != nil && s.open.Kind.extends(c.kind) {
		s.open.Lines = append(s.open.Lines, line)
		s.parts = append(s.parts, c.content)
		return nil
	}
	s.closeBlock()
	s.open = &Block{
		Kind:   c.kind,
		Level:  c.level,
		Marker: c.marker,
		Lines:  []Line{line},
	}
	if c.kind == FencedCodeKind {
		s.open.Info = c.info.language
		f := c.info
		s.fence = &f
		return nil
	}
	s.parts = append(s.parts, c.content)
	return nil
}

// closeBlock finishes the open block, if any,
// and transitions to the no-open-block state.
func (s *segmenter) closeBlock() {
	if s.open == nil {
		return
	}
	switch s.open.Kind {
	case FencedCodeKind:
		s.open.Text = strings.Join(s.parts, "\n")
	case BlankKind:
		s.open.Text = ""
	default:
		s.open.Text = joinReflow(s.parts)
	}
	s.blocks = append(s.blocks, s.open)
	s.open = nil
	s.fence = nil
	s.parts = s.parts[:0]
}

// finish closes any open block and returns the blocks.
// A fenced code block that is still open is closed
// with Closed left false.
func (s *segmenter) finish() []*Block {
	s.closeBlock()
	blocks := s.blocks
	s.blocks = nil
	return blocks
}

// joinReflow joins the non-empty parts with single spaces.
func joinReflow(parts []string) string {
	sb := new(strings.Builder)
	for _, part := range parts {
		if part == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(part)
	}
	return sb.String()
}
