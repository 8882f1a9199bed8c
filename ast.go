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

package mddocx

import "fmt"

// Line is a single line of Markdown input
// with its line ending removed.
type Line struct {
	Text string
	// Index is the zero-based position of the line in the input.
	Index int
	// Indent is the number of columns of leading whitespace,
	// with tabs advancing to the next multiple of 4.
	Indent int
}

// A Block is a contiguous run of lines that share one [BlockKind].
type Block struct {
	Kind BlockKind
	// Level is the heading level (1-6) of a [HeadingKind] block.
	Level int
	// Marker is the bullet character ('-', '*' or '+') of a [ListItemKind] block.
	Marker byte
	// Info is the language tag of a [FencedCodeKind] block.
	// It may be empty.
	Info string
	// Lines holds the source lines of the block,
	// including any fence delimiter lines.
	Lines []Line
	// Text is the block's content.
	// Fenced code keeps its internal line breaks.
	// All other kinds join their lines with single spaces.
	Text string
	// Closed is false only for a fenced code block
	// that reached the end of input without a closing fence.
	Closed bool
}

// Span returns the range of source lines the block covers.
// Calling Span on nil returns [NullSpan].
func (b *Block) Span() Span {
	if b == nil || len(b.Lines) == 0 {
		return NullSpan()
	}
	return Span{
		Start: b.Lines[0].Index,
		End:   b.Lines[len(b.Lines)-1].Index + 1,
	}
}

// BlockKind is an enumeration of the structural kinds of [Block].
type BlockKind uint16

const (
	ParagraphKind BlockKind = 1 + iota
	HeadingKind
	BlockQuoteKind
	ListItemKind
	FencedCodeKind
	BlankKind
)

// String returns the name of the kind, like "Heading".
func (kind BlockKind) String() string {
	switch kind {
	case ParagraphKind:
		return "Paragraph"
	case HeadingKind:
		return "Heading"
	case BlockQuoteKind:
		return "BlockQuote"
	case ListItemKind:
		return "ListItem"
	case FencedCodeKind:
		return "FencedCode"
	case BlankKind:
		return "Blank"
	default:
		return fmt.Sprintf("BlockKind(%d)", uint16(kind))
	}
}

// extends reports whether a line of the given kind
// continues an open block of this kind.
// Headings and list items are always one line long.
func (kind BlockKind) extends(next BlockKind) bool {
	switch kind {
	case ParagraphKind, BlockQuoteKind, BlankKind:
		return kind == next
	default:
		return false
	}
}

// Span is a contiguous range of positions.
// For a [Block], positions are line indices;
// for a [Run], positions are byte offsets into [Block.Text].
type Span struct {
	Start int
	End   int
}

// NullSpan returns an invalid span.
func NullSpan() Span {
	return Span{-1, -1}
}

// IsValid reports whether the span has a non-negative start and end.
func (span Span) IsValid() bool {
	return span.Start >= 0 && span.End >= span.Start
}

// Len returns the length of the span
// or zero if the span is invalid.
func (span Span) Len() int {
	if !span.IsValid() {
		return 0
	}
	return span.End - span.Start
}

func (span Span) String() string {
	if !span.IsValid() {
		return "[-]"
	}
	return fmt.Sprintf("[%d,%d)", span.Start, span.End)
}
