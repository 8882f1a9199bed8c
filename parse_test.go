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

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"zombiezen.com/go/mddocx/internal/golden"
)

func TestInsecureCharacters(t *testing.T) {
	const input = "Hello,\x00World"
	const want = "Hello,\ufffdWorld"

	blocks := Parse([]byte(input))
	if len(blocks) != 1 {
		t.Fatalf("len(blocks) = %d; want 1", len(blocks))
	}
	if got := blocks[0].Kind; got != ParagraphKind {
		t.Errorf("blocks[0].Kind = %v; want %v", got, ParagraphKind)
	}
	if got := blocks[0].Text; got != want {
		t.Errorf("blocks[0].Text = %q; want %q", got, want)
	}
}

func TestNormalization(t *testing.T) {
	// "e" followed by a combining acute accent.
	blocks := Parse([]byte("Cafe\u0301"))
	if len(blocks) != 1 {
		t.Fatalf("len(blocks) = %d; want 1", len(blocks))
	}
	if got, want := blocks[0].Text, "Caf\u00e9"; got != want {
		t.Errorf("blocks[0].Text = %q; want %q", got, want)
	}
}

func TestNextLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"Empty", "", nil},
		{"NoTrailingNewline", "a\nb", []string{"a", "b"}},
		{"TrailingNewline", "a\nb\n", []string{"a", "b"}},
		{"CRLF", "a\r\nb\r\n", []string{"a", "b"}},
		{"CR", "a\rb\r", []string{"a", "b"}},
		{"Mixed", "a\r\n\rb\n", []string{"a", "", "b"}},
		{"BlankLines", "\n\n", []string{"", ""}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// Read one byte at a time to exercise line endings split across reads.
			p := NewParser(iotest.OneByteReader(strings.NewReader(test.input)))
			var got []string
			for i := 0; ; i++ {
				line, err := p.NextLine()
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatal(err)
				}
				if line.Index != i {
					t.Errorf("line %d: Index = %d", i, line.Index)
				}
				got = append(got, line.Text)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("lines (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLineTooLong(t *testing.T) {
	input := strings.Repeat("x", 2*1024*1024)
	_, err := NewParser(strings.NewReader(input)).Blocks()
	if err == nil {
		t.Fatal("Blocks() did not return an error")
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("Blocks() error = %v; want to mention line 1", err)
	}
}

func TestReadError(t *testing.T) {
	readErr := errors.New("bork")
	_, err := NewParser(iotest.ErrReader(readErr)).Blocks()
	if !errors.Is(err, readErr) {
		t.Errorf("Blocks() = _, %v; want %v", err, readErr)
	}
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     []*Block
	}{
		{
			name:     "HeadingAndParagraph",
			markdown: "# Title\n\nSome text.",
			want: []*Block{
				{Kind: HeadingKind, Level: 1, Text: "Title", Lines: lines(0)},
				{Kind: BlankKind, Lines: lines(1)},
				{Kind: ParagraphKind, Text: "Some text.", Lines: lines(2)},
			},
		},
		{
			name:     "ParagraphReflow",
			markdown: "one\n  two  \nthree",
			want: []*Block{
				{Kind: ParagraphKind, Text: "one two three", Lines: lines(0, 1, 2)},
			},
		},
		{
			name:     "BlankRunsCollapse",
			markdown: "a\n\n\n\nb",
			want: []*Block{
				{Kind: ParagraphKind, Text: "a", Lines: lines(0)},
				{Kind: BlankKind, Lines: lines(1, 2, 3)},
				{Kind: ParagraphKind, Text: "b", Lines: lines(4)},
			},
		},
		{
			name:     "QuoteThenParagraph",
			markdown: "> q1\n>q2\n>\ntext",
			want: []*Block{
				{Kind: BlockQuoteKind, Text: "q1 q2", Lines: lines(0, 1, 2)},
				{Kind: ParagraphKind, Text: "text", Lines: lines(3)},
			},
		},
		{
			name:     "ListItemsNeverExtend",
			markdown: "- a\n- b\n+ c",
			want: []*Block{
				{Kind: ListItemKind, Marker: '-', Text: "a", Lines: lines(0)},
				{Kind: ListItemKind, Marker: '-', Text: "b", Lines: lines(1)},
				{Kind: ListItemKind, Marker: '+', Text: "c", Lines: lines(2)},
			},
		},
		{
			name:     "HeadingsNeverExtend",
			markdown: "# a\n## b",
			want: []*Block{
				{Kind: HeadingKind, Level: 1, Text: "a", Lines: lines(0)},
				{Kind: HeadingKind, Level: 2, Text: "b", Lines: lines(1)},
			},
		},
		{
			name:     "Fence",
			markdown: "text\n```python extra\n# not a heading\n\n> not a quote\n```\nafter",
			want: []*Block{
				{Kind: ParagraphKind, Text: "text", Lines: lines(0)},
				{
					Kind:   FencedCodeKind,
					Info:   "python",
					Text:   "# not a heading\n\n> not a quote",
					Lines:  lines(1, 2, 3, 4, 5),
					Closed: true,
				},
				{Kind: ParagraphKind, Text: "after", Lines: lines(6)},
			},
		},
		{
			name:     "UnterminatedFence",
			markdown: "```\ncode",
			want: []*Block{
				{Kind: FencedCodeKind, Text: "code", Lines: lines(0, 1)},
			},
		},
		{
			name:     "FenceClosedByLongerRun",
			markdown: "```\nx\n`````",
			want: []*Block{
				{Kind: FencedCodeKind, Text: "x", Lines: lines(0, 1, 2), Closed: true},
			},
		},
		{
			name:     "FenceNotClosedByInfo",
			markdown: "```\n``` go\n```",
			want: []*Block{
				{Kind: FencedCodeKind, Text: "``` go", Lines: lines(0, 1, 2), Closed: true},
			},
		},
		{
			name:     "IndentedCodeLine",
			markdown: "    x = 1",
			want: []*Block{
				{Kind: ParagraphKind, Text: "x = 1", Lines: lines(0)},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Parse([]byte(test.markdown))
			// Only compare line indices.
			opt := cmp.Transformer("indices", func(lines []Line) []int {
				var idx []int
				for _, l := range lines {
					idx = append(idx, l.Index)
				}
				return idx
			})
			if diff := cmp.Diff(test.want, got, opt); diff != "" {
				t.Errorf("Parse(%q) (-want +got):\n%s", test.markdown, diff)
			}
		})
	}
}

func lines(indices ...int) []Line {
	result := make([]Line, 0, len(indices))
	for _, i := range indices {
		result = append(result, Line{Index: i})
	}
	return result
}

func TestSegmentErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
		want  *ParseInternalError
	}{
		{
			name:  "Negative",
			lines: []Line{{Text: "x", Index: -1}},
			want:  &ParseInternalError{Line: -1, Reason: "negative line index"},
		},
		{
			name:  "Repeated",
			lines: []Line{{Text: "x", Index: 0}, {Text: "y", Index: 0}},
			want:  &ParseInternalError{Line: 0, Reason: "out of order after line 0"},
		},
		{
			name:  "Backwards",
			lines: []Line{{Text: "x", Index: 3}, {Text: "y", Index: 1}},
			want:  &ParseInternalError{Line: 1, Reason: "out of order after line 3"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			blocks, err := Segment(test.lines)
			var got *ParseInternalError
			if !errors.As(err, &got) {
				t.Fatalf("Segment(...) = %v, %v; want *ParseInternalError", blocks, err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("error (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSegmentGaps(t *testing.T) {
	// Line indices only need to increase.
	blocks, err := Segment([]Line{{Text: "a", Index: 2}, {Text: "b", Index: 7}})
	if err != nil {
		t.Fatal(err)
	}
	want := []*Block{{Kind: ParagraphKind, Text: "a b", Lines: []Line{{Text: "a", Index: 2}, {Text: "b", Index: 7}}}}
	if diff := cmp.Diff(want, blocks); diff != "" {
		t.Errorf("Segment(...) (-want +got):\n%s", diff)
	}
	if got, want := blocks[0].Span(), (Span{2, 8}); got != want {
		t.Errorf("Span() = %v; want %v", got, want)
	}
}

func FuzzBlockParsing(f *testing.F) {
	examples, err := golden.Load()
	if err != nil {
		f.Fatal(err)
	}
	for _, ex := range examples {
		f.Add(ex.Markdown)
	}
	f.Add(golden.Sample())

	f.Fuzz(func(t *testing.T, markdown string) {
		if !utf8.ValidString(markdown) {
			t.Skip("Invalid UTF-8")
		}
		p := NewParser(strings.NewReader(markdown))
		var allLines []Line
		for {
			line, err := p.NextLine()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatal(err)
			}
			allLines = append(allLines, line)
		}
		blocks, err := Segment(allLines)
		if err != nil {
			t.Fatal(err)
		}

		// Every line belongs to exactly one block, in order.
		var gotLines []Line
		for i, b := range blocks {
			if len(b.Lines) == 0 {
				t.Errorf("blocks[%d] has no lines", i)
			}
			if i > 0 && b.Kind == blocks[i-1].Kind && b.Kind.extends(b.Kind) {
				t.Errorf("blocks[%d] and blocks[%d] are both %v", i-1, i, b.Kind)
			}
			if b.Kind != FencedCodeKind && b.Closed {
				t.Errorf("blocks[%d] is a closed %v", i, b.Kind)
			}
			gotLines = append(gotLines, b.Lines...)
		}
		if diff := cmp.Diff(allLines, gotLines, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("block lines (-want +got):\n%s", diff)
		}
	})
}
