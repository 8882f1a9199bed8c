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

package format

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"zombiezen.com/go/mddocx"
	"zombiezen.com/go/mddocx/internal/golden"
	"zombiezen.com/go/mddocx/internal/recorder"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "Empty",
			markdown: "",
			want:     "",
		},
		{
			name:     "Reflow",
			markdown: "\n\n# Title #\n\nSome\n   text.\n\n\n",
			want:     "# Title\n\nSome text.\n",
		},
		{
			name:     "EmptyHeading",
			markdown: "##",
			want:     "##\n",
		},
		{
			name:     "Quote",
			markdown: ">one\n> two\n>",
			want:     "> one two\n",
		},
		{
			name:     "EmptyQuote",
			markdown: ">",
			want:     ">\n",
		},
		{
			name:     "List",
			markdown: "* a\n\n+ b\ntext",
			want:     "* a\n+ b\n\ntext\n",
		},
		{
			name:     "EmptyListItem",
			markdown: "- ",
			want:     "- \n",
		},
		{
			name:     "Code",
			markdown: "````python extra\n>>> x\n\n````",
			want:     "```python\n>>> x\n\n```\n",
		},
		{
			name:     "CodeWithFence",
			markdown: "````\n```\n````",
			want:     "````\n```\n````\n",
		},
		{
			name:     "EmptyCode",
			markdown: "```\n```",
			want:     "```\n```\n",
		},
		{
			name:     "UnterminatedFence",
			markdown: "```\ncode",
			want:     "```\ncode\n```\n",
		},
		{
			name:     "IndentedMarker",
			markdown: "    # not a heading\n\n    - not a list",
			want:     "\\# not a heading\n\n\\- not a list\n",
		},
		{
			name:     "ThematicBreak",
			markdown: "* * *",
			want:     "* * *\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := new(strings.Builder)
			if err := Format(got, mddocx.Parse([]byte(test.markdown))); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, got.String()); diff != "" {
				t.Errorf("Format(Parse(%q)) (-want +got):\n%s", test.markdown, diff)
			}
		})
	}
}

func TestFormatWriteError(t *testing.T) {
	writeErr := errors.New("bork")
	err := Format(failWriter{writeErr}, mddocx.Parse([]byte("# Title\n\nText")))
	if !errors.Is(err, writeErr) {
		t.Errorf("Format(...) = %v; want %v", err, writeErr)
	}
}

type failWriter struct {
	err error
}

func (w failWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

func TestFenceLength(t *testing.T) {
	tests := []struct {
		lines []string
		want  int
	}{
		{nil, 3},
		{[]string{"x"}, 3},
		{[]string{"``"}, 3},
		{[]string{"```"}, 4},
		{[]string{"  `````x"}, 6},
	}
	for _, test := range tests {
		if got := fenceLength(test.lines); got != test.want {
			t.Errorf("fenceLength(%q) = %d; want %d", test.lines, got, test.want)
		}
	}
}

func FuzzFormat(f *testing.F) {
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
		blocks := mddocx.Parse([]byte(markdown))
		original, err := convert(blocks)
		if err != nil {
			t.Skip("Original does not convert:", err)
		}

		got := new(bytes.Buffer)
		if err := Format(got, blocks); err != nil {
			t.Fatal("Format #1:", err)
		}
		formattedBlocks := mddocx.Parse(got.Bytes())
		formatted, err := convert(formattedBlocks)
		if err != nil {
			t.Fatal("Convert formatted:", err)
		}
		if diff := cmp.Diff(original, formatted); diff != "" {
			t.Errorf("Reformatting changed the document. Original:\n%s\nReformatting:\n%s\nDiff (-want +got):\n%s", markdown, got, diff)
		}

		reformatted := new(bytes.Buffer)
		if err := Format(reformatted, formattedBlocks); err != nil {
			t.Error("Format #2:", err)
		}
		if diff := cmp.Diff(got.String(), reformatted.String()); diff != "" {
			t.Errorf("Format not idempotent (-first +second):\n%s", diff)
		}
	})
}

func convert(blocks []*mddocx.Block) ([]recorder.Element, error) {
	backend := new(recorder.Backend)
	if err := mddocx.NewBuilder(backend, nil).Build(blocks); err != nil {
		return nil, err
	}
	return backend.Elements, nil
}
