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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		text string
		open *fenceSpec
		want lineClass
	}{
		{"", nil, lineClass{kind: BlankKind}},
		{" \t ", nil, lineClass{kind: BlankKind}},
		{"Hello", nil, lineClass{kind: ParagraphKind, content: "Hello"}},
		{"  Hello  ", nil, lineClass{kind: ParagraphKind, content: "Hello"}},
		{"    # code-ish", nil, lineClass{kind: ParagraphKind, content: "# code-ish"}},
		{"\t- item", nil, lineClass{kind: ParagraphKind, content: "- item"}},
		{"# Title", nil, lineClass{kind: HeadingKind, level: 1, content: "Title"}},
		{"   ### Deep ###", nil, lineClass{kind: HeadingKind, level: 3, content: "Deep"}},
		{"######", nil, lineClass{kind: HeadingKind, level: 6}},
		{"####### Seven", nil, lineClass{kind: ParagraphKind, content: "####### Seven"}},
		{"#NoSpace", nil, lineClass{kind: ParagraphKind, content: "#NoSpace"}},
		{"> quoted", nil, lineClass{kind: BlockQuoteKind, content: "quoted"}},
		{">tight", nil, lineClass{kind: BlockQuoteKind, content: "tight"}},
		{">", nil, lineClass{kind: BlockQuoteKind}},
		{"- item", nil, lineClass{kind: ListItemKind, marker: '-', content: "item"}},
		{"* item", nil, lineClass{kind: ListItemKind, marker: '*', content: "item"}},
		{"+\titem", nil, lineClass{kind: ListItemKind, marker: '+', content: "item"}},
		{"-item", nil, lineClass{kind: ParagraphKind, content: "-item"}},
		{"1. ordered", nil, lineClass{kind: ParagraphKind, content: "1. ordered"}},
		{"* * *", nil, lineClass{kind: ParagraphKind, content: "* * *"}},
		{"- - -", nil, lineClass{kind: ParagraphKind, content: "- - -"}},
		{"```", nil, lineClass{kind: FencedCodeKind, fence: true, info: fenceSpec{length: 3}}},
		{
			"```python extra words",
			nil,
			lineClass{kind: FencedCodeKind, fence: true, info: fenceSpec{length: 3, language: "python"}},
		},
		{"````", nil, lineClass{kind: FencedCodeKind, fence: true, info: fenceSpec{length: 4}}},
		{"``", nil, lineClass{kind: ParagraphKind, content: "``"}},
		{"``` a`b", nil, lineClass{kind: ParagraphKind, content: "``` a`b"}},

		// Inside a fence.
		{"```", &fenceSpec{length: 3}, lineClass{kind: FencedCodeKind, fence: true}},
		{"   ````  ", &fenceSpec{length: 3}, lineClass{kind: FencedCodeKind, fence: true}},
		{"```", &fenceSpec{length: 4}, lineClass{kind: FencedCodeKind, content: "```"}},
		{"``` go", &fenceSpec{length: 3}, lineClass{kind: FencedCodeKind, content: "``` go"}},
		{"    ```", &fenceSpec{length: 3}, lineClass{kind: FencedCodeKind, content: "    ```"}},
		{"# not a heading", &fenceSpec{length: 3}, lineClass{kind: FencedCodeKind, content: "# not a heading"}},
		{"", &fenceSpec{length: 3}, lineClass{kind: FencedCodeKind}},
	}
	for _, test := range tests {
		line := Line{Text: test.text, Indent: indentWidth(test.text)}
		got := classifyLine(line, test.open)
		if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(lineClass{}, fenceSpec{})); diff != "" {
			t.Errorf("classifyLine(%q, %+v) (-want +got):\n%s", test.text, test.open, diff)
		}
	}
}

func TestParseATXHeading(t *testing.T) {
	tests := []struct {
		line      string
		wantLevel int
		want      string
	}{
		{"# foo", 1, "foo"},
		{"## foo", 2, "foo"},
		{"###### foo", 6, "foo"},
		{"####### foo", 0, ""},
		{"#5 bolt", 0, ""},
		{"#", 1, ""},
		{"# foo ##", 1, "foo"},
		{"# foo ##########", 1, "foo"},
		{"### foo ###   ", 3, "foo"},
		{"# foo#", 1, "foo#"},
		{"### foo \\###", 3, "foo \\###"},
		{"# #", 1, ""},
		{"#\tfoo", 1, "foo"},
	}
	for _, test := range tests {
		h := parseATXHeading(test.line)
		if h.level != test.wantLevel {
			t.Errorf("parseATXHeading(%q).level = %d; want %d", test.line, h.level, test.wantLevel)
			continue
		}
		if h.level == 0 {
			continue
		}
		if got := test.line[h.contentStart:h.contentEnd]; got != test.want {
			t.Errorf("parseATXHeading(%q) content = %q; want %q", test.line, got, test.want)
		}
	}
}

func TestIsClosingFence(t *testing.T) {
	tests := []struct {
		line string
		n    int
		want bool
	}{
		{"```", 3, true},
		{"`````", 3, true},
		{"```  \t", 3, true},
		{"``", 3, false},
		{"````", 5, false},
		{"``` x", 3, false},
		{"", 3, false},
	}
	for _, test := range tests {
		if got := isClosingFence(test.line, test.n); got != test.want {
			t.Errorf("isClosingFence(%q, %d) = %t; want %t", test.line, test.n, got, test.want)
		}
	}
}

func TestParseThematicBreak(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"***", 3},
		{"---", 3},
		{"___", 3},
		{"* * *", 5},
		{"-  -  -  ", 7},
		{"**", -1},
		{"*-*", -1},
		{"--- a", -1},
	}
	for _, test := range tests {
		if got := parseThematicBreak(test.line); got != test.want {
			t.Errorf("parseThematicBreak(%q) = %d; want %d", test.line, got, test.want)
		}
	}
}

func TestIndentWidth(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"", 0},
		{"x", 0},
		{"  x", 2},
		{"\tx", 4},
		{"  \tx", 4},
		{"    \tx", 8},
		{"   ", 3},
	}
	for _, test := range tests {
		if got := indentWidth(test.line); got != test.want {
			t.Errorf("indentWidth(%q) = %d; want %d", test.line, got, test.want)
		}
	}
}

func TestIsEndEscaped(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"", false},
		{`a\`, true},
		{`a\\`, false},
		{`\\\`, true},
	}
	for _, test := range tests {
		if got := isEndEscaped(test.s); got != test.want {
			t.Errorf("isEndEscaped(%q) = %t; want %t", test.s, got, test.want)
		}
	}
}
