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

import "strings"

// tabStopSize is the multiple of columns that a tab advances to.
const tabStopSize = 4

// markerIndentLimit is the widest indent at which a line
// may still begin with a block marker.
// Anything indented further is paragraph text.
const markerIndentLimit = 3

// minFenceLength is the number of backticks required to open a fenced code block.
const minFenceLength = 3

// lineClass is the result of classifying a single [Line].
type lineClass struct {
	kind BlockKind
	// fence is true if the line opens or closes a fenced code block.
	// kind is FencedCodeKind for both fence delimiters and code content.
	fence   bool
	level   int
	marker  byte
	info    fenceSpec
	content string
}

type fenceSpec struct {
	length   int
	language string
}

// classifyLine determines the block kind of a line.
// open is the fence of the enclosing fenced code block,
// or nil if the line is not inside one.
// classifyLine never fails:
// anything that is not recognized is paragraph text.
func classifyLine(line Line, open *fenceSpec) lineClass {
	if open != nil {
		if line.Indent <= markerIndentLimit && isClosingFence(trimIndent(line.Text), open.length) {
			return lineClass{kind: FencedCodeKind, fence: true}
		}
		return lineClass{kind: FencedCodeKind, content: line.Text}
	}
	if isBlankLine(line.Text) {
		return lineClass{kind: BlankKind}
	}
	trimmed := trimIndent(line.Text)
	if line.Indent > markerIndentLimit {
		return lineClass{kind: ParagraphKind, content: strings.TrimSpace(trimmed)}
	}

	if end := parseBlockQuote(trimmed); end >= 0 {
		return lineClass{kind: BlockQuoteKind, content: strings.TrimSpace(trimmed[end:])}
	}
	if h := parseATXHeading(trimmed); h.level > 0 {
		return lineClass{
			kind:    HeadingKind,
			level:   h.level,
			content: trimmed[h.contentStart:h.contentEnd],
		}
	}
	if f, ok := parseFence(trimmed); ok {
		return lineClass{kind: FencedCodeKind, fence: true, info: f}
	}
	if parseThematicBreak(trimmed) < 0 {
		if marker, start := parseListMarker(trimmed); start >= 0 {
			return lineClass{
				kind:    ListItemKind,
				marker:  marker,
				content: strings.TrimSpace(trimmed[start:]),
			}
		}
	}
	return lineClass{kind: ParagraphKind, content: strings.TrimSpace(trimmed)}
}

// parseBlockQuote attempts to parse a block quote marker from the beginning of the line.
// It returns the end of the block quote marker
// or -1 if the line does not begin with the marker.
// parseBlockQuote assumes that the caller has stripped any leading indentation.
func parseBlockQuote(line string) (end int) {
	if len(line) == 0 || line[0] != '>' {
		return -1
	}
	if len(line) > 1 && (line[1] == ' ' || line[1] == '\t') {
		return 2
	}
	return 1
}

type atxHeading struct {
	level        int // 1-6
	contentStart int
	contentEnd   int
}

// parseATXHeading attempts to parse the line as an ATX heading.
// The level is zero if the line is not an ATX heading,
// which includes lines that start with more than six hashmarks.
// parseATXHeading assumes that the caller has stripped any leading indentation.
func parseATXHeading(line string) atxHeading {
	var h atxHeading
	for h.level < len(line) && line[h.level] == '#' {
		h.level++
	}
	if h.level == 0 || h.level > 6 {
		return atxHeading{}
	}

	// Consume required whitespace before heading.
	i := h.level
	if i >= len(line) {
		h.contentStart = i
		h.contentEnd = i
		return h
	}
	if !(line[i] == ' ' || line[i] == '\t') {
		return atxHeading{}
	}
	i++

	// Advance past leading whitespace.
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	h.contentStart = i

	// Find end of heading line. Skip past trailing spaces.
	h.contentEnd = len(line)
	hitHash := false
scanBack:
	for ; h.contentEnd > h.contentStart; h.contentEnd-- {
		switch line[h.contentEnd-1] {
		case ' ', '\t':
			if isEndEscaped(line[:h.contentEnd-1]) {
				break scanBack
			}
		case '#':
			hitHash = true
			break scanBack
		default:
			break scanBack
		}
	}
	if !hitHash {
		return h
	}

	// We've encountered one hashmark '#'.
	// Consume all of them, unless they are preceded by a space or tab.
scanTrailingHashes:
	for i := h.contentEnd - 1; ; i-- {
		if i < h.contentStart {
			h.contentEnd = h.contentStart
			break
		}
		switch line[i] {
		case '#':
			// Keep going.
		case ' ', '\t':
			h.contentEnd = i + 1
			break scanTrailingHashes
		default:
			return h
		}
	}
	// We've hit the end of hashmarks. Trim trailing whitespace.
	for ; h.contentEnd > h.contentStart; h.contentEnd-- {
		if b := line[h.contentEnd-1]; !(b == ' ' || b == '\t') || isEndEscaped(line[:h.contentEnd-1]) {
			break
		}
	}
	return h
}

// parseFence attempts to parse the line as an opening code fence:
// three or more backticks optionally followed by an info string.
// The language is the first word of the info string.
func parseFence(line string) (fenceSpec, bool) {
	n := countLeading(line, '`')
	if n < minFenceLength {
		return fenceSpec{}, false
	}
	info := strings.TrimSpace(line[n:])
	if strings.IndexByte(info, '`') >= 0 {
		// Backticks in the info string mean this is a code span.
		return fenceSpec{}, false
	}
	f := fenceSpec{length: n}
	if words := strings.Fields(info); len(words) > 0 {
		f.language = words[0]
	}
	return f, true
}

// isClosingFence reports whether the line closes a fence
// that was opened with n backticks.
func isClosingFence(line string, n int) bool {
	run := countLeading(line, '`')
	return run >= n && isBlankLine(line[run:])
}

// parseListMarker attempts to parse a bullet list marker
// from the beginning of the line.
// It returns the marker character and the start of the item's content,
// or -1 if the line does not begin with a bullet.
// Ordered list markers are not recognized.
func parseListMarker(line string) (marker byte, contentStart int) {
	if len(line) < 2 {
		return 0, -1
	}
	switch line[0] {
	case '-', '*', '+':
	default:
		return 0, -1
	}
	if line[1] != ' ' && line[1] != '\t' {
		return 0, -1
	}
	return line[0], 2
}

// parseThematicBreak attempts to parse the line as a thematic break.
// It returns the end of the thematic break characters
// or -1 if the line is not a thematic break.
// Thematic breaks are only detected so that lines like "* * *"
// are not mistaken for list items.
func parseThematicBreak(line string) (end int) {
	n := 0
	var want byte
	for i := 0; i < len(line); i++ {
		switch b := line[i]; b {
		case '-', '_', '*':
			if n == 0 {
				want = b
			} else if b != want {
				return -1
			}
			n++
			end = i + 1
		case ' ', '\t':
			// Ignore
		default:
			return -1
		}
	}
	if n < 3 {
		return -1
	}
	return end
}

// indentWidth returns the number of columns of leading whitespace in line.
func indentWidth(line string) int {
	indent := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			indent++
		case '\t':
			indent += tabStopSize - indent%tabStopSize
		default:
			return indent
		}
	}
	return indent
}

func trimIndent(line string) string {
	return strings.TrimLeft(line, " \t")
}

func isBlankLine(line string) bool {
	for i := 0; i < len(line); i++ {
		if b := line[i]; !(b == '\r' || b == '\n' || b == ' ' || b == '\t') {
			return false
		}
	}
	return true
}

func countLeading(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

// isEndEscaped reports whether s ends with an odd number of backslashes.
func isEndEscaped(s string) bool {
	n := 0
	for ; n < len(s); n++ {
		if s[len(s)-n-1] != '\\' {
			break
		}
	}
	return n%2 == 1
}
