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
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A Run is a contiguous span of inline text that shares one style.
type Run struct {
	// Text is the text to display,
	// with any Markdown delimiters removed.
	Text  string
	Style RunStyle
	// Source is the byte range of [Block.Text] the run was produced from,
	// delimiters included.
	// The sources of a block's runs are adjacent and cover the whole text.
	Source Span
}

// RunStyle is an enumeration of character-level styles.
type RunStyle uint8

const (
	Plain RunStyle = iota
	Emphasis
	InlineCode
	// Code is a line of a fenced code block.
	Code
	// Input is a prompted line of an interactive example.
	Input
	// Output is a non-prompted line of an interactive example.
	Output
)

func (style RunStyle) String() string {
	switch style {
	case Plain:
		return "Plain"
	case Emphasis:
		return "Emphasis"
	case InlineCode:
		return "InlineCode"
	case Code:
		return "Code"
	case Input:
		return "Input"
	case Output:
		return "Output"
	default:
		return fmt.Sprintf("RunStyle(%d)", uint8(style))
	}
}

// FormatInline splits the text of a non-code block into runs.
// text is the block's reflowed [Block.Text],
// so a code span or emphasis may pair delimiters
// that came from different source lines of the same block.
// Code spans take priority over emphasis when both start at the same offset,
// and the leftmost span always wins.
// Delimiters that are never closed are kept as plain text.
func FormatInline(text string) []Run {
	state := &inlineState{source: text}
	for pos := 0; pos < len(text); {
		switch c := text[pos]; c {
		case '`':
			cs, ok := parseCodeSpan(text, pos)
			if !ok {
				// Advance past literal backtick string.
				n := countLeading(text[pos:], '`')
				state.plain = append(state.plain, text[pos:pos+n]...)
				pos += n
				continue
			}
			state.flush(pos)
			state.add(Run{
				Text:   text[cs.contentStart:cs.contentEnd],
				Style:  InlineCode,
				Source: Span{Start: cs.start, End: cs.end},
			})
			pos = cs.end
		case '*', '_':
			em, ok := parseEmphasis(text, pos)
			if !ok {
				n := countLeading(text[pos:], c)
				state.plain = append(state.plain, text[pos:pos+n]...)
				pos += n
				continue
			}
			state.flush(pos)
			state.add(Run{
				Text:   text[em.contentStart:em.contentEnd],
				Style:  Emphasis,
				Source: Span{Start: em.start, End: em.end},
			})
			pos = em.end
		case '\\':
			if pos+1 < len(text) && isASCIIPunctuation(text[pos+1]) {
				state.plain = append(state.plain, text[pos+1])
				pos += 2
			} else {
				state.plain = append(state.plain, c)
				pos++
			}
		default:
			end := pos + 1
			for end < len(text) && !isInlineSpecial(text[end]) {
				end++
			}
			state.plain = append(state.plain, text[pos:end]...)
			pos = end
		}
	}
	state.flush(len(text))
	return state.runs
}

type inlineState struct {
	source     string
	runs       []Run
	plain      []byte // pending plain text
	plainStart int    // offset in source where the pending plain text begins
}

// flush emits any pending plain text as a run ending at end.
func (state *inlineState) flush(end int) {
	if end > state.plainStart {
		state.add(Run{
			Text:   string(state.plain),
			Style:  Plain,
			Source: Span{Start: state.plainStart, End: end},
		})
	}
	state.plain = state.plain[:0]
	state.plainStart = end
}

func (state *inlineState) add(r Run) {
	state.runs = append(state.runs, r)
	state.plainStart = r.Source.End
}

func isInlineSpecial(c byte) bool {
	return c == '`' || c == '*' || c == '_' || c == '\\'
}

type inlineSpan struct {
	start        int
	contentStart int
	contentEnd   int
	end          int
}

// parseCodeSpan attempts to parse a code span starting at the backtick run at start.
// The span is closed by the next backtick run of the same length.
func parseCodeSpan(source string, start int) (inlineSpan, bool) {
	n := countLeading(source[start:], '`')
	for i := start + n; i < len(source); {
		if source[i] != '`' {
			i++
			continue
		}
		m := countLeading(source[i:], '`')
		if m != n {
			i += m
			continue
		}
		cs := inlineSpan{
			start:        start,
			contentStart: start + n,
			contentEnd:   i,
			end:          i + m,
		}
		content := source[cs.contentStart:cs.contentEnd]
		if len(content) >= 2 && content[0] == ' ' && content[len(content)-1] == ' ' && !isOnlySpaces(content) {
			cs.contentStart++
			cs.contentEnd--
		}
		return cs, true
	}
	return inlineSpan{}, false
}

// maxEmphasisRun is the longest delimiter run that can open emphasis.
const maxEmphasisRun = 3

// parseEmphasis attempts to parse an emphasis span
// starting at the delimiter run at start.
// The span is closed by the next run of the same character and length
// that can close emphasis.
// The content is not scanned for further spans.
func parseEmphasis(source string, start int) (inlineSpan, bool) {
	c := source[start]
	n := countLeading(source[start:], c)
	if n > maxEmphasisRun || emphasisFlags(source, start, start+n)&openerFlag == 0 {
		return inlineSpan{}, false
	}
	for i := start + n; i < len(source); {
		switch source[i] {
		case '\\':
			i += 2
			continue
		case c:
		default:
			i++
			continue
		}
		m := countLeading(source[i:], c)
		if m == n && i > start+n && emphasisFlags(source, i, i+m)&closerFlag != 0 {
			return inlineSpan{
				start:        start,
				contentStart: start + n,
				contentEnd:   i,
				end:          i + m,
			}, true
		}
		i += m
	}
	return inlineSpan{}, false
}

const (
	openerFlag = 1 << iota
	closerFlag
)

// emphasisFlags determines whether the given delimiter run
// can open emphasis and/or can close emphasis,
// following the CommonMark flanking rules.
// Underscores inside a word can neither open nor close.
func emphasisFlags(source string, start, end int) uint8 {
	var flags uint8
	prevChar := ' '
	if start > 0 {
		prevChar, _ = utf8.DecodeLastRuneInString(source[:start])
	}
	nextChar := ' '
	if end < len(source) {
		nextChar, _ = utf8.DecodeRuneInString(source[end:])
	}
	leftFlanking := !isUnicodeWhitespace(nextChar) &&
		(!isUnicodePunctuation(nextChar) || isUnicodeWhitespace(prevChar) || isUnicodePunctuation(prevChar))
	rightFlanking := !isUnicodeWhitespace(prevChar) &&
		(!isUnicodePunctuation(prevChar) || isUnicodeWhitespace(nextChar) || isUnicodePunctuation(nextChar))
	if leftFlanking && (source[start] == '*' || !rightFlanking || isUnicodePunctuation(prevChar)) {
		flags |= openerFlag
	}
	if rightFlanking && (source[start] == '*' || !leftFlanking || isUnicodePunctuation(nextChar)) {
		flags |= closerFlag
	}
	return flags
}

func isUnicodeWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\f' || c == '\r' || unicode.Is(unicode.Zs, c)
}

func isUnicodePunctuation(c rune) bool {
	if c < utf8.RuneSelf {
		return isASCIIPunctuation(byte(c))
	}
	return unicode.IsPunct(c)
}

func isASCIIPunctuation(c byte) bool {
	return '!' <= c && c <= '/' ||
		':' <= c && c <= '@' ||
		'[' <= c && c <= '`' ||
		'{' <= c && c <= '~'
}

func isOnlySpaces(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			return false
		}
	}
	return true
}

// A RunGroup is a sequence of consecutive code lines that share one style.
type RunGroup struct {
	Style RunStyle
	Runs  []Run
}

// DefaultTranscriptLanguages is the set of fenced code language tags
// whose blocks are checked for interactive examples.
var DefaultTranscriptLanguages = []string{"python", "py", "python3", "pycon", "pytb", "doctest"}

// Prompts that mark the input lines of an interactive example.
const (
	primaryPrompt      = ">>>"
	continuationPrompt = "..."
)

// SplitCode splits the text of a fenced code block into runs.
// Code runs do not reflow: each line becomes one run
// whose text keeps its line break,
// except for the last line of a group.
//
// If transcript is true and the code contains at least one prompted line,
// lines are grouped into alternating [Input] and [Output] groups.
// Otherwise, SplitCode returns a single [Code] group.
func SplitCode(code string, transcript bool) []RunGroup {
	if code == "" {
		return []RunGroup{{Style: Code}}
	}
	lines := strings.SplitAfter(code, "\n")
	styleOf := func(string) RunStyle { return Code }
	if transcript && hasPrompt(lines) {
		styleOf = func(line string) RunStyle {
			if isPromptLine(line) {
				return Input
			}
			return Output
		}
	}

	var groups []RunGroup
	pos := 0
	for _, line := range lines {
		style := styleOf(line)
		if len(groups) == 0 || groups[len(groups)-1].Style != style {
			groups = append(groups, RunGroup{Style: style})
		}
		g := &groups[len(groups)-1]
		g.Runs = append(g.Runs, Run{
			Text:   line,
			Style:  style,
			Source: Span{Start: pos, End: pos + len(line)},
		})
		pos += len(line)
	}
	for i := range groups {
		last := &groups[i].Runs[len(groups[i].Runs)-1]
		last.Text = strings.TrimSuffix(last.Text, "\n")
	}
	return groups
}

// IsTranscriptLanguage reports whether lang matches one of langs,
// ignoring case.
func IsTranscriptLanguage(lang string, langs []string) bool {
	for _, l := range langs {
		if strings.EqualFold(lang, l) {
			return true
		}
	}
	return false
}

func hasPrompt(lines []string) bool {
	for _, line := range lines {
		if isPromptLine(line) {
			return true
		}
	}
	return false
}

// isPromptLine reports whether the line starts with an interactive prompt
// followed by whitespace or the end of the line.
func isPromptLine(line string) bool {
	line = trimIndent(line)
	for _, prompt := range []string{primaryPrompt, continuationPrompt} {
		if !strings.HasPrefix(line, prompt) {
			continue
		}
		rest := line[len(prompt):]
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n' || rest[0] == '\r' {
			return true
		}
	}
	return false
}
