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

// Package format provides a function to format a Markdown file
// that converts to the same document as the original Markdown.
package format

import (
	"io"
	"strings"

	"zombiezen.com/go/mddocx"
)

// Format writes the given blocks as Markdown to the given writer.
// Paragraphs and block quotes are written on a single line,
// blocks are separated by a single blank line,
// and consecutive list items are kept together.
func Format(w io.Writer, blocks []*mddocx.Block) error {
	ww := &errWriter{w: w}
	var prev *mddocx.Block
	for _, b := range blocks {
		if b.Kind == mddocx.BlankKind {
			continue
		}
		if prev != nil && !(prev.Kind == mddocx.ListItemKind && b.Kind == mddocx.ListItemKind) {
			ww.WriteString("\n")
		}
		writeBlock(ww, b)
		prev = b
	}
	return ww.err
}

func writeBlock(w *errWriter, b *mddocx.Block) {
	switch b.Kind {
	case mddocx.HeadingKind:
		w.WriteString(strings.Repeat("#", b.Level))
		if b.Text != "" {
			w.WriteString(" ")
			w.WriteString(b.Text)
		}
		w.WriteString("\n")
	case mddocx.BlockQuoteKind:
		w.WriteString(">")
		if b.Text != "" {
			w.WriteString(" ")
			w.WriteString(b.Text)
		}
		w.WriteString("\n")
	case mddocx.ListItemKind:
		// The space is required even for empty items.
		w.Write([]byte{b.Marker, ' '})
		w.WriteString(b.Text)
		w.WriteString("\n")
	case mddocx.FencedCodeKind:
		content := codeLines(b)
		fence := strings.Repeat("`", fenceLength(content))
		w.WriteString(fence)
		w.WriteString(b.Info)
		w.WriteString("\n")
		for _, line := range content {
			w.WriteString(line)
			w.WriteString("\n")
		}
		w.WriteString(fence)
		w.WriteString("\n")
	default:
		writeParagraph(w, b.Text)
	}
}

// writeParagraph writes paragraph text,
// escaping its first character if the text would otherwise start another kind of block.
func writeParagraph(w *errWriter, text string) {
	if blocks := mddocx.Parse([]byte(text)); len(blocks) != 1 || blocks[0].Kind != mddocx.ParagraphKind {
		w.WriteString(`\`)
	}
	w.WriteString(text)
	w.WriteString("\n")
}

// codeLines returns the content lines of a fenced code block
// without its fence delimiters.
func codeLines(b *mddocx.Block) []string {
	if len(b.Lines) == 0 {
		return nil
	}
	lines := b.Lines[1:]
	if b.Closed && len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}
	content := make([]string, 0, len(lines))
	for _, line := range lines {
		content = append(content, line.Text)
	}
	return content
}

// fenceLength returns the number of backticks needed for a fence
// that none of the given lines would close.
func fenceLength(lines []string) int {
	n := 3
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		run := 0
		for run < len(trimmed) && trimmed[run] == '`' {
			run++
		}
		if run >= n {
			n = run + 1
		}
	}
	return n
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = w.w.Write(p)
	return n, w.err
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	return n, w.err
}
