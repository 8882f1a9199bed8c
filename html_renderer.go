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
	"io"
	"os"
	"path/filepath"

	"golang.org/x/net/html/atom"
)

// An HTMLBackend is a [Backend] that renders the document as HTML.
// It is intended for previewing a conversion:
// every style maps to a fixed element,
// so the output only uses a small set of tags.
type HTMLBackend struct {
	// If Standalone is true, the output is a complete HTML document
	// with the title in its head.
	// Otherwise, only the body's content is rendered.
	Standalone bool

	elements []htmlElement
	title    string
	subtitle string
}

type htmlElement struct {
	style string
	level int
	runs  []htmlRun
}

type htmlRun struct {
	text  string
	style string
}

// htmlParagraphStyles maps paragraph style names to their element
// and class attribute.
var htmlParagraphStyles = map[string]struct {
	tag   atom.Atom
	class string
}{
	"Normal":      {atom.P, ""},
	"Quote":       {atom.Blockquote, ""},
	"List Bullet": {atom.Li, ""},
	"Code":        {atom.Pre, ""},
	"Code Input":  {atom.Pre, "input"},
	"Code Output": {atom.Pre, "output"},
	"Title":       {atom.H1, "title"},
	"Subtitle":    {atom.P, "subtitle"},
}

var htmlCharacterStyles = map[string]atom.Atom{
	"Emphasis":    atom.Em,
	"Inline Code": atom.Code,
}

var htmlHeadingTags = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// HasStyle reports whether name is one of the styles
// the HTML backend can render.
func (hb *HTMLBackend) HasStyle(name string) bool {
	if _, ok := htmlParagraphStyles[name]; ok {
		return true
	}
	if _, ok := htmlCharacterStyles[name]; ok {
		return true
	}
	for level := 1; level <= len(htmlHeadingTags); level++ {
		if name == HeadingStyle.Name(level) {
			return true
		}
	}
	return false
}

// MaxHeadingLevel returns 6.
func (hb *HTMLBackend) MaxHeadingLevel() int {
	return len(htmlHeadingTags)
}

// AddHeading appends an h1 through h6 element.
func (hb *HTMLBackend) AddHeading(text string, level int) (int, error) {
	if level < 1 || level > len(htmlHeadingTags) {
		return -1, fmt.Errorf("add heading: level %d out of range", level)
	}
	return hb.add(htmlElement{level: level}, text), nil
}

// AddParagraph appends an element for the named paragraph style.
func (hb *HTMLBackend) AddParagraph(text string, style string) (int, error) {
	if _, ok := htmlParagraphStyles[style]; !ok {
		return -1, fmt.Errorf("add paragraph: no paragraph style %q", style)
	}
	return hb.add(htmlElement{style: style}, text), nil
}

func (hb *HTMLBackend) add(elem htmlElement, text string) int {
	if text != "" {
		elem.runs = append(elem.runs, htmlRun{text: text})
	}
	hb.elements = append(hb.elements, elem)
	return len(hb.elements) - 1
}

// AddRun appends text to an element.
func (hb *HTMLBackend) AddRun(element int, text string, charStyle string) error {
	if element < 0 || element >= len(hb.elements) {
		return fmt.Errorf("add run: no element %d", element)
	}
	if _, ok := htmlCharacterStyles[charStyle]; charStyle != "" && !ok {
		return fmt.Errorf("add run: no character style %q", charStyle)
	}
	elem := &hb.elements[element]
	elem.runs = append(elem.runs, htmlRun{text: text, style: charStyle})
	return nil
}

// SetTitle sets the text of the title heading.
func (hb *HTMLBackend) SetTitle(text string) {
	hb.title = text
}

// SetSubtitle sets the text of the paragraph under the title heading.
func (hb *HTMLBackend) SetSubtitle(text string) {
	hb.subtitle = text
}

// Save writes the rendered HTML to the named file.
func (hb *HTMLBackend) Save(destination string) (err error) {
	f, err := os.CreateTemp(filepath.Dir(destination), ".mddocx-*.html")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()
	if err := hb.Render(f); err != nil {
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), destination)
}

// Render writes the document to w as HTML.
// It will return the first error encountered, if any.
func (hb *HTMLBackend) Render(w io.Writer) error {
	r := new(htmlRenderState)
	if hb.Standalone {
		r.dst = append(r.dst, "<!DOCTYPE html>\n"...)
		r.openTag(atom.Html)
		r.openTag(atom.Head)
		r.dst = append(r.dst, `<meta charset="utf-8">`...)
		if hb.title != "" {
			r.openTag(atom.Title)
			r.dst = escapeHTML(r.dst, []byte(hb.title))
			r.closeTag(atom.Title)
		}
		r.closeTag(atom.Head)
		r.dst = append(r.dst, '\n')
		r.openTag(atom.Body)
		r.dst = append(r.dst, '\n')
	}
	if hb.title != "" {
		r.element(&htmlElement{style: "Title", runs: []htmlRun{{text: hb.title}}})
	}
	if hb.subtitle != "" {
		r.element(&htmlElement{style: "Subtitle", runs: []htmlRun{{text: hb.subtitle}}})
	}
	for i := range hb.elements {
		r.element(&hb.elements[i])
	}
	r.endList()
	if hb.Standalone {
		r.closeTag(atom.Body)
		r.closeTag(atom.Html)
		r.dst = append(r.dst, '\n')
	}
	if _, err := w.Write(r.dst); err != nil {
		return fmt.Errorf("render document to html: %w", err)
	}
	return nil
}

type htmlRenderState struct {
	dst    []byte
	inList bool
}

func (r *htmlRenderState) openTagAttr(name atom.Atom) {
	r.dst = append(r.dst, '<')
	r.dst = append(r.dst, name.String()...)
}

func (r *htmlRenderState) openTag(name atom.Atom) {
	r.openTagAttr(name)
	r.dst = append(r.dst, '>')
}

func (r *htmlRenderState) closeTag(name atom.Atom) {
	r.dst = append(r.dst, "</"...)
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, '>')
}

// endList closes the current list, if any.
func (r *htmlRenderState) endList() {
	if r.inList {
		r.closeTag(atom.Ul)
		r.dst = append(r.dst, '\n')
		r.inList = false
	}
}

func (r *htmlRenderState) element(elem *htmlElement) {
	if elem.style == "" {
		r.endList()
		tag := htmlHeadingTags[elem.level-1]
		r.openTag(tag)
		r.runs(elem.runs)
		r.closeTag(tag)
		r.dst = append(r.dst, '\n')
		return
	}

	style := htmlParagraphStyles[elem.style]
	if style.tag == atom.Li {
		if !r.inList {
			r.openTag(atom.Ul)
			r.dst = append(r.dst, '\n')
			r.inList = true
		}
	} else {
		r.endList()
	}
	r.openTagAttr(style.tag)
	if style.class != "" {
		r.dst = append(r.dst, ` class="`...)
		r.dst = append(r.dst, style.class...)
		r.dst = append(r.dst, `"`...)
	}
	r.dst = append(r.dst, '>')
	switch style.tag {
	case atom.Pre:
		r.openTag(atom.Code)
		r.runs(elem.runs)
		r.closeTag(atom.Code)
	case atom.Blockquote:
		r.openTag(atom.P)
		r.runs(elem.runs)
		r.closeTag(atom.P)
	default:
		r.runs(elem.runs)
	}
	r.closeTag(style.tag)
	r.dst = append(r.dst, '\n')
}

func (r *htmlRenderState) runs(runs []htmlRun) {
	for _, run := range runs {
		tag, styled := htmlCharacterStyles[run.style]
		if styled {
			r.openTag(tag)
		}
		r.dst = escapeHTML(r.dst, []byte(run.text))
		if styled {
			r.closeTag(tag)
		}
	}
}

// escapeHTML appends the HTML-escaped version of a byte slice to another byte slice.
func escapeHTML(dst []byte, src []byte) []byte {
	verbatimStart := 0
	for i, b := range src {
		switch b {
		case '&':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&amp;"...)
			verbatimStart = i + 1
		case '\'':
			dst = append(dst, src[verbatimStart:i]...)
			// "&#39;" is shorter than "&apos;" and apos was not in HTML until HTML5.
			dst = append(dst, "&#39;"...)
			verbatimStart = i + 1
		case '<':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&lt;"...)
			verbatimStart = i + 1
		case '>':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&gt;"...)
			verbatimStart = i + 1
		case '"':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&quot;"...)
			verbatimStart = i + 1
		}
	}
	dst = append(dst, src[verbatimStart:]...)
	return dst
}
