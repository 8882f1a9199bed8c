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

// Package docx writes and reads Office Open XML word-processing documents
// (.docx files).
//
// A [Document] is an append-only list of styled paragraphs
// with a fixed set of built-in styles:
// Normal, Title, Subtitle, Heading 1 through Heading 6, Quote, List Bullet,
// Code, Code Input and Code Output paragraph styles,
// plus the Emphasis and Inline Code character styles.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PageSize is an enumeration of paper sizes.
type PageSize int

const (
	Letter PageSize = iota
	A4
)

// ParsePageSize parses a page size name, ignoring case.
func ParsePageSize(s string) (PageSize, error) {
	switch {
	case strings.EqualFold(s, "letter"):
		return Letter, nil
	case strings.EqualFold(s, "a4"):
		return A4, nil
	default:
		return 0, fmt.Errorf("unknown page size %q", s)
	}
}

func (size PageSize) String() string {
	switch size {
	case Letter:
		return "letter"
	case A4:
		return "a4"
	default:
		return "PageSize(" + strconv.Itoa(int(size)) + ")"
	}
}

// dimensions returns the page width and height in twentieths of a point.
func (size PageSize) dimensions() (width, height int) {
	if size == A4 {
		return 11906, 16838
	}
	return 12240, 15840
}

// Options is the set of optional parameters to [New].
type Options struct {
	PageSize PageSize
	// If DistinctQuote is true, the Quote style is indented and italic.
	// Otherwise, it looks the same as Normal.
	DistinctQuote bool
	// Creator is stored as the document's author.
	Creator string
	// Created is the document's creation time.
	// If zero, the time of Save is used.
	Created time.Time
	// Identifier is stored as the document's unique identifier.
	// If empty, a random UUID is generated.
	Identifier string
}

// A Document is a word-processing document under construction.
// Paragraph handles are indices in the order paragraphs were added.
type Document struct {
	opts     Options
	styles   []*styleDef
	byName   map[string]*styleDef
	paras    []paragraph
	title    string
	subtitle string
}

type paragraph struct {
	style string
	runs  []run
}

type run struct {
	text  string
	style string
}

// New returns an empty document.
// opts may be nil to use the defaults.
func New(opts *Options) *Document {
	doc := new(Document)
	if opts != nil {
		doc.opts = *opts
	}
	doc.styles = builtinStyles(&doc.opts)
	doc.byName = make(map[string]*styleDef, len(doc.styles))
	for _, def := range doc.styles {
		doc.byName[def.name] = def
	}
	return doc
}

// HasStyle reports whether the document defines a paragraph or character style
// with the given name.
func (doc *Document) HasStyle(name string) bool {
	return doc.byName[name] != nil
}

// MaxHeadingLevel returns [MaxHeadingLevel].
func (doc *Document) MaxHeadingLevel() int {
	return MaxHeadingLevel
}

// AddHeading appends a heading paragraph.
func (doc *Document) AddHeading(text string, level int) (int, error) {
	if level < 1 || level > MaxHeadingLevel {
		return -1, fmt.Errorf("add heading: level %d out of range [1, %d]", level, MaxHeadingLevel)
	}
	return doc.AddParagraph(text, "Heading "+strconv.Itoa(level))
}

// AddParagraph appends a paragraph with the named paragraph style.
// If text is not empty, it becomes the paragraph's first run.
func (doc *Document) AddParagraph(text string, style string) (int, error) {
	if def := doc.byName[style]; def == nil || def.typ != paragraphStyle {
		return -1, fmt.Errorf("add paragraph: no paragraph style %q", style)
	}
	p := paragraph{style: style}
	if text != "" {
		p.runs = append(p.runs, run{text: text})
	}
	doc.paras = append(doc.paras, p)
	return len(doc.paras) - 1, nil
}

// AddRun appends text to the paragraph with the given handle.
// charStyle must be empty or name a character style.
func (doc *Document) AddRun(element int, text string, charStyle string) error {
	if element < 0 || element >= len(doc.paras) {
		return fmt.Errorf("add run: no paragraph %d", element)
	}
	if charStyle != "" {
		if def := doc.byName[charStyle]; def == nil || def.typ != characterStyle {
			return fmt.Errorf("add run: no character style %q", charStyle)
		}
	}
	p := &doc.paras[element]
	p.runs = append(p.runs, run{text: text, style: charStyle})
	return nil
}

// SetTitle sets the document's title.
// A non-empty title is stored in the document properties
// and shown as a Title paragraph at the top of the body.
func (doc *Document) SetTitle(text string) {
	doc.title = text
}

// SetSubtitle sets the document's subtitle.
// A non-empty subtitle is stored as the document's subject
// and shown as a Subtitle paragraph after the title.
func (doc *Document) SetSubtitle(text string) {
	doc.subtitle = text
}

// Len returns the number of paragraphs added to the document,
// not counting the title and subtitle.
func (doc *Document) Len() int {
	return len(doc.paras)
}

// saveMode is the permission given to saved files.
// Temporary files are created owner-only.
const saveMode os.FileMode = 0o644

// Save writes the document to the named file.
// The document is first written to a temporary file in the same directory,
// which is renamed over path only once it is complete.
func (doc *Document) Save(path string) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".mddocx-*.docx")
	if err != nil {
		return err
	}
	tempPath := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tempPath)
		}
	}()
	if err := doc.Write(f); err != nil {
		return err
	}
	if err := f.Chmod(saveMode); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tempPath, path); err != nil {
		return err
	}
	return nil
}

// Write writes the document as a .docx package to w.
func (doc *Document) Write(w io.Writer) error {
	created := doc.opts.Created
	if created.IsZero() {
		created = time.Now()
	}
	id := doc.opts.Identifier
	if id == "" {
		id = uuid.NewString()
	}

	zw := zip.NewWriter(w)
	buf := new(bytes.Buffer)
	parts := []struct {
		name  string
		write func(*bytes.Buffer)
	}{
		{"[Content_Types].xml", writeContentTypes},
		{"_rels/.rels", writePackageRels},
		{"docProps/core.xml", func(buf *bytes.Buffer) {
			writeCoreProperties(buf, &coreProperties{
				title:      doc.title,
				subject:    doc.subtitle,
				creator:    doc.opts.Creator,
				identifier: "urn:uuid:" + id,
				created:    created,
			})
		}},
		{"docProps/app.xml", writeAppProperties},
		{"word/_rels/document.xml.rels", writeDocumentRels},
		{"word/document.xml", doc.writeDocumentXML},
		{"word/styles.xml", func(buf *bytes.Buffer) { writeStylesXML(buf, doc.styles) }},
		{"word/numbering.xml", writeNumberingXML},
	}
	for _, part := range parts {
		buf.Reset()
		part.write(buf)
		pw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     part.name,
			Method:   zip.Deflate,
			Modified: created,
		})
		if err != nil {
			return fmt.Errorf("write %s: %w", part.name, err)
		}
		if _, err := pw.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

func (doc *Document) writeDocumentXML(buf *bytes.Buffer) {
	buf.WriteString(xmlHeader)
	buf.WriteString(`<w:document xmlns:w="` + wordNamespace + `" xmlns:r="` + relNamespace + `"><w:body>`)
	if doc.title != "" {
		writeParagraph(buf, &paragraph{style: "Title", runs: []run{{text: doc.title}}})
	}
	if doc.subtitle != "" {
		writeParagraph(buf, &paragraph{style: "Subtitle", runs: []run{{text: doc.subtitle}}})
	}
	for i := range doc.paras {
		writeParagraph(buf, &doc.paras[i])
	}
	width, height := doc.opts.PageSize.dimensions()
	buf.WriteString(`<w:sectPr><w:pgSz w:w="` + strconv.Itoa(width) + `" w:h="` + strconv.Itoa(height) + `"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/>` +
		`</w:sectPr>`)
	buf.WriteString(`</w:body></w:document>`)
}

func writeParagraph(buf *bytes.Buffer, p *paragraph) {
	buf.WriteString(`<w:p>`)
	if p.style != "Normal" {
		buf.WriteString(`<w:pPr><w:pStyle w:val="` + styleID(p.style) + `"/></w:pPr>`)
	}
	for _, r := range p.runs {
		buf.WriteString(`<w:r>`)
		if r.style != "" {
			buf.WriteString(`<w:rPr><w:rStyle w:val="` + styleID(r.style) + `"/></w:rPr>`)
		}
		writeRunText(buf, r.text)
		buf.WriteString(`</w:r>`)
	}
	buf.WriteString(`</w:p>`)
}

// writeRunText writes the content of a run,
// converting line breaks and tabs into their elements.
func writeRunText(buf *bytes.Buffer, text string) {
	start := 0
	flush := func(end int) {
		if end > start {
			buf.WriteString(`<w:t xml:space="preserve">`)
			buf.Write(escapeXML(text[start:end]))
			buf.WriteString(`</w:t>`)
		}
	}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			flush(i)
			buf.WriteString(`<w:br/>`)
			start = i + 1
		case '\t':
			flush(i)
			buf.WriteString(`<w:tab/>`)
			start = i + 1
		}
	}
	flush(len(text))
}

var errNotDocx = errors.New("not a word-processing document")
