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
	"github.com/rs/zerolog"
	"zombiezen.com/go/mddocx/docx"
)

// A Document is a Markdown text converted into a [Backend].
// The conversion happens in [New];
// Title and Subtitle may be set any time before [*Document.Save].
type Document struct {
	Title    string
	Subtitle string

	backend  Backend
	blocks   []*Block
	elements int
	log      zerolog.Logger
}

// An Option configures a [Document].
type Option func(*documentOptions)

type documentOptions struct {
	backend Backend
	builder BuilderOptions
	log     zerolog.Logger
}

// WithBackend sets the backend the document is written to.
// The default is a new [docx.Document] with default options.
func WithBackend(b Backend) Option {
	return func(o *documentOptions) {
		o.backend = b
	}
}

// WithLogger sets the logger for conversion and saving events.
// By default, nothing is logged.
func WithLogger(log zerolog.Logger) Option {
	return func(o *documentOptions) {
		o.log = log
	}
}

// WithTranscriptLanguages replaces the set of fenced code language tags
// checked for interactive examples.
func WithTranscriptLanguages(langs ...string) Option {
	return func(o *documentOptions) {
		o.builder.TranscriptLanguages = append([]string{}, langs...)
	}
}

// WithQuoteStyle selects how block quotes are styled.
func WithQuoteStyle(mode QuoteStyleMode) Option {
	return func(o *documentOptions) {
		o.builder.QuoteStyle = mode
	}
}

// New converts markdown into a new document.
// Markdown input is never rejected:
// New only fails if the backend lacks a style the input needs.
// In that case, the error is a [*StyleResolutionError].
func New(markdown string, opts ...Option) (*Document, error) {
	o := documentOptions{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = docx.New(nil)
	}

	blocks := Parse([]byte(markdown))
	o.builder.Logger = &o.log
	bld := NewBuilder(o.backend, &o.builder)
	if missing := bld.Missing(); len(missing) > 0 {
		o.log.Warn().Strs("styles", missing).Msg("Backend is missing styles")
	}
	elems := bld.Elements(blocks)
	for _, e := range elems {
		if err := bld.emit(e); err != nil {
			return nil, err
		}
	}
	o.log.Debug().
		Int("blocks", len(blocks)).
		Int("elements", len(elems)).
		Msg("Converted markdown")
	return &Document{
		backend:  o.backend,
		blocks:   blocks,
		elements: len(elems),
		log:      o.log,
	}, nil
}

// Blocks returns the blocks the document was built from.
func (doc *Document) Blocks() []*Block {
	return doc.blocks
}

// Backend returns the backend that holds the document's content.
func (doc *Document) Backend() Backend {
	return doc.backend
}

// Save passes the title and subtitle to the backend
// and writes the document to path.
// Save does not retry:
// any failure is returned as a [*BackendWriteError].
func (doc *Document) Save(path string) error {
	doc.backend.SetTitle(doc.Title)
	doc.backend.SetSubtitle(doc.Subtitle)
	if err := doc.backend.Save(path); err != nil {
		return &BackendWriteError{Path: path, Err: err}
	}
	doc.log.Debug().
		Str("path", path).
		Int("elements", doc.elements).
		Msg("Saved document")
	return nil
}
