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
	"strconv"

	"github.com/rs/zerolog"
)

// Style is an enumeration of the built-in styles the converter requests.
// It is the complete set: no other style names are ever passed to a [Backend].
type Style uint8

const (
	NormalStyle Style = 1 + iota
	HeadingStyle
	QuoteStyle
	ListBulletStyle
	CodeStyle
	CodeInputStyle
	CodeOutputStyle
	TitleStyle
	SubtitleStyle

	// Character styles.

	EmphasisStyle
	InlineCodeStyle
)

// Name returns the style's name in the backend's registry.
// level is only used by [HeadingStyle].
func (style Style) Name(level int) string {
	switch style {
	case NormalStyle:
		return "Normal"
	case HeadingStyle:
		return "Heading " + strconv.Itoa(level)
	case QuoteStyle:
		return "Quote"
	case ListBulletStyle:
		return "List Bullet"
	case CodeStyle:
		return "Code"
	case CodeInputStyle:
		return "Code Input"
	case CodeOutputStyle:
		return "Code Output"
	case TitleStyle:
		return "Title"
	case SubtitleStyle:
		return "Subtitle"
	case EmphasisStyle:
		return "Emphasis"
	case InlineCodeStyle:
		return "Inline Code"
	default:
		return fmt.Sprintf("Style(%d)", uint8(style))
	}
}

// paragraphStyles are resolved when a [Builder] is created.
// Heading styles are resolved separately, one per level.
var paragraphStyles = []Style{
	NormalStyle,
	QuoteStyle,
	ListBulletStyle,
	CodeStyle,
	CodeInputStyle,
	CodeOutputStyle,
	EmphasisStyle,
	InlineCodeStyle,
}

// charStyle returns the character style of a run,
// or zero if the run uses its paragraph's formatting.
func charStyle(style RunStyle) Style {
	switch style {
	case Emphasis:
		return EmphasisStyle
	case InlineCode:
		return InlineCodeStyle
	default:
		return 0
	}
}

// A StyledElement is one paragraph of output:
// a paragraph style and the runs inside it.
type StyledElement struct {
	Style Style
	// Level is the heading level for [HeadingStyle],
	// already clamped to the backend's maximum.
	Level int
	Runs  []Run
	// Block is the block the element was produced from.
	Block *Block
}

// StyleName returns the name of the element's paragraph style.
func (e StyledElement) StyleName() string {
	return e.Style.Name(e.Level)
}

// QuoteStyleMode selects how block quotes are styled.
type QuoteStyleMode int

const (
	// QuoteAuto uses the backend's "Quote" style if it defines one
	// and falls back to "Normal" otherwise.
	QuoteAuto QuoteStyleMode = iota
	// QuotePlain always styles block quotes as plain paragraphs.
	QuotePlain
)

// BuilderOptions is the set of optional parameters to [NewBuilder].
type BuilderOptions struct {
	// TranscriptLanguages is the set of fenced code language tags
	// checked for interactive examples.
	// If nil, DefaultTranscriptLanguages is used.
	TranscriptLanguages []string
	QuoteStyle          QuoteStyleMode
	// Logger receives a debug event for every element.
	// If nil, nothing is logged.
	Logger *zerolog.Logger
}

// A Builder maps blocks to styled elements
// and appends them to a [Backend].
type Builder struct {
	backend    Backend
	langs      []string
	quote      Style
	maxHeading int
	resolved   map[string]bool
	log        zerolog.Logger
}

// NewBuilder returns a builder that writes to b.
// All style names the builder may need are looked up in b once, here.
// Styles b does not define are reported by [*Builder.Missing]
// and cause [*Builder.Build] to fail only if a block needs them.
func NewBuilder(b Backend, opts *BuilderOptions) *Builder {
	if opts == nil {
		opts = new(BuilderOptions)
	}
	bld := &Builder{
		backend:    b,
		langs:      opts.TranscriptLanguages,
		maxHeading: b.MaxHeadingLevel(),
		resolved:   make(map[string]bool),
		log:        zerolog.Nop(),
	}
	if bld.langs == nil {
		bld.langs = DefaultTranscriptLanguages
	}
	if opts.Logger != nil {
		bld.log = *opts.Logger
	}
	for _, style := range paragraphStyles {
		name := style.Name(0)
		bld.resolved[name] = b.HasStyle(name)
	}
	for level := 1; level <= bld.maxHeading; level++ {
		name := HeadingStyle.Name(level)
		bld.resolved[name] = b.HasStyle(name)
	}

	bld.quote = QuoteStyle
	if opts.QuoteStyle == QuotePlain || !bld.resolved[QuoteStyle.Name(0)] {
		bld.quote = NormalStyle
	}
	return bld
}

// Missing returns the names of the styles the backend does not define.
// The quote style is not reported, since it falls back to "Normal".
func (bld *Builder) Missing() []string {
	var missing []string
	check := func(name string) {
		if !bld.resolved[name] {
			missing = append(missing, name)
		}
	}
	for _, style := range paragraphStyles {
		if style != QuoteStyle {
			check(style.Name(0))
		}
	}
	for level := 1; level <= bld.maxHeading; level++ {
		check(HeadingStyle.Name(level))
	}
	return missing
}

// Elements maps blocks to styled elements without touching the backend.
// Blank blocks produce no elements.
// Every other block produces one element,
// except interactive examples, which produce one element
// per group of consecutive input or output lines.
// A transcript that alternates input and output more than once
// yields more than two elements so that line order is preserved.
func (bld *Builder) Elements(blocks []*Block) []StyledElement {
	var elems []StyledElement
	for _, b := range blocks {
		switch b.Kind {
		case BlankKind:
		case HeadingKind:
			level := b.Level
			if level > bld.maxHeading {
				level = bld.maxHeading
			}
			if level < 1 {
				level = 1
			}
			elems = append(elems, StyledElement{
				Style: HeadingStyle,
				Level: level,
				Runs:  FormatInline(b.Text),
				Block: b,
			})
		case BlockQuoteKind:
			elems = append(elems, StyledElement{
				Style: bld.quote,
				Runs:  FormatInline(b.Text),
				Block: b,
			})
		case ListItemKind:
			elems = append(elems, StyledElement{
				Style: ListBulletStyle,
				Runs:  FormatInline(b.Text),
				Block: b,
			})
		case FencedCodeKind:
			transcript := IsTranscriptLanguage(b.Info, bld.langs)
			for _, g := range SplitCode(b.Text, transcript) {
				style := CodeStyle
				switch g.Style {
				case Input:
					style = CodeInputStyle
				case Output:
					style = CodeOutputStyle
				}
				elems = append(elems, StyledElement{
					Style: style,
					Runs:  g.Runs,
					Block: b,
				})
			}
		default:
			elems = append(elems, StyledElement{
				Style: NormalStyle,
				Runs:  FormatInline(b.Text),
				Block: b,
			})
		}
	}
	return elems
}

// Build appends the elements for blocks to the backend, in order.
// It stops at the first error,
// which is always a [*StyleResolutionError].
func (bld *Builder) Build(blocks []*Block) error {
	for _, e := range bld.Elements(blocks) {
		if err := bld.emit(e); err != nil {
			return err
		}
	}
	return nil
}

func (bld *Builder) emit(e StyledElement) error {
	name := e.StyleName()
	styleErr := func(style string, err error) error {
		return &StyleResolutionError{
			Kind:  e.Block.Kind,
			Span:  e.Block.Span(),
			Style: style,
			Err:   err,
		}
	}
	if !bld.resolved[name] {
		return styleErr(name, nil)
	}

	var id int
	var err error
	if e.Style == HeadingStyle {
		id, err = bld.backend.AddHeading("", e.Level)
	} else {
		id, err = bld.backend.AddParagraph("", name)
	}
	if err != nil {
		return styleErr(name, err)
	}
	for _, r := range e.Runs {
		var cs string
		if s := charStyle(r.Style); s != 0 {
			cs = s.Name(0)
			if !bld.resolved[cs] {
				return styleErr(cs, nil)
			}
		}
		if err := bld.backend.AddRun(id, r.Text, cs); err != nil {
			return styleErr(cs, err)
		}
	}
	bld.log.Debug().
		Stringer("kind", e.Block.Kind).
		Stringer("lines", e.Block.Span()).
		Str("style", name).
		Int("runs", len(e.Runs)).
		Msg("Added element")
	return nil
}
