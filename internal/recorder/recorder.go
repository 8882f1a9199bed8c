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

// Package recorder provides a document backend that records the calls made to it.
package recorder

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultStyles is the style registry of a [Backend] with a nil Styles field.
var DefaultStyles = []string{
	"Normal",
	"Heading 1",
	"Heading 2",
	"Heading 3",
	"Heading 4",
	"Heading 5",
	"Heading 6",
	"Quote",
	"List Bullet",
	"Code",
	"Code Input",
	"Code Output",
	"Emphasis",
	"Inline Code",
}

// Backend records the calls made to it.
// Its zero value defines [DefaultStyles] and six heading levels.
type Backend struct {
	// Styles is the set of style names the backend defines.
	// If nil, DefaultStyles is used.
	Styles []string
	// MaxLevel is the deepest heading level.
	// If zero, 6 is used.
	MaxLevel int
	// RejectStyles lists styles that HasStyle reports as defined
	// but that AddParagraph and AddRun refuse.
	RejectStyles []string
	// SaveError is returned from Save, if not nil.
	SaveError error

	Calls    []Call
	Elements []Element
	Title    string
	Subtitle string
	// Saved holds the destinations of successful Save calls.
	Saved []string
}

// Call is a single recorded call.
type Call struct {
	Op      string `json:"op"`
	Element int    `json:"element,omitempty"`
	Text    string `json:"text,omitempty"`
	Style   string `json:"style,omitempty"`
	Level   int    `json:"level,omitempty"`
}

func (c Call) String() string {
	switch c.Op {
	case "AddHeading":
		return fmt.Sprintf("AddHeading(%q, %d)", c.Text, c.Level)
	case "AddParagraph":
		return fmt.Sprintf("AddParagraph(%q, %q)", c.Text, c.Style)
	case "AddRun":
		return fmt.Sprintf("AddRun(%d, %q, %q)", c.Element, c.Text, c.Style)
	default:
		return c.Op + "(" + strconv.Quote(c.Text) + ")"
	}
}

// Element is a paragraph as assembled from the recorded calls.
type Element struct {
	Style string `json:"style"`
	Runs  []Run  `json:"runs,omitempty"`
}

// Text returns the concatenated text of the element's runs.
func (e Element) Text() string {
	sb := new(strings.Builder)
	for _, r := range e.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Run is a run of text inside an [Element].
type Run struct {
	Text  string `json:"text"`
	Style string `json:"style,omitempty"`
}

// HasStyle reports whether name is in b.Styles.
func (b *Backend) HasStyle(name string) bool {
	styles := b.Styles
	if styles == nil {
		styles = DefaultStyles
	}
	return contains(styles, name)
}

// MaxHeadingLevel returns b.MaxLevel or 6 if it is zero.
func (b *Backend) MaxHeadingLevel() int {
	if b.MaxLevel == 0 {
		return 6
	}
	return b.MaxLevel
}

// AddHeading records the call and appends a "Heading N" element.
func (b *Backend) AddHeading(text string, level int) (int, error) {
	b.Calls = append(b.Calls, Call{Op: "AddHeading", Text: text, Level: level})
	if level < 1 || level > b.MaxHeadingLevel() {
		return -1, fmt.Errorf("heading level %d out of range", level)
	}
	return b.add("Heading "+strconv.Itoa(level), text)
}

// AddParagraph records the call and appends an element.
func (b *Backend) AddParagraph(text string, style string) (int, error) {
	b.Calls = append(b.Calls, Call{Op: "AddParagraph", Text: text, Style: style})
	return b.add(style, text)
}

func (b *Backend) add(style, text string) (int, error) {
	if !b.HasStyle(style) || contains(b.RejectStyles, style) {
		return -1, fmt.Errorf("unknown style %q", style)
	}
	elem := Element{Style: style}
	if text != "" {
		elem.Runs = append(elem.Runs, Run{Text: text})
	}
	b.Elements = append(b.Elements, elem)
	return len(b.Elements) - 1, nil
}

// AddRun records the call and appends a run to an element.
func (b *Backend) AddRun(element int, text string, charStyle string) error {
	b.Calls = append(b.Calls, Call{Op: "AddRun", Element: element, Text: text, Style: charStyle})
	if element < 0 || element >= len(b.Elements) {
		return fmt.Errorf("no element %d", element)
	}
	if charStyle != "" && (!b.HasStyle(charStyle) || contains(b.RejectStyles, charStyle)) {
		return fmt.Errorf("unknown style %q", charStyle)
	}
	elem := &b.Elements[element]
	elem.Runs = append(elem.Runs, Run{Text: text, Style: charStyle})
	return nil
}

// SetTitle records the call.
func (b *Backend) SetTitle(text string) {
	b.Calls = append(b.Calls, Call{Op: "SetTitle", Text: text})
	b.Title = text
}

// SetSubtitle records the call.
func (b *Backend) SetSubtitle(text string) {
	b.Calls = append(b.Calls, Call{Op: "SetSubtitle", Text: text})
	b.Subtitle = text
}

// Save records the call and returns b.SaveError.
// Nothing is written.
func (b *Backend) Save(destination string) error {
	b.Calls = append(b.Calls, Call{Op: "Save", Text: destination})
	if b.SaveError != nil {
		return b.SaveError
	}
	b.Saved = append(b.Saved, destination)
	return nil
}

// WriteJSON writes the recorded elements to w as indented JSON.
func (b *Backend) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	elems := b.Elements
	if elems == nil {
		elems = []Element{}
	}
	return enc.Encode(elems)
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
