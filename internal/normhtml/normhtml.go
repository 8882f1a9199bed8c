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

// Package normhtml normalizes HTML previews so that tests can compare them
// without depending on insignificant whitespace, attribute order,
// or whether the preview was rendered as a standalone page.
package normhtml

import (
	"bytes"
	"regexp"
	"sort"
	"unicode"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

var htmlEscaper = bytereplacer.New(
	"&", "&amp;",
	`'`, "&apos;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

// NormalizeHTML strips insignificant output differences from HTML.
// Page-level elements (html, head, body and everything inside head)
// are dropped, leaving only the body's content.
func NormalizeHTML(b []byte) []byte {
	tok := html.NewTokenizer(bytes.NewReader(b))
	var output []byte
	last := html.StartTagToken
	var lastTag atom.Atom
	inPre := false
	inHead := false
	for {
		tt := tok.Next()
		switch tt {
		case html.ErrorToken:
			return bytes.TrimSpace(output)
		case html.TextToken:
			if inHead {
				continue
			}
			data := tok.Text()
			if !inPre {
				data = whitespaceRE.ReplaceAll(data, []byte(" "))
				afterTag := last == html.EndTagToken || last == html.StartTagToken
				if afterTag && isBlockTag(lastTag) {
					data = bytes.TrimSpace(data)
				}
			}
			output = append(output, htmlEscaper.Replace(bytes.Clone(data))...)
		case html.EndTagToken:
			tagBytes, _ := tok.TagName()
			tag := atom.Lookup(tagBytes)
			switch {
			case tag == atom.Head:
				inHead = false
				continue
			case isPageTag(tag) || inHead:
				continue
			case tag == atom.Pre:
				inPre = false
			case isBlockTag(tag):
				output = bytes.TrimRightFunc(output, unicode.IsSpace)
			}
			output = append(output, "</"...)
			output = append(output, tagBytes...)
			output = append(output, ">"...)
			lastTag = tag
		case html.StartTagToken, html.SelfClosingTagToken:
			tagBytes, hasAttr := tok.TagName()
			tag := atom.Lookup(tagBytes)
			switch {
			case tag == atom.Head:
				inHead = true
				continue
			case isPageTag(tag) || inHead:
				continue
			case tag == atom.Pre:
				inPre = true
			}
			if isBlockTag(tag) {
				output = bytes.TrimRightFunc(output, unicode.IsSpace)
			}
			output = append(output, "<"...)
			output = append(output, tagBytes...)
			if hasAttr {
				output = appendSortedAttrs(output, tok)
			}
			output = append(output, ">"...)
			lastTag = tag
		}

		last = tt
		if tt == html.SelfClosingTagToken {
			last = html.EndTagToken
		}
	}
}

func appendSortedAttrs(dst []byte, tok *html.Tokenizer) []byte {
	type htmlAttribute struct {
		key   string
		value string
	}
	var attrs []htmlAttribute
	for {
		k, v, more := tok.TagAttr()
		attrs = append(attrs, htmlAttribute{string(k), string(v)})
		if !more {
			break
		}
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].key < attrs[j].key
	})
	for _, attr := range attrs {
		dst = append(dst, " "...)
		dst = append(dst, attr.key...)
		if attr.value != "" {
			dst = append(dst, `="`...)
			dst = append(dst, html.EscapeString(attr.value)...)
			dst = append(dst, `"`...)
		}
	}
	return dst
}

func isPageTag(tag atom.Atom) bool {
	return tag == atom.Html || tag == atom.Body
}

func isBlockTag(tag atom.Atom) bool {
	switch tag {
	case atom.Blockquote, atom.Li, atom.Ul, atom.P, atom.Pre,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	default:
		return false
	}
}
