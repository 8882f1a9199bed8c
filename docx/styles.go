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

package docx

import (
	"bytes"
	"strconv"
	"strings"
)

// MaxHeadingLevel is the deepest heading style a [Document] defines.
const MaxHeadingLevel = 6

type styleType int8

const (
	paragraphStyle styleType = iota
	characterStyle
)

func (typ styleType) String() string {
	if typ == characterStyle {
		return "character"
	}
	return "paragraph"
}

// styleDef is a single entry of word/styles.xml.
// pPr and rPr are raw WordprocessingML property elements.
type styleDef struct {
	name    string
	typ     styleType
	basedOn string
	next    string
	pPr     string
	rPr     string
}

// id returns the style identifier used in document.xml,
// which is the name with spaces removed.
func (def *styleDef) id() string {
	return styleID(def.name)
}

func styleID(name string) string {
	return strings.ReplaceAll(name, " ", "")
}

const (
	monospaceFont = `<w:rFonts w:ascii="Courier New" w:hAnsi="Courier New" w:cs="Courier New"/>`
	headingFont   = `<w:rFonts w:ascii="Calibri Light" w:hAnsi="Calibri Light" w:cs="Calibri Light"/>`
)

// headingSizes are the font sizes of Heading 1 through 6 in half-points.
var headingSizes = [MaxHeadingLevel]int{32, 26, 24, 22, 22, 22}

// builtinStyles returns the style registry for a new document.
func builtinStyles(opts *Options) []*styleDef {
	styles := []*styleDef{
		{
			name: "Normal",
			pPr:  `<w:spacing w:after="160" w:line="259" w:lineRule="auto"/>`,
		},
		{
			name:    "Title",
			basedOn: "Normal",
			next:    "Normal",
			pPr:     `<w:spacing w:after="0" w:line="240" w:lineRule="auto"/><w:contextualSpacing/>`,
			rPr:     headingFont + `<w:spacing w:val="-10"/><w:kern w:val="28"/><w:sz w:val="56"/>`,
		},
		{
			name:    "Subtitle",
			basedOn: "Normal",
			next:    "Normal",
			rPr:     `<w:color w:val="5A5A5A"/><w:spacing w:val="15"/><w:sz w:val="22"/>`,
		},
	}
	for level := 1; level <= MaxHeadingLevel; level++ {
		styles = append(styles, &styleDef{
			name:    "Heading " + strconv.Itoa(level),
			basedOn: "Normal",
			next:    "Normal",
			pPr: `<w:keepNext/><w:keepLines/><w:spacing w:before="240" w:after="0"/>` +
				`<w:outlineLvl w:val="` + strconv.Itoa(level-1) + `"/>`,
			rPr: headingFont + `<w:color w:val="2F5496"/><w:sz w:val="` + strconv.Itoa(headingSizes[level-1]) + `"/>`,
		})
	}

	quote := &styleDef{
		name:    "Quote",
		basedOn: "Normal",
		next:    "Normal",
	}
	if opts.DistinctQuote {
		quote.pPr = `<w:spacing w:before="200"/><w:ind w:left="864" w:right="864"/><w:jc w:val="center"/>`
		quote.rPr = `<w:i/><w:iCs/><w:color w:val="404040"/>`
	}
	styles = append(styles,
		quote,
		&styleDef{
			name:    "List Bullet",
			basedOn: "Normal",
			pPr:     `<w:numPr><w:numId w:val="` + strconv.Itoa(bulletNumID) + `"/></w:numPr><w:contextualSpacing/>`,
		},
		&styleDef{
			name:    "Code",
			basedOn: "Normal",
			pPr:     `<w:spacing w:after="0" w:line="240" w:lineRule="auto"/>`,
			rPr:     monospaceFont + `<w:sz w:val="20"/>`,
		},
		&styleDef{
			name:    "Code Input",
			basedOn: "Code",
			rPr:     `<w:b/><w:bCs/>`,
		},
		&styleDef{
			name:    "Code Output",
			basedOn: "Code",
			rPr:     `<w:color w:val="595959"/>`,
		},
		&styleDef{
			name: "Emphasis",
			typ:  characterStyle,
			rPr:  `<w:i/><w:iCs/>`,
		},
		&styleDef{
			name: "Inline Code",
			typ:  characterStyle,
			rPr:  monospaceFont,
		},
	)
	return styles
}

// bulletNumID is the numbering instance used by the List Bullet style.
const bulletNumID = 1

func writeStylesXML(buf *bytes.Buffer, styles []*styleDef) {
	buf.WriteString(xmlHeader)
	buf.WriteString(`<w:styles xmlns:w="` + wordNamespace + `">`)
	buf.WriteString(`<w:docDefaults><w:rPrDefault><w:rPr>` +
		`<w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/>` +
		`<w:sz w:val="22"/><w:szCs w:val="22"/><w:lang w:val="en-US"/>` +
		`</w:rPr></w:rPrDefault><w:pPrDefault/></w:docDefaults>`)
	for _, def := range styles {
		buf.WriteString(`<w:style w:type="`)
		buf.WriteString(def.typ.String())
		buf.WriteString(`"`)
		if def.name == "Normal" {
			buf.WriteString(` w:default="1"`)
		}
		buf.WriteString(` w:styleId="`)
		buf.WriteString(def.id())
		buf.WriteString(`"><w:name w:val="`)
		buf.Write(escapeXML(def.name))
		buf.WriteString(`"/>`)
		if def.basedOn != "" {
			buf.WriteString(`<w:basedOn w:val="` + styleID(def.basedOn) + `"/>`)
		}
		if def.next != "" {
			buf.WriteString(`<w:next w:val="` + styleID(def.next) + `"/>`)
		}
		buf.WriteString(`<w:qFormat/>`)
		if def.pPr != "" {
			buf.WriteString(`<w:pPr>` + def.pPr + `</w:pPr>`)
		}
		if def.rPr != "" {
			buf.WriteString(`<w:rPr>` + def.rPr + `</w:rPr>`)
		}
		buf.WriteString(`</w:style>`)
	}
	buf.WriteString(`</w:styles>`)
}

func writeNumberingXML(buf *bytes.Buffer) {
	buf.WriteString(xmlHeader)
	buf.WriteString(`<w:numbering xmlns:w="` + wordNamespace + `">`)
	buf.WriteString(`<w:abstractNum w:abstractNumId="0"><w:multiLevelType w:val="singleLevel"/>` +
		`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="bullet"/>` +
		`<w:lvlText w:val="•"/><w:lvlJc w:val="left"/>` +
		`<w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr>` +
		`</w:lvl></w:abstractNum>`)
	buf.WriteString(`<w:num w:numId="` + strconv.Itoa(bulletNumID) + `"><w:abstractNumId w:val="0"/></w:num>`)
	buf.WriteString(`</w:numbering>`)
}
