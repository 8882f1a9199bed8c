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
	"time"
	"unicode/utf8"

	"go4.org/bytereplacer"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const (
	wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relNamespace  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	packageRelNamespace = "http://schemas.openxmlformats.org/package/2006/relationships"
	contentTypesNS      = "http://schemas.openxmlformats.org/package/2006/content-types"
	corePropertiesNS    = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	appPropertiesNS     = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
)

const (
	officeDocumentRel = relNamespace + "/officeDocument"
	corePropertiesRel = packageRelNamespace + "/metadata/core-properties"
	appPropertiesRel  = relNamespace + "/extended-properties"
	stylesRel         = relNamespace + "/styles"
	numberingRel      = relNamespace + "/numbering"
)

var xmlEscaper = bytereplacer.New(
	"&", "&amp;",
	`'`, "&apos;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

// escapeXML returns s escaped for use in XML character data or attributes.
// Characters that XML 1.0 does not allow and invalid UTF-8 are dropped.
func escapeXML(s string) []byte {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		c, n := utf8.DecodeRuneInString(s[i:])
		if isXMLChar(c) && !(c == utf8.RuneError && n == 1) {
			b = append(b, s[i:i+n]...)
		}
		i += n
	}
	return xmlEscaper.Replace(b)
}

func isXMLChar(c rune) bool {
	return c == '\t' || c == '\n' || c == '\r' ||
		0x20 <= c && c <= 0xd7ff ||
		0xe000 <= c && c <= 0xfffd ||
		0x10000 <= c && c <= 0x10ffff
}

func writeContentTypes(buf *bytes.Buffer) {
	const wordML = "application/vnd.openxmlformats-officedocument.wordprocessingml"
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Types xmlns="` + contentTypesNS + `">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="` + wordML + `.document.main+xml"/>` +
		`<Override PartName="/word/styles.xml" ContentType="` + wordML + `.styles+xml"/>` +
		`<Override PartName="/word/numbering.xml" ContentType="` + wordML + `.numbering+xml"/>` +
		`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
		`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
		`</Types>`)
}

func writePackageRels(buf *bytes.Buffer) {
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Relationships xmlns="` + packageRelNamespace + `">` +
		`<Relationship Id="rId1" Type="` + officeDocumentRel + `" Target="word/document.xml"/>` +
		`<Relationship Id="rId2" Type="` + corePropertiesRel + `" Target="docProps/core.xml"/>` +
		`<Relationship Id="rId3" Type="` + appPropertiesRel + `" Target="docProps/app.xml"/>` +
		`</Relationships>`)
}

func writeDocumentRels(buf *bytes.Buffer) {
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Relationships xmlns="` + packageRelNamespace + `">` +
		`<Relationship Id="rId1" Type="` + stylesRel + `" Target="styles.xml"/>` +
		`<Relationship Id="rId2" Type="` + numberingRel + `" Target="numbering.xml"/>` +
		`</Relationships>`)
}

type coreProperties struct {
	title      string
	subject    string
	creator    string
	identifier string
	created    time.Time
}

func writeCoreProperties(buf *bytes.Buffer, props *coreProperties) {
	buf.WriteString(xmlHeader)
	buf.WriteString(`<cp:coreProperties xmlns:cp="` + corePropertiesNS + `"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/"` +
		` xmlns:dcterms="http://purl.org/dc/terms/"` +
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	element := func(name, value string) {
		if value == "" {
			return
		}
		buf.WriteString("<" + name + ">")
		buf.Write(escapeXML(value))
		buf.WriteString("</" + name + ">")
	}
	element("dc:title", props.title)
	element("dc:subject", props.subject)
	element("dc:creator", props.creator)
	element("dc:identifier", props.identifier)
	stamp := props.created.UTC().Format(time.RFC3339)
	buf.WriteString(`<dcterms:created xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:created>`)
	buf.WriteString(`<dcterms:modified xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:modified>`)
	buf.WriteString(`</cp:coreProperties>`)
}

func writeAppProperties(buf *bytes.Buffer) {
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Properties xmlns="` + appPropertiesNS + `"><Application>mddocx</Application></Properties>`)
}
