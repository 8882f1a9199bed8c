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
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// File is the content of a .docx file as read by [Open].
type File struct {
	Title      string
	Subtitle   string
	Creator    string
	Identifier string
	Paragraphs []Paragraph
}

// Paragraph is a paragraph read from a .docx file.
type Paragraph struct {
	// Style is the paragraph style's name, like "Heading 1".
	Style string
	Runs  []Run
}

// Text returns the concatenated text of the paragraph's runs.
func (p *Paragraph) Text() string {
	sb := new(strings.Builder)
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Run is a run of text read from a .docx file.
type Run struct {
	Text string
	// Style is the character style's name, or empty.
	Style string
}

// Open reads the named .docx file.
func Open(path string) (*File, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()
	f, err := read(&r.Reader)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// Read reads a .docx package from r.
func Read(r io.ReaderAt, size int64) (*File, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	f, err := read(zr)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	return f, nil
}

func read(zr *zip.Reader) (*File, error) {
	parts := make(map[string]*zip.File)
	for _, f := range zr.File {
		parts[f.Name] = f
	}
	docPart := parts["word/document.xml"]
	if docPart == nil {
		return nil, errNotDocx
	}

	f := new(File)
	if corePart := parts["docProps/core.xml"]; corePart != nil {
		if err := readCoreProperties(f, corePart); err != nil {
			return nil, err
		}
	}
	names := make(map[string]string)
	if stylesPart := parts["word/styles.xml"]; stylesPart != nil {
		var err error
		names, err = readStyleNames(stylesPart)
		if err != nil {
			return nil, err
		}
	}
	styleName := func(id string) string {
		if name := names[id]; name != "" {
			return name
		}
		return id
	}

	rc, err := docPart.Open()
	if err != nil {
		return nil, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()
	dec := xml.NewDecoder(rc)
	var para *Paragraph
	var currRun *Run
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				para = &Paragraph{Style: "Normal"}
			case "pStyle":
				if para != nil {
					para.Style = styleName(attrValue(t, "val"))
				}
			case "r":
				if para != nil {
					para.Runs = append(para.Runs, Run{})
					currRun = &para.Runs[len(para.Runs)-1]
				}
			case "rStyle":
				if currRun != nil {
					currRun.Style = styleName(attrValue(t, "val"))
				}
			case "t":
				inText = currRun != nil
			case "br":
				if currRun != nil {
					currRun.Text += "\n"
				}
			case "tab":
				if currRun != nil {
					currRun.Text += "\t"
				}
			}
		case xml.CharData:
			if inText {
				currRun.Text += string(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "r":
				currRun = nil
			case "p":
				if para != nil {
					f.Paragraphs = append(f.Paragraphs, *para)
				}
				para = nil
			}
		}
	}
	return f, nil
}

func readCoreProperties(f *File, part *zip.File) error {
	rc, err := part.Open()
	if err != nil {
		return fmt.Errorf("open core.xml: %w", err)
	}
	defer rc.Close()
	var props struct {
		Title      string `xml:"http://purl.org/dc/elements/1.1/ title"`
		Subject    string `xml:"http://purl.org/dc/elements/1.1/ subject"`
		Creator    string `xml:"http://purl.org/dc/elements/1.1/ creator"`
		Identifier string `xml:"http://purl.org/dc/elements/1.1/ identifier"`
	}
	if err := xml.NewDecoder(rc).Decode(&props); err != nil {
		return fmt.Errorf("parse core.xml: %w", err)
	}
	f.Title = props.Title
	f.Subtitle = props.Subject
	f.Creator = props.Creator
	f.Identifier = props.Identifier
	return nil
}

// readStyleNames returns a map of style IDs to style names.
func readStyleNames(part *zip.File) (map[string]string, error) {
	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("open styles.xml: %w", err)
	}
	defer rc.Close()
	var styles struct {
		Styles []struct {
			ID   string `xml:"styleId,attr"`
			Name struct {
				Val string `xml:"val,attr"`
			} `xml:"name"`
		} `xml:"style"`
	}
	if err := xml.NewDecoder(rc).Decode(&styles); err != nil {
		return nil, fmt.Errorf("parse styles.xml: %w", err)
	}
	names := make(map[string]string, len(styles.Styles))
	for _, s := range styles.Styles {
		names[s.ID] = s.Name.Val
	}
	return names, nil
}

func attrValue(elem xml.StartElement, local string) string {
	for _, attr := range elem.Attr {
		if attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}
