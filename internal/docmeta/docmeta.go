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

// Package docmeta extracts document metadata from Markdown front matter.
package docmeta

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// Metadata is the document information that front matter may set.
type Metadata struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Author   string `yaml:"author"`
}

// Split separates YAML or TOML front matter from the Markdown body.
// Source without front matter is returned unchanged
// with zero metadata.
func Split(source []byte) (Metadata, []byte, error) {
	var meta Metadata
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Metadata{}, nil, fmt.Errorf("parse front matter: %w", err)
	}
	meta.Title = strings.TrimSpace(meta.Title)
	meta.Subtitle = strings.TrimSpace(meta.Subtitle)
	meta.Author = strings.TrimSpace(meta.Author)
	return meta, body, nil
}

// Merge returns meta with every non-empty field of override applied.
func (meta Metadata) Merge(override Metadata) Metadata {
	if override.Title != "" {
		meta.Title = override.Title
	}
	if override.Subtitle != "" {
		meta.Subtitle = override.Subtitle
	}
	if override.Author != "" {
		meta.Author = override.Author
	}
	return meta
}
