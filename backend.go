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

// A Backend is a write-only document under construction.
// The [Builder] appends paragraphs and runs to it in source order
// and never reads anything back other than the style registry.
//
// Element handles are only meaningful to the backend that returned them.
type Backend interface {
	// AddHeading appends a heading paragraph of the given level
	// and returns its handle.
	// Levels are at most MaxHeadingLevel.
	AddHeading(text string, level int) (int, error)
	// AddParagraph appends a paragraph with the named paragraph style
	// and returns its handle.
	AddParagraph(text string, style string) (int, error)
	// AddRun appends text to an existing paragraph.
	// An empty charStyle means the paragraph's own formatting.
	AddRun(element int, text string, charStyle string) error

	SetTitle(text string)
	SetSubtitle(text string)

	// Save writes the finished document to destination.
	// Implementations must not leave a partial file behind on failure.
	Save(destination string) error

	// HasStyle reports whether the backend defines the named
	// paragraph or character style.
	HasStyle(name string) bool
	// MaxHeadingLevel returns the deepest heading level the backend defines.
	MaxHeadingLevel() int
}
