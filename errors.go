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

import "fmt"

// ParseInternalError is returned when the segmenter is handed
// a line sequence that could not have come from a [Parser],
// such as lines out of order.
// It indicates a bug in the caller, never malformed Markdown.
type ParseInternalError struct {
	Line   int
	Reason string
}

func (e *ParseInternalError) Error() string {
	return fmt.Sprintf("markdown segmenter: line %d: %s", e.Line, e.Reason)
}

// StyleResolutionError is returned when a block needs a style
// that the backend does not define.
type StyleResolutionError struct {
	Kind  BlockKind
	Span  Span // source lines of the block
	Style string
	// Err is the backend's error, if the backend rejected the style.
	Err error
}

func (e *StyleResolutionError) Error() string {
	msg := fmt.Sprintf("%v block at lines %d-%d: unknown style %q", e.Kind, e.Span.Start+1, e.Span.End, e.Style)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StyleResolutionError) Unwrap() error {
	return e.Err
}

// BackendWriteError is returned by [*Document.Save]
// when the backend fails to write the document.
type BackendWriteError struct {
	Path string
	Err  error
}

func (e *BackendWriteError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

func (e *BackendWriteError) Unwrap() error {
	return e.Err
}
