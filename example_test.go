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

package mddocx_test

import (
	"fmt"
	"os"

	"zombiezen.com/go/mddocx"
)

func Example() {
	// Convert markdown into an HTML preview instead of a .docx file.
	backend := new(mddocx.HTMLBackend)
	_, err := mddocx.New("# Title\n\nSome *text*.\n", mddocx.WithBackend(backend))
	if err != nil {
		panic(err)
	}
	if err := backend.Render(os.Stdout); err != nil {
		panic(err)
	}
	// Output:
	// <h1>Title</h1>
	// <p>Some <em>text</em>.</p>
}

func ExampleFormatInline() {
	for _, run := range mddocx.FormatInline("Call `f()` *twice*, not \\*once\\*.") {
		fmt.Printf("%-10v %q\n", run.Style, run.Text)
	}
	// Output:
	// Plain      "Call "
	// InlineCode "f()"
	// Plain      " "
	// Emphasis   "twice"
	// Plain      ", not *once*."
}

func ExampleSplitCode() {
	code := ">>> 1 + 1\n2"
	transcript := mddocx.IsTranscriptLanguage("python", mddocx.DefaultTranscriptLanguages)
	for _, group := range mddocx.SplitCode(code, transcript) {
		for _, run := range group.Runs {
			fmt.Printf("%v: %q\n", group.Style, run.Text)
		}
	}
	// Output:
	// Input: ">>> 1 + 1"
	// Output: "2"
}
