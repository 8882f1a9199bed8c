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

// Package golden provides conversion examples with their expected output.
package golden

import (
	_ "embed"
	"encoding/json"
)

// Example is a single conversion example.
type Example struct {
	Name     string
	Markdown string
	// Elements are the paragraphs the example converts to
	// with the default options and a backend that defines every style.
	Elements []Element
}

// Element is an expected paragraph.
type Element struct {
	Style string
	// Text is the concatenated text of the paragraph's runs.
	Text string
}

//go:embed examples.json
var examplesData []byte

// Load returns the conversion examples.
func Load() ([]Example, error) {
	var examples []Example
	if err := json.Unmarshal(examplesData, &examples); err != nil {
		return nil, err
	}
	return examples, nil
}

//go:embed sample.md
var sample string

// Sample returns a longer document that exercises every block kind,
// including several interactive examples.
func Sample() string {
	return sample
}

// SampleStyles is the sequence of paragraph styles that [Sample] converts to.
var SampleStyles = []string{
	"Heading 1",
	"Normal",
	"Quote",
	"Normal",
	"Normal",
	"List Bullet",
	"List Bullet",
	"Heading 1",
	"Normal",
	"Heading 2",
	"Normal",
	"Code Input",
	"Code Output",
	"Normal",
	"Code Input",
	"Code Output",
	"Normal",
	"Code Input",
	"Code Output",
	"Heading 2",
	"Normal",
	"Code Input",
	"Code Output",
	"Code Input",
	"Code Output",
	"Code Input",
	"Code Output",
	"Normal",
	"Code Input",
	"Code Output",
	"Code Input",
	"Code Output",
	"Normal",
	"Code Input",
	"Code Output",
	"Code Input",
	"Code Output",
}
