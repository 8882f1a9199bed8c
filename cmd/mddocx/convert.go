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

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"zombiezen.com/go/mddocx"
	"zombiezen.com/go/mddocx/docx"
	"zombiezen.com/go/mddocx/format"
	"zombiezen.com/go/mddocx/internal/config"
	"zombiezen.com/go/mddocx/internal/docmeta"
	"zombiezen.com/go/mddocx/internal/recorder"
)

// metaFlags are the flags that override front matter.
type metaFlags struct {
	title    string
	subtitle string
	author   string
}

func (f *metaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "document title")
	cmd.Flags().StringVar(&f.subtitle, "subtitle", "", "document subtitle")
	cmd.Flags().StringVar(&f.author, "author", "", "document author")
}

func (f *metaFlags) metadata() docmeta.Metadata {
	return docmeta.Metadata{Title: f.title, Subtitle: f.subtitle, Author: f.author}
}

func (a *app) convertCmd() *cobra.Command {
	var (
		meta          metaFlags
		output        string
		pageSize      string
		distinctQuote bool
	)
	cmd := &cobra.Command{
		Use:   "convert [flags] INPUT",
		Short: "Convert a Markdown file to .docx",
		Long: "Convert a Markdown file to .docx.\n\n" +
			"INPUT may be \"-\" to read from stdin, in which case --output is required.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				if args[0] == "-" {
					return fmt.Errorf("--output is required when reading from stdin")
				}
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".docx"
			}
			opts, err := a.docxOptions(pageSize, distinctQuote || a.cfg.QuoteStyle == config.QuoteDistinct)
			if err != nil {
				return err
			}
			m, body, err := a.readInput(cmd, args[0])
			if err != nil {
				return err
			}
			m = m.Merge(meta.metadata())
			if m.Author != "" {
				opts.Creator = m.Author
			}
			doc, err := mddocx.New(string(body), a.documentOptions(docx.New(opts))...)
			if err != nil {
				return err
			}
			doc.Title = m.Title
			doc.Subtitle = m.Subtitle
			if err := doc.Save(output); err != nil {
				return err
			}
			a.log.Info().Str("path", output).Msg("Wrote document")
			return nil
		},
	}
	meta.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output `path` (default INPUT with a .docx extension)")
	cmd.Flags().StringVar(&pageSize, "page-size", "", "page size: letter or a4 (default from config)")
	cmd.Flags().BoolVar(&distinctQuote, "distinct-quote", false, "indent and italicize block quotes")
	return cmd
}

func (a *app) previewCmd() *cobra.Command {
	var (
		meta   metaFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "preview [flags] INPUT",
		Short: "Convert a Markdown file to an HTML preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, body, err := a.readInput(cmd, args[0])
			if err != nil {
				return err
			}
			m = m.Merge(meta.metadata())
			backend := &mddocx.HTMLBackend{Standalone: true}
			doc, err := mddocx.New(string(body), a.documentOptions(backend)...)
			if err != nil {
				return err
			}
			doc.Title = m.Title
			doc.Subtitle = m.Subtitle
			if output != "" {
				return doc.Save(output)
			}
			backend.SetTitle(doc.Title)
			backend.SetSubtitle(doc.Subtitle)
			return backend.Render(cmd.OutOrStdout())
		},
	}
	meta.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output `path` (default stdout)")
	return cmd
}

func (a *app) inspectCmd() *cobra.Command {
	var calls bool
	cmd := &cobra.Command{
		Use:   "inspect [flags] INPUT",
		Short: "Print the styled paragraphs a Markdown file converts to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, body, err := a.readInput(cmd, args[0])
			if err != nil {
				return err
			}
			backend := new(recorder.Backend)
			if _, err := mddocx.New(string(body), a.documentOptions(backend)...); err != nil {
				return err
			}
			if !calls {
				return backend.WriteJSON(cmd.OutOrStdout())
			}
			for _, c := range backend.Calls {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), c); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&calls, "calls", false, "print backend calls instead of paragraphs")
	return cmd
}

func (a *app) fmtCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt [flags] INPUT",
		Short: "Reformat a Markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readFile(cmd, args[0])
			if err != nil {
				return err
			}
			blocks, err := mddocx.NewParser(bytes.NewReader(source)).Blocks()
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			out := new(bytes.Buffer)
			if err := format.Format(out, blocks); err != nil {
				return err
			}
			if !write || args[0] == "-" {
				_, err := cmd.OutOrStdout().Write(out.Bytes())
				return err
			}
			if bytes.Equal(source, out.Bytes()) {
				return nil
			}
			if err := os.WriteFile(args[0], out.Bytes(), 0o666); err != nil {
				return err
			}
			a.log.Info().Str("path", args[0]).Msg("Reformatted")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result to the input file instead of stdout")
	return cmd
}

// readInput reads a Markdown file and splits off its front matter
// if the configuration enables it.
func (a *app) readInput(cmd *cobra.Command, path string) (docmeta.Metadata, []byte, error) {
	source, err := readFile(cmd, path)
	if err != nil {
		return docmeta.Metadata{}, nil, err
	}
	if !a.cfg.FrontMatter {
		return docmeta.Metadata{}, source, nil
	}
	meta, body, err := docmeta.Split(source)
	if err != nil {
		return docmeta.Metadata{}, nil, fmt.Errorf("%s: %w", path, err)
	}
	a.log.Debug().
		Str("path", path).
		Str("title", meta.Title).
		Str("subtitle", meta.Subtitle).
		Msg("Read input")
	return meta, body, nil
}

func readFile(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func (a *app) documentOptions(backend mddocx.Backend) []mddocx.Option {
	quote := mddocx.QuoteAuto
	if strings.EqualFold(a.cfg.QuoteStyle, config.QuotePlain) {
		quote = mddocx.QuotePlain
	}
	return []mddocx.Option{
		mddocx.WithBackend(backend),
		mddocx.WithLogger(a.log),
		mddocx.WithQuoteStyle(quote),
		mddocx.WithTranscriptLanguages(a.cfg.TranscriptLanguages...),
	}
}

func (a *app) docxOptions(pageSize string, distinctQuote bool) (*docx.Options, error) {
	if pageSize == "" {
		pageSize = a.cfg.Page.Size
	}
	size, err := docx.ParsePageSize(pageSize)
	if err != nil {
		return nil, err
	}
	return &docx.Options{
		PageSize:      size,
		DistinctQuote: distinctQuote,
		Creator:       a.cfg.Creator,
	}, nil
}
