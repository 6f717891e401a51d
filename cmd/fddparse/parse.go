package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dgallion1/fddparse/internal/parser"
	"github.com/dgallion1/fddparse/internal/segment"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type parseOptions struct {
	format   string
	sections bool
	watch    bool
}

func newParseCommand(a *app) *cobra.Command {
	opts := &parseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Segment a document and print its sections",
		Long: `Reads a document from a file (txt, md, html, pdf, docx, xlsx, csv) or
stdin and prints a heading -> content mapping.

Files with other extensions are read as plain text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "json" && opts.format != "yaml" {
				return fmt.Errorf("unsupported format %q (supported: json, yaml)", opts.format)
			}
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			if !opts.watch {
				return a.parseOnce(cmd.InOrStdin(), cmd.OutOrStdout(), path, opts)
			}
			if path == "-" {
				return fmt.Errorf("--watch needs a file path")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd.OutOrStdout(), path, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Output format: json, yaml")
	cmd.Flags().BoolVar(&opts.sections, "sections", false, "Print every section in document order, duplicates included")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-parse and print whenever the file changes")
	return cmd
}

func (a *app) parseOnce(stdin io.Reader, out io.Writer, path string, opts *parseOptions) error {
	text, err := a.readDocument(stdin, path)
	if err != nil {
		return err
	}
	return render(out, text, opts)
}

// readDocument returns the text of path, or of stdin when path is "-".
func (a *app) readDocument(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	var p parser.Parser = &parser.TextParser{}
	if path != "-" && parser.IsSupportedExtension(path) {
		p, err = parser.ForFile(path, parser.Options{PDFFallbackPdftotext: a.cfg.PDFFallbackPdftotext})
		if err != nil {
			return "", err
		}
	}
	text, err := p.Parse(bytes.NewReader(data), filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

func render(out io.Writer, text string, opts *parseOptions) error {
	var v any
	if opts.sections {
		v = segment.Sections(text)
	} else {
		v = segment.Segment(text)
	}

	switch opts.format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// watch prints the document once, then again after each change to it,
// until ctx is cancelled. The parent directory is watched so editors that
// save by rename are still seen.
func (a *app) watch(ctx context.Context, out io.Writer, path string, opts *parseOptions) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	refresh := func() {
		if err := a.parseOnce(nil, out, abs, opts); err != nil {
			a.log.Warn("parse failed", zap.String("path", abs), zap.Error(err))
		}
	}
	refresh()

	const debounce = 100 * time.Millisecond
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				a.log.Debug("document changed", zap.String("path", abs), zap.String("op", ev.Op.String()))
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			refresh()
		}
	}
}
