package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/fakemap/fakemap/internal/document"
	log "github.com/fakemap/fakemap/internal/logging"
	"github.com/fakemap/fakemap/pkg/closer"
)

// ErrKeyNotFound is returned by commands which require a key to be present.
var ErrKeyNotFound = errors.New("key not found")

// ErrInputTooLarge is returned when a document exceeds --max-input-size.
var ErrInputTooLarge = errors.New("input is too large")

const defaultMaxInputSize = "64MiB"

// DocumentConfig is the configuration shared by every command which reads a
// document.
type DocumentConfig struct {
	// InputFormat is the format of the input document. "auto" selects it from
	// the file extension.
	InputFormat string

	// MaxInputSize bounds how much of the input is read, e.g. "64MiB". Empty
	// or zero reads without a limit.
	MaxInputSize string

	// OutputFormat is the format of the output. Empty or "auto" selects it from
	// the extension of Output, or keeps the input format.
	OutputFormat string

	// Output is the file the result is written to. Empty or "-" is stdout. The
	// input is read completely first, so it may name the input file.
	Output string
}

// loadedDocument is a decoded input and the formats it is read and written in.
type loadedDocument struct {
	doc          *document.Document
	inputFormat  document.Format
	outputFormat document.Format
	output       string
}

var formatNames = func() []string {
	names := []string{string(document.FormatAuto)}
	for _, format := range document.Formats {
		names = append(names, string(format))
	}
	return names
}()

func RegisterInputFlags(cmd *cobra.Command, config *DocumentConfig) error {
	cmd.Flags().StringVar(&config.InputFormat, "from", string(document.FormatAuto), "format of the input document (auto, yaml, yamlv2, json, cbor)")
	cmd.Flags().StringVar(&config.MaxInputSize, "max-input-size", defaultMaxInputSize, "largest document that will be read; 0 disables the limit")
	return cmd.RegisterFlagCompletionFunc("from", cobra.FixedCompletions(formatNames, cobra.ShellCompDirectiveNoFileComp))
}

func RegisterDocumentFlags(cmd *cobra.Command, config *DocumentConfig) error {
	if err := RegisterInputFlags(cmd, config); err != nil {
		return err
	}
	cmd.Flags().StringVar(&config.OutputFormat, "to", "", "format of the output; defaults to the format of --output, then the input format")
	cmd.Flags().StringVarP(&config.Output, "output", "o", "-", "file to write the result to, or - for stdout")
	return cmd.RegisterFlagCompletionFunc("to", cobra.FixedCompletions(formatNames, cobra.ShellCompDirectiveNoFileComp))
}

// load reads the document at path, or stdin when path is empty or "-".
func (c *DocumentConfig) load(cmd *cobra.Command, path string) (loaded *loadedDocument, err error) {
	from, err := document.ParseFormat(c.InputFormat)
	if err != nil {
		return nil, err
	}
	to, err := document.ParseFormat(c.OutputFormat)
	if err != nil {
		return nil, err
	}

	limit, err := parseSize(c.MaxInputSize)
	if err != nil {
		return nil, err
	}

	var closers closer.Stack
	defer closers.CloseInto(&err)

	var r io.Reader = cmd.InOrStdin()
	if !isStdio(path) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open document: %w", err)
		}
		closers.Add(path, f)
		r = f
	}

	if limit > 0 {
		r = &sizeLimitedReader{r: r, remaining: limit, limit: limit}
	}

	doc, resolved, err := document.Load(r, path, from)
	if err != nil {
		return nil, err
	}

	loaded = &loadedDocument{doc: doc, inputFormat: resolved, outputFormat: to, output: c.Output}
	if to == document.FormatAuto {
		loaded.outputFormat = resolved
		if !isStdio(c.Output) && filepath.Ext(c.Output) != "" {
			loaded.outputFormat = document.FormatAuto.Resolve(c.Output)
		}
	}

	log.Debug().
		Str("path", path).
		Str("input", string(loaded.inputFormat)).
		Str("output", string(loaded.outputFormat)).
		Int("entries", doc.Len()).
		Msg("loaded document")
	return loaded, nil
}

func (l *loadedDocument) write(cmd *cobra.Command) error {
	return l.writeWith(cmd, func(w io.Writer) error {
		return document.Write(w, l.doc, l.outputFormat)
	})
}

func (l *loadedDocument) writeValue(cmd *cobra.Command, value document.Value) error {
	out, err := document.EncodeValue(value, l.outputFormat)
	if err != nil {
		return err
	}
	return l.writeWith(cmd, func(w io.Writer) error {
		_, err := w.Write(out)
		return err
	})
}

// writeWith hands the configured output to write, creating the output file if
// one was requested.
func (l *loadedDocument) writeWith(cmd *cobra.Command, write func(io.Writer) error) (err error) {
	if isStdio(l.output) {
		out := cmd.OutOrStdout()
		if f, ok := out.(*os.File); ok && l.outputFormat == document.FormatCBOR && isatty.IsTerminal(f.Fd()) {
			log.Warn().Msg("writing binary CBOR to a terminal")
		}
		return write(out)
	}

	f, err := os.Create(l.output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}

	var closers closer.Stack
	closers.Add(l.output, f)
	defer closers.CloseInto(&err)

	log.Debug().Str("path", l.output).Msg("writing output")
	return write(f)
}

func parseSize(sizeString string) (uint64, error) {
	if sizeString == "" {
		return 0, nil
	}
	size, err := humanize.ParseBytes(sizeString)
	if err != nil {
		return 0, fmt.Errorf("could not parse %s as a number of bytes: %w", sizeString, err)
	}
	return size, nil
}

// sizeLimitedReader fails once more than limit bytes are available, rather than
// silently truncating like io.LimitReader.
type sizeLimitedReader struct {
	r         io.Reader
	remaining uint64
	limit     uint64
}

func (l *sizeLimitedReader) Read(p []byte) (int, error) {
	if l.remaining == 0 {
		var extra [1]byte
		n, err := l.r.Read(extra[:])
		if n > 0 {
			return 0, fmt.Errorf("%w: limit is %s", ErrInputTooLarge, humanize.Bytes(l.limit))
		}
		return 0, err
	}

	if uint64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= uint64(n)
	return n, err
}

func isStdio(path string) bool {
	return path == "" || path == "-"
}

// pathArg returns the optional document path following the required args.
func pathArg(args []string, required int) string {
	if len(args) > required {
		return args[required]
	}
	return ""
}
