package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/joshuapare/apisetkit/internal/writer"
	"github.com/joshuapare/apisetkit/pkg/apiset"
)

var (
	// Global flags
	verbose    bool
	jsonOut    bool
	utf16      bool
	outputPath string
)

var rootCmd = &cobra.Command{
	Use:   "apisetdump <schema>",
	Short: "Dump Windows API set schema namespaces",
	Long: `apisetdump decodes an API set schema (versions 2, 4 and 6) and prints
every virtual library name with the host DLLs it redirects to.

Example:
  apisetdump apisetschema.bin
  apisetdump dump apisetschema.bin --json
  apisetdump lookup apisetschema.bin api-ms-win-core-file-l1-2-0.dll`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	Args: func(cmd *cobra.Command, args []string) error {
		return checkArgs(args, 1, cmd.UseLine())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDump(cmd, args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log decoding details to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&utf16, "utf16", false, "Write output as UTF-16LE")
	rootCmd.PersistentFlags().
		StringVarP(&outputPath, "output", "o", "", "Write output to a file (replaced atomically) instead of stdout")
}

// execute runs the CLI and returns the process exit code. Any failure is
// reported as a single "ERROR:" line on stderr.
func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if verbose {
			apiset.SetLogger(newLogger(stderr))
		}
	}
	defer apiset.SetLogger(nil)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.DebugLevel))
}

// logger returns the shared logger for command-level records.
func logger() *zap.Logger { return apiset.Logger().Named("apisetdump") }

// checkArgs validates that the correct number of arguments were provided
func checkArgs(args []string, expected int, usage string) error {
	if len(args) != expected {
		return fmt.Errorf("expected %d argument(s), got %d\nUsage: %s", expected, len(args), usage)
	}
	return nil
}

// writeOutput encodes a fully rendered result and hands it to the sink in a
// single write, so a failed run leaves neither stdout nor --output touched.
func writeOutput(cmd *cobra.Command, p []byte) error {
	enc := apiset.EncodingUTF8
	if utf16 {
		enc = apiset.EncodingUTF16LE
	}
	var buf bytes.Buffer
	w, err := apiset.NewEncodingWriter(&buf, enc)
	if err != nil {
		return err
	}
	if _, err := w.Write(p); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	var sink io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		sink = &writer.File{Path: outputPath}
	}
	_, err = sink.Write(buf.Bytes())
	return err
}

// printJSON renders v as indented JSON and writes it out.
func printJSON(cmd *cobra.Command, v any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return writeOutput(cmd, buf.Bytes())
}
