package main

import (
	"bytes"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joshuapare/apisetkit/pkg/apiset"
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <schema>",
		Short: "Print every entry of a schema",
		Long: `The dump command prints the namespace header, one line per entry and,
for version 6 schemas, the hash table.

Example:
  apisetdump dump apisetschema.bin
  apisetdump dump apisetschema.bin --json
  apisetdump dump apisetschema.bin --utf16 > dump.txt`,
		Args: func(cmd *cobra.Command, args []string) error {
			return checkArgs(args, 1, cmd.UseLine())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args[0])
		},
	}
}

func runDump(cmd *cobra.Command, path string) error {
	logger().Debug("opening schema", zap.String("path", path))

	f, err := apiset.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var buf bytes.Buffer
	if jsonOut {
		err = f.Namespace.WriteJSON(&buf)
	} else {
		err = f.Namespace.WriteText(&buf)
	}
	if err != nil {
		return err
	}
	return writeOutput(cmd, buf.Bytes())
}
