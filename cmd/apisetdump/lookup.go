package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joshuapare/apisetkit/pkg/apiset"
)

var lookupImporter string

func init() {
	cmd := newLookupCmd()
	cmd.Flags().StringVar(&lookupImporter, "importer", "", "Module that imports the API set")
	rootCmd.AddCommand(cmd)
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <schema> <name>",
		Short: "Resolve a virtual library name to its host DLL",
		Long: `The lookup command resolves an API set name the way the loader does.
Version 6 schemas are searched through their hash table.

Example:
  apisetdump lookup apisetschema.bin api-ms-win-core-file-l1-2-0.dll
  apisetdump lookup apisetschema.bin api-ms-win-core-file-l1-2-0 --importer kernel32.dll`,
		Args: func(cmd *cobra.Command, args []string) error {
			return checkArgs(args, 2, cmd.UseLine())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, args[0], args[1])
		},
	}
}

type lookupResult struct {
	Name     string `json:"name"`
	Entry    string `json:"entry"`
	Index    int    `json:"index"`
	Importer string `json:"importer,omitempty"`
	Target   string `json:"target"`
}

func runLookup(cmd *cobra.Command, path, name string) error {
	f, err := apiset.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	e, err := f.Namespace.Lookup(name)
	if err != nil {
		return err
	}
	target, ok := e.Resolve(lookupImporter)
	if !ok {
		return fmt.Errorf("%s has no host module", e.Name)
	}
	logger().Debug("resolved api set",
		zap.String("name", name),
		zap.Int("index", e.Index),
		zap.String("target", target.String()),
	)

	res := lookupResult{
		Name:     name,
		Entry:    e.Name.String(),
		Index:    e.Index,
		Importer: lookupImporter,
		Target:   target.String(),
	}
	if jsonOut {
		return printJSON(cmd, res)
	}
	return writeOutput(cmd, fmt.Appendf(nil, "%s -> %s\n", res.Name, res.Target))
}
