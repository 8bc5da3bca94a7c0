package main

import (
	"bytes"
	_ "crypto/sha256" // registers digest.Canonical
	"fmt"

	"github.com/opencontainers/go-digest"
	"github.com/spf13/cobra"

	"github.com/joshuapare/apisetkit/pkg/apiset"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <schema>",
		Short: "Validate a schema and report its header",
		Long: `The info command validates every reference in a schema and prints the
namespace header together with the content digest of the file, which
identifies the Windows build the schema came from.

Example:
  apisetdump info apisetschema.bin
  apisetdump info apisetschema.bin --json`,
		Args: func(cmd *cobra.Command, args []string) error {
			return checkArgs(args, 1, cmd.UseLine())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0])
		},
	}
}

type infoResult struct {
	File         string        `json:"file"`
	Bytes        int           `json:"bytes"`
	Digest       digest.Digest `json:"digest"`
	Version      uint32        `json:"version"`
	Size         uint32        `json:"size,omitempty"`
	Flags        []string      `json:"flags,omitempty"`
	Count        uint32        `json:"count"`
	HashFactor   uint32        `json:"hashFactor,omitempty"`
	Redirections int           `json:"redirections"`
}

func runInfo(cmd *cobra.Command, path string) error {
	f, err := apiset.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ns := f.Namespace
	res := infoResult{
		File:       path,
		Bytes:      len(f.Bytes()),
		Digest:     digest.FromBytes(f.Bytes()),
		Version:    ns.Version,
		Size:       ns.Size,
		Flags:      ns.Flags.Names(),
		Count:      ns.Count,
		HashFactor: ns.HashFactor,
	}
	for _, e := range ns.Entries {
		for r := range e.Redirections() {
			if r.Present() {
				res.Redirections++
			}
		}
	}
	if jsonOut {
		return printJSON(cmd, res)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "File: %s\n", res.File)
	fmt.Fprintf(&buf, "Bytes: %d\n", res.Bytes)
	fmt.Fprintf(&buf, "Digest: %s\n", res.Digest)
	fmt.Fprintf(&buf, "Version: %d\n", res.Version)
	if ns.Version != 2 {
		fmt.Fprintf(&buf, "Size: %d\n", res.Size)
		fmt.Fprintf(&buf, "Flags: %s\n", ns.Flags)
	}
	fmt.Fprintf(&buf, "Count: %d\n", res.Count)
	if ns.Hashed() {
		fmt.Fprintf(&buf, "HashFactor: %d\n", res.HashFactor)
	}
	fmt.Fprintf(&buf, "Redirections: %d\n", res.Redirections)
	return writeOutput(cmd, buf.Bytes())
}
