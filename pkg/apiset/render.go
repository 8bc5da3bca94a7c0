package apiset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joshuapare/apisetkit/internal/format"
)

// Render decodes data and returns its textual dump. Nothing is returned on
// failure; there is no partial output.
func Render(data []byte) (string, error) {
	ns, err := Decode(data)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := ns.WriteText(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteText writes the line-oriented dump of the namespace:
//
//	Version: 6
//	Size: 123
//	Flags: (sealed)
//	Count: 1
//	HashFactor: 31
//	0|0x1A2B3C4D|api-ms-win-core-file-l1-2{-0} -> [kernel32.dll]
//	0x1A2B3C4D -> 0
//
// v2 omits Size, Flags and HashFactor; v4 omits HashFactor and the hash
// columns. Entry and redirection flags are shown only when non-zero.
func (ns *Namespace) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	p := textPrinter{w: bw}

	p.line("Version: ", strconv.FormatUint(uint64(ns.Version), 10))
	if ns.Version != format.Version2 {
		p.line("Size: ", strconv.FormatUint(uint64(ns.Size), 10))
		p.line("Flags: ", ns.Flags.Format(false))
	}
	p.line("Count: ", strconv.FormatUint(uint64(ns.Count), 10))
	if ns.Hashed() {
		p.line("HashFactor: ", strconv.FormatUint(uint64(ns.HashFactor), 10))
	}

	for i := range ns.Entries {
		e := &ns.Entries[i]
		p.str(strconv.Itoa(e.Index))
		p.str("|")
		switch ns.Version {
		case format.Version2:
			p.str(e.Name.String())
		case format.Version4:
			p.str(e.Name.String())
			p.str(e.Flags.Format(true))
		default:
			p.str(formatHash(e.Hash))
			p.str("|")
			p.str(e.HashedName().String())
			p.str("{")
			p.str(e.Suffix().String())
			p.str("}")
			p.str(e.Flags.Format(true))
		}
		p.str(" -> [")
		first := true
		for r := range e.Redirections() {
			if !r.Present() {
				continue
			}
			if !first {
				p.str(",")
			}
			first = false
			p.str(r.Target.String())
			if ns.Version != format.Version2 {
				p.str(r.Flags.Format(true))
			}
		}
		p.str("]\n")
	}

	for _, he := range ns.Hashes {
		p.line(formatHash(he.Hash), " -> "+strconv.FormatUint(uint64(he.Index), 10))
	}

	if p.err != nil {
		return p.err
	}
	return bw.Flush()
}

// formatHash renders a hash as 0x followed by eight upper-case hex digits.
func formatHash(h uint32) string {
	return fmt.Sprintf("0x%08X", h)
}

// textPrinter records the first write error so the walk stays linear.
type textPrinter struct {
	w   *bufio.Writer
	err error
}

func (p *textPrinter) str(s string) {
	if p.err != nil {
		return
	}
	_, p.err = p.w.WriteString(s)
}

func (p *textPrinter) line(label, value string) {
	p.str(label)
	p.str(value)
	p.str("\n")
}
