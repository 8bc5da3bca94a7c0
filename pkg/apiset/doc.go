/*
Package apiset decodes and renders Windows API set schema namespaces, the
apisetschema.dll data that maps virtual library names such as
api-ms-win-core-file-l1-1-0 to the host DLLs that implement them.

# Quick Start

Dump a schema extracted from the .apiset section of apisetschema.dll:

	out, err := apiset.Render(data)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Print(out)

Open a file and resolve a name the way the loader does:

	f, err := apiset.Open("apisetschema.bin")
	if err != nil {
	    log.Fatal(err)
	}
	defer f.Close()

	e, err := f.Namespace.Lookup("api-ms-win-core-file-l1-2-0.dll")
	if err != nil {
	    log.Fatal(err)
	}
	target, _ := e.Resolve("")
	fmt.Println(target) // kernel32.dll

# Versions

Three schema versions exist and share nothing but the leading version tag:

  - 2: Windows 7. Entries hold a name and a value offset.
  - 4: Windows 8.1. Adds namespace, entry and redirection flags plus an alias.
  - 6: Windows 10+. Adds a hash table; each name is split into a hashed prefix
    and an unhashed suffix.

Decode validates every offset stored in the namespace before returning, so a
decoded Namespace can be rendered without further checks. All text is
borrowed from the input buffer, which must not be modified while the
Namespace is in use.

# Errors

Failures wrap one of ErrTruncated, ErrUnknownVersion or ErrOutOfBounds. An
out-of-bounds reference additionally carries a *RangeError with the offending
offset and length:

	var re *apiset.RangeError
	if errors.As(err, &re) {
	    fmt.Printf("bad %s at 0x%X\n", re.What, re.Offset)
	}
*/
package apiset
