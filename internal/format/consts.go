// Package format houses the low-level layout model and record decoders for
// the API set schema (apisetschema) namespace format. Three incompatible
// on-disk schema versions exist (2, 4 and 6), selected by the ULONG at offset
// 0. Decoders here are allocation-free views over the caller's buffer and
// bounds-check every offset before reading, so higher-level packages can walk
// a namespace without trusting its contents.
//
// All offsets stored in a namespace are byte offsets relative to the start of
// the namespace buffer. All stored lengths are in bytes; text is UTF-16LE.
package format

const (
	// Version2 is the schema used by Windows 7 and Server 2008 R2.
	Version2 = 2
	// Version4 is the schema used by Windows 8.1.
	Version4 = 4
	// Version6 is the hashed schema used by Windows 10 and later.
	Version6 = 6

	// VersionFieldSize is the size of the leading version tag shared by all layouts.
	VersionFieldSize = 4

	// UTF16UnitSize is the number of bytes per UTF-16 code unit.
	UTF16UnitSize = 2
)

// Namespace flags (API_SET_FLAG_*), shared by v4 and v6 at every level.
const (
	FlagSealed = 0x01
	FlagExt    = 0x02
)

// ============================================================================
// Version 2
// ============================================================================

// API_SET_NAMESPACE_V2.
const (
	NSV2VersionOffset = 0x00 // ULONG
	NSV2CountOffset   = 0x04 // ULONG
	NSV2ArrayOffset   = 0x08 // API_SET_NAMESPACE_ENTRY_V2[Count]

	// NSV2MinSize is sizeof(API_SET_NAMESPACE_V2), which includes one array element.
	NSV2MinSize = NSV2ArrayOffset + EntryV2Size // 0x14
)

// API_SET_NAMESPACE_ENTRY_V2.
const (
	EntryV2NameOffset  = 0x00 // ULONG
	EntryV2NameLength  = 0x04 // ULONG
	EntryV2DataOffset  = 0x08 // ULONG, offset of API_SET_VALUE_ENTRY_V2
	EntryV2Size        = 0x0C
	ValueV2CountOffset = 0x00 // ULONG NumberOfRedirections
	ValueV2ArrayOffset = 0x04 // API_SET_VALUE_ENTRY_REDIRECTION_V2[NumberOfRedirections]
	ValueV2HeaderSize  = ValueV2ArrayOffset
	RedirV2NameOffset  = 0x00 // ULONG
	RedirV2NameLength  = 0x04 // USHORT (+2 padding)
	RedirV2ValueOffset = 0x08 // ULONG
	RedirV2ValueLength = 0x0C // USHORT (+2 padding)
	RedirectionV2Size  = 0x10
)

// ============================================================================
// Version 4
// ============================================================================

// API_SET_NAMESPACE_V4.
const (
	NSV4VersionOffset = 0x00 // ULONG
	NSV4SizeOffset    = 0x04 // ULONG, declared size of the whole namespace
	NSV4FlagsOffset   = 0x08 // ULONG
	NSV4CountOffset   = 0x0C // ULONG
	NSV4ArrayOffset   = 0x10 // API_SET_NAMESPACE_ENTRY_V4[Count]

	// NSV4MinSize is sizeof(API_SET_NAMESPACE_V4), which includes one array element.
	NSV4MinSize = NSV4ArrayOffset + EntryV4Size // 0x28
)

// API_SET_NAMESPACE_ENTRY_V4.
const (
	EntryV4FlagsOffset = 0x00 // ULONG
	EntryV4NameOffset  = 0x04 // ULONG
	EntryV4NameLength  = 0x08 // ULONG
	EntryV4AliasOffset = 0x0C // ULONG
	EntryV4AliasLength = 0x10 // ULONG
	EntryV4DataOffset  = 0x14 // ULONG, offset of API_SET_VALUE_ENTRY_V4
	EntryV4Size        = 0x18
	ValueV4FlagsOffset = 0x00 // ULONG
	ValueV4CountOffset = 0x04 // ULONG NumberOfRedirections
	ValueV4ArrayOffset = 0x08 // API_SET_VALUE_ENTRY_REDIRECTION_V4[NumberOfRedirections]
	ValueV4HeaderSize  = ValueV4ArrayOffset
	RedirV4FlagsOffset = 0x00 // ULONG
	RedirV4NameOffset  = 0x04 // ULONG
	RedirV4NameLength  = 0x08 // ULONG
	RedirV4ValueOffset = 0x0C // ULONG
	RedirV4ValueLength = 0x10 // ULONG
	RedirectionV4Size  = 0x14
)

// ============================================================================
// Version 6
// ============================================================================

// API_SET_NAMESPACE_V6.
const (
	NSV6VersionOffset    = 0x00 // ULONG
	NSV6SizeOffset       = 0x04 // ULONG
	NSV6FlagsOffset      = 0x08 // ULONG
	NSV6CountOffset      = 0x0C // ULONG
	NSV6EntryOffset      = 0x10 // ULONG, offset of API_SET_NAMESPACE_ENTRY_V6[Count]
	NSV6HashOffset       = 0x14 // ULONG, offset of API_SET_HASH_ENTRY_V6[Count]
	NSV6HashFactorOffset = 0x18 // ULONG
	NSV6MinSize          = 0x1C
)

// API_SET_NAMESPACE_ENTRY_V6.
const (
	EntryV6FlagsOffset  = 0x00 // ULONG
	EntryV6NameOffset   = 0x04 // ULONG
	EntryV6NameLength   = 0x08 // ULONG
	EntryV6HashedLength = 0x0C // ULONG, bytes of the name covered by the hash
	EntryV6ValueOffset  = 0x10 // ULONG, offset of API_SET_VALUE_ENTRY_V6[ValueCount]
	EntryV6ValueCount   = 0x14 // ULONG
	EntryV6Size         = 0x18
)

// API_SET_VALUE_ENTRY_V6 and API_SET_HASH_ENTRY_V6.
const (
	RedirV6FlagsOffset = 0x00 // ULONG
	RedirV6NameOffset  = 0x04 // ULONG
	RedirV6NameLength  = 0x08 // ULONG
	RedirV6ValueOffset = 0x0C // ULONG
	RedirV6ValueLength = 0x10 // ULONG
	RedirectionV6Size  = 0x14
	HashV6HashOffset   = 0x00 // ULONG
	HashV6IndexOffset  = 0x04 // ULONG
	HashEntryV6Size    = 0x08
)
