// Package zipack packs file trees into ZIP archives and unpacks them again, with optional
// per-record password encryption and incremental progress reporting.
//
// The write pipeline is Resolve followed by Pack: Resolve flattens files and directories into
// an ordered list of entries, Pack streams each entry into a record. The read pipeline is
// Unpack, which recreates the tree under a destination directory; List inspects an archive
// without touching payloads. All pipelines are synchronous and single-threaded, stream
// through one reused transfer buffer, and hold at most one record open at a time.
//
// Failures are classified by the Err* sentinels in this package and wrap the underlying
// cause, so both levels are reachable with errors.Is.
package zipack

const (
	// Ext is the extension of the archives this package reads and writes.
	Ext = ".zip"

	// DefaultBufferSize is the default length of the transfer buffer, which is 16 KiB.
	DefaultBufferSize = 16 * 1024
)
