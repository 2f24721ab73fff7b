package badger

import (
	"encoding/binary"

	"github.com/poiesic/appsearch/core"
)

// Key prefixes for different data types
const (
	appRecordPrefix  = "appinf:"
	appOrderPrefix   = "appord:"
	appPackagePrefix = "apppkg:"
	appOrderSeq      = "appordseq"
)

// makeAppKey generates a key for an app record by ID.
// Format: prefix + id
func makeAppKey(id core.ID) []byte {
	buf := make([]byte, len(appRecordPrefix)+8)
	offset := copy(buf, appRecordPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeAppOrderKey generates a key for the catalog order index.
// Format: prefix + order
func makeAppOrderKey(order uint64) []byte {
	buf := make([]byte, len(appOrderPrefix)+8)
	offset := copy(buf, appOrderPrefix)
	// BigEndian so lexicographic order matches catalog order
	binary.BigEndian.PutUint64(buf[offset:], order)
	return buf
}

// makePartialAppPackageKey generates the prefix shared by every app of pkg.
// Format: prefix + package + 0x00
func makePartialAppPackageKey(pkg string) []byte {
	buf := make([]byte, len(appPackagePrefix)+len(pkg)+1)
	offset := copy(buf, appPackagePrefix)
	copy(buf[offset:], pkg)
	return buf
}

// makeAppPackageKey generates a composite key for the package index.
// Format: prefix + package + 0x00 + id
func makeAppPackageKey(pkg string, id core.ID) []byte {
	partial := makePartialAppPackageKey(pkg)
	buf := make([]byte, len(partial)+8)
	offset := copy(buf, partial)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
