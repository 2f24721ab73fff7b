package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a stable identity key for catalog entries.
// It is derived from the app's component name, so the same app always
// receives the same ID across catalog rebuilds.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// IDFromComponent derives the identity key of an app from its package and activity.
func IDFromComponent(pkg, activity string) ID {
	return IDFromContent(pkg + "/" + activity)
}

// AppInfo is a single searchable entry in the apps catalog.
type AppInfo struct {
	Id       ID
	Title    string // Display title, matched against queries
	Package  string
	Activity string // Component within Package that launches the app
	Order    uint64 // Catalog ordinal assigned by storage
	Payload  any    // Application payload, carried through the pipeline untouched and never persisted
}

// ComponentName returns the "package/activity" form of the app's component.
func (a *AppInfo) ComponentName() string {
	return a.Package + "/" + a.Activity
}

// StringID identifies a localizable string resolved by an external lookup.
type StringID string

// StringSearchCorpusApps is the label of the apps search section header.
const StringSearchCorpusApps StringID = "search_corpus_apps"

// SectionInfo describes a logical section of the search result list.
// Instances are created once by the pipeline and shared read-only.
type SectionInfo struct {
	TitleID    StringID // Empty for sections without a label
	Title      string   // Label resolved from TitleID
	Decoration any      // Opaque handle for the rendering layer
}

// ItemKind tags the variant of an AdapterItem.
type ItemKind int

const (
	// KindSearchTitle is a section header row.
	KindSearchTitle ItemKind = iota + 1
	// KindApp is a row carrying a matched app.
	KindApp
)

// String returns a readable name for the kind.
func (k ItemKind) String() string {
	switch k {
	case KindSearchTitle:
		return "search_title"
	case KindApp:
		return "app"
	default:
		return "unknown"
	}
}

// AdapterItem is one row of the search result list handed to the UI adapter.
type AdapterItem struct {
	Kind          ItemKind
	Section       *SectionInfo
	Position      int      // Offset within the emitted list
	RankInSection int      // Offset within the section's app rows, -1 for headers
	App           *AppInfo // Nil for headers
}

// AsSearchTitle creates a header row for section at position.
func AsSearchTitle(section *SectionInfo, position int) AdapterItem {
	return AdapterItem{
		Kind:          KindSearchTitle,
		Section:       section,
		Position:      position,
		RankInSection: -1,
	}
}

// AsApp creates an app row at position with the given rank inside section.
func AsApp(section *SectionInfo, position int, app *AppInfo, rank int) AdapterItem {
	return AdapterItem{
		Kind:          KindApp,
		Section:       section,
		Position:      position,
		RankInSection: rank,
		App:           app,
	}
}
