package catalog

import (
	"testing"

	"github.com/poiesic/appsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(title, pkg string) *core.AppInfo {
	return &core.AppInfo{
		Id:       core.IDFromComponent(pkg, ".Main"),
		Title:    title,
		Package:  pkg,
		Activity: ".Main",
	}
}

func titlesOf(apps []*core.AppInfo) []string {
	out := make([]string, len(apps))
	for i, a := range apps {
		out[i] = a.Title
	}
	return out
}

func TestAllAppsList_Add(t *testing.T) {
	l := NewAllAppsList()
	l.Add(newApp("Camera", "com.camera"), nil, newApp("Clock", "com.clock"))

	require.Equal(t, 2, l.Len())
	assert.Equal(t, []string{"Camera", "Clock"}, titlesOf(l.Data()))
	assert.Equal(t, uint64(1), l.Data()[0].Order)
	assert.Equal(t, uint64(2), l.Data()[1].Order)
	assert.False(t, l.Loaded())
}

func TestAllAppsList_PublishedSliceIsStable(t *testing.T) {
	l := NewAllAppsList()
	l.Add(newApp("Camera", "com.camera"), newApp("Clock", "com.clock"))

	before := l.Data()
	l.UpdateTitle(core.IDFromComponent("com.camera", ".Main"), "Camera Pro")
	l.RemovePackage("com.clock")
	l.Add(newApp("Maps", "com.maps"))

	assert.Equal(t, []string{"Camera", "Clock"}, titlesOf(before))
	assert.Equal(t, []string{"Camera Pro", "Maps"}, titlesOf(l.Data()))
}

func TestAllAppsList_RemovePackage(t *testing.T) {
	l := NewAllAppsList()
	l.Add(
		&core.AppInfo{Title: "Maps", Package: "com.maps", Activity: ".Maps"},
		newApp("Mail", "com.mail"),
		&core.AppInfo{Title: "Navigation", Package: "com.maps", Activity: ".Nav"},
	)

	removed := l.RemovePackage("com.maps")
	assert.Equal(t, []string{"Maps", "Navigation"}, titlesOf(removed))
	assert.Equal(t, []string{"Mail"}, titlesOf(l.Data()))

	assert.Empty(t, l.RemovePackage("com.unknown"))
	assert.Equal(t, 1, l.Len())
}

func TestAllAppsList_UpdateTitle(t *testing.T) {
	l := NewAllAppsList()
	original := newApp("Camera", "com.camera")
	l.Add(original, newApp("Clock", "com.clock"))

	assert.True(t, l.UpdateTitle(original.Id, "Cam"))
	assert.Equal(t, []string{"Cam", "Clock"}, titlesOf(l.Data()))
	assert.Equal(t, "Camera", original.Title)

	assert.False(t, l.UpdateTitle(core.ID(99), "Nope"))
}

func TestAllAppsList_ReplaceAndClear(t *testing.T) {
	l := NewAllAppsList()
	l.Add(newApp("Old", "com.old"))

	loaded := []*core.AppInfo{
		{Title: "A", Package: "com.a", Activity: ".Main", Order: 4},
		{Title: "B", Package: "com.b", Activity: ".Main", Order: 9},
	}
	l.Replace(loaded)
	assert.True(t, l.Loaded())
	assert.Equal(t, []string{"A", "B"}, titlesOf(l.Data()))

	l.Add(newApp("C", "com.c"))
	assert.Equal(t, uint64(10), l.Data()[2].Order)

	l.Clear()
	assert.Zero(t, l.Len())
	assert.False(t, l.Loaded())
}
