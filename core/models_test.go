package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "short content", content: "com.example.camera/.Main"},
		{name: "empty string", content: ""},
		{name: "unicode content", content: "com.example.日本語/.Main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromComponent(t *testing.T) {
	if IDFromComponent("com.example.camera", ".Main") != IDFromContent("com.example.camera/.Main") {
		t.Errorf("IDFromComponent() should hash package/activity")
	}
	if IDFromComponent("com.example.camera", ".Main") == IDFromComponent("com.example.camera", ".Video") {
		t.Errorf("IDFromComponent() produced same ID for different activities")
	}
}

func TestAppInfo_ComponentName(t *testing.T) {
	app := AppInfo{Package: "com.example.clock", Activity: ".AlarmActivity"}
	if got := app.ComponentName(); got != "com.example.clock/.AlarmActivity" {
		t.Errorf("ComponentName() = %q", got)
	}
}

func TestAsSearchTitle(t *testing.T) {
	section := &SectionInfo{TitleID: StringSearchCorpusApps, Title: "Apps"}
	item := AsSearchTitle(section, 0)

	if item.Kind != KindSearchTitle {
		t.Errorf("Kind = %v, want %v", item.Kind, KindSearchTitle)
	}
	if item.Section != section {
		t.Errorf("Section not carried through")
	}
	if item.App != nil {
		t.Errorf("header must not carry an app")
	}
	if item.RankInSection != -1 {
		t.Errorf("RankInSection = %d, want -1", item.RankInSection)
	}
}

func TestAsApp(t *testing.T) {
	section := &SectionInfo{}
	app := &AppInfo{Title: "Camera"}
	item := AsApp(section, 3, app, 2)

	if item.Kind != KindApp || item.Position != 3 || item.RankInSection != 2 {
		t.Errorf("unexpected item %+v", item)
	}
	if item.App != app {
		t.Errorf("app must be carried by reference")
	}
}

func TestItemKind_String(t *testing.T) {
	tests := []struct {
		kind ItemKind
		want string
	}{
		{KindSearchTitle, "search_title"},
		{KindApp, "app"},
		{ItemKind(0), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ItemKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
