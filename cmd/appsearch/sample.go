package main

import "github.com/poiesic/appsearch/core"

var sampleCatalog = []struct {
	title, pkg, activity string
}{
	{"Camera", "com.android.camera2", "com.android.camera.CameraLauncher"},
	{"Calendar", "com.google.android.calendar", "com.android.calendar.AllInOneActivity"},
	{"Calculator", "com.google.android.calculator", "com.android.calculator2.Calculator"},
	{"Clock", "com.google.android.deskclock", "com.android.deskclock.DeskClock"},
	{"Chrome", "com.android.chrome", "com.google.android.apps.chrome.Main"},
	{"Chess", "org.example.chess", ".ChessActivity"},
	{"Contacts", "com.google.android.contacts", "com.android.contacts.activities.PeopleActivity"},
	{"Files", "com.google.android.documentsui", "com.android.documentsui.LauncherActivity"},
	{"Gmail", "com.google.android.gm", ".ConversationListActivityGmail"},
	{"Google Maps", "com.google.android.apps.maps", "com.google.android.maps.MapsActivity"},
	{"Google Drive", "com.google.android.apps.docs", ".app.NewMainProxyActivity"},
	{"Messages", "com.google.android.apps.messaging", ".ui.ConversationListActivity"},
	{"Phone", "com.google.android.dialer", ".extensions.GoogleDialtactsActivity"},
	{"Photos", "com.google.android.apps.photos", ".home.HomeActivity"},
	{"Play Store", "com.android.vending", "com.android.vending.AssetBrowserActivity"},
	{"Settings", "com.android.settings", ".Settings"},
	{"YouTube", "com.google.android.youtube", ".app.honeycomb.Shell$HomeActivity"},
	{"YouTube Music", "com.google.android.apps.youtube.music", ".activities.MusicActivity"},
	{"Pocket Casts", "au.com.shiftyjelly.pocketcasts", ".ui.MainActivity"},
	{"WeChat 微信", "com.tencent.mm", ".ui.LauncherUI"},
}

// sampleApps returns a fresh copy of the sample catalog.
func sampleApps() []*core.AppInfo {
	apps := make([]*core.AppInfo, len(sampleCatalog))
	for i, s := range sampleCatalog {
		apps[i] = &core.AppInfo{
			Title:    s.title,
			Package:  s.pkg,
			Activity: s.activity,
		}
	}
	return apps
}
