package storage

import (
	"testing"

	"github.com/poiesic/appsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(1)},
		{"large ID", core.ID(18446744073709551615)},
		{"component ID", core.IDFromComponent("com.example.camera", ".Main")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestMarshalUnmarshalAppInfo(t *testing.T) {
	app := &core.AppInfo{
		Id:       core.IDFromComponent("com.example.maps", ".MapsActivity"),
		Title:    "Google Maps 地图",
		Package:  "com.example.maps",
		Activity: ".MapsActivity",
		Order:    42,
		Payload:  "not persisted",
	}

	decoded, err := UnmarshalAppInfo(MarshalAppInfo(app))
	require.NoError(t, err)

	assert.Equal(t, app.Id, decoded.Id)
	assert.Equal(t, app.Title, decoded.Title)
	assert.Equal(t, app.Package, decoded.Package)
	assert.Equal(t, app.Activity, decoded.Activity)
	assert.Equal(t, app.Order, decoded.Order)
	assert.Nil(t, decoded.Payload)
}

func TestUnmarshalAppInfo_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
		{"truncated title", []byte{1, 10, 'a'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalAppInfo(tt.data)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}
