package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rahulvramesh/cleanmac/internal/system"
	"github.com/rahulvramesh/cleanmac/internal/types"
)

func sampleApp() types.InstalledApp {
	return types.InstalledApp{
		ID:               "app-1",
		Name:             "Foo",
		BundleIdentifier: "com.example.foo",
		Path:             "/Applications/Foo.app",
		Size:             2_000_000,
		RelatedFiles: []types.RelatedFile{
			{ID: "f1", Path: "/Users/me/Library/Caches/com.example.foo", Size: 1_000_000, Type: types.FileTypeCache, Selected: true},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, "json": FormatJSON, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestApps_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatText, "/Users/me").Apps([]types.InstalledApp{sampleApp()}))
	out := buf.String()
	assert.Contains(t, out, "Foo")
	assert.Contains(t, out, "2.0 MB")
	assert.Contains(t, out, "3.0 MB")
	assert.Contains(t, out, "1 applications")

	buf.Reset()
	require.NoError(t, New(&buf, FormatText, "").Apps(nil))
	assert.Contains(t, buf.String(), "No applications found")
}

func TestApps_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatJSON, "").Apps([]types.InstalledApp{sampleApp()}))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "com.example.foo", decoded[0]["bundle_identifier"])

	buf.Reset()
	require.NoError(t, New(&buf, FormatJSON, "").Apps(nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestApp_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatText, "/Users/me").App(sampleApp()))
	out := buf.String()
	assert.Contains(t, out, "com.example.foo")
	assert.Contains(t, out, "~/Library/Caches/com.example.foo")
	assert.Contains(t, out, "Caches")
}

func TestJunk_YAML(t *testing.T) {
	categories := []types.JunkCategory{{
		ID:       "c1",
		Name:     "User Caches",
		Items:    []types.JunkItem{{ID: "i1", Path: "/tmp/x", Size: 5, Selected: true}},
		Selected: true,
	}}
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatYAML, "").Junk(categories))

	var decoded []types.JunkCategory
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, categories, decoded)
}

func TestJunk_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatText, "").Junk(nil))
	assert.Contains(t, buf.String(), "No junk found")

	buf.Reset()
	categories := []types.JunkCategory{{
		Name:        "User Logs",
		Icon:        "📄",
		Description: "Application log files",
		Items:       []types.JunkItem{{Path: "/tmp/a.log", Size: 3_000_000, Selected: true}},
	}}
	require.NoError(t, New(&buf, FormatText, "").Junk(categories))
	out := buf.String()
	assert.Contains(t, out, "User Logs (3.0 MB)")
	assert.Contains(t, out, "/tmp/a.log")
	assert.Contains(t, out, "Total: 3.0 MB")
}

func TestDeletion(t *testing.T) {
	result := types.DeleteResult{
		Requested: []string{"/a", "/b", "/c"},
		Removed:   []string{"/a"},
		Missing:   []string{"/c"},
		Protected: []string{"/b"},
	}
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatText, "").Deletion(result))
	out := buf.String()
	assert.Contains(t, out, "Moved 1 of 3 items to Trash")
	assert.Contains(t, out, "1 items were already gone")
	assert.Contains(t, out, "1 protected items")
	assert.Contains(t, out, "Full Disk Access")

	buf.Reset()
	require.NoError(t, New(&buf, FormatJSON, "").Deletion(result))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []any{"/b"}, decoded["protected"])
	assert.NotContains(t, decoded, "Tiers")
}

func TestAccessAndDisk(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatText, "").Access(false))
	assert.Contains(t, buf.String(), "not granted")

	buf.Reset()
	require.NoError(t, New(&buf, FormatJSON, "").Access(true))
	assert.JSONEq(t, `{"full_disk_access":true}`, buf.String())

	buf.Reset()
	vols := []system.Usage{{MountPoint: "/", Total: 100_000_000, Used: 25_000_000, Free: 75_000_000}}
	require.NoError(t, New(&buf, FormatText, "").Disk(vols))
	out := buf.String()
	assert.Contains(t, out, "Mounted on")
	assert.Contains(t, out, "100 MB")
	assert.Contains(t, out, "25%")
}
