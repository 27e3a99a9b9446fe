package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelatedFile_DisplayPath(t *testing.T) {
	f := NewRelatedFile("/Users/me/Library/Caches/com.example.app", 10, FileTypeCache)
	assert.Equal(t, "~/Library/Caches/com.example.app", f.DisplayPath("/Users/me"))
	assert.Equal(t, "/Users/me/Library/Caches/com.example.app", f.DisplayPath("/Users/other"))

	outside := NewRelatedFile("/Library/Preferences/com.example.plist", 1, FileTypePreferences)
	assert.Equal(t, "/Library/Preferences/com.example.plist", outside.DisplayPath("/Users/me"))
}

func TestDeleteResult_Protected(t *testing.T) {
	r := DeleteResult{Protected: []string{"/Applications/gamma.app"}}
	assert.True(t, r.IsProtected("/Applications/gamma.app"))
	assert.False(t, r.IsProtected("/Applications/alpha.app"))
	assert.True(t, r.NeedsFullDiskAccess())
	assert.False(t, DeleteResult{}.NeedsFullDiskAccess())
}
