package media

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareAndRemove(t *testing.T) {
	store := LocalStore{Dir: t.TempDir()}

	savePath, url, err := store.Prepare("products/abc", "my photo.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/products/abc/"))
	assert.True(t, strings.HasSuffix(url, "_my_photo.png"))

	require.NoError(t, os.WriteFile(savePath, []byte("png"), 0o644))
	require.NoError(t, store.Remove(url))
	_, err = os.Stat(savePath)
	assert.True(t, os.IsNotExist(err))

	// second removal is a no-op
	assert.NoError(t, store.Remove(url))
}

func TestRemoveIgnoresForeignURLs(t *testing.T) {
	store := LocalStore{Dir: t.TempDir()}
	assert.NoError(t, store.Remove("https://cdn.example.com/x.png"))
	assert.NoError(t, store.Remove("/uploads/../../etc/passwd"))
}
