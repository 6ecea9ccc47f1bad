package media_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/cacti/internal/media"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestEnsureDirIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "media")
	store := media.NewStore(dir)

	require.NoError(t, store.EnsureDir())
	require.NoError(t, store.EnsureDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSaveWritesOriginalAndThumbnail(t *testing.T) {
	store := media.NewStore(t.TempDir())
	require.NoError(t, store.EnsureDir())

	name, err := store.Save("saguaro.png", encodePNG(t, 800, 600))
	require.NoError(t, err)
	assert.Equal(t, "saguaro.png", name)

	_, err = os.Stat(filepath.Join(store.Dir(), "saguaro.png"))
	assert.NoError(t, err)

	thumbBytes, err := os.ReadFile(filepath.Join(store.Dir(), "saguaro_thumb.png"))
	require.NoError(t, err)

	thumb, err := png.Decode(bytes.NewReader(thumbBytes))
	require.NoError(t, err)
	assert.LessOrEqual(t, thumb.Bounds().Dx(), media.ThumbnailSize)
	assert.LessOrEqual(t, thumb.Bounds().Dy(), media.ThumbnailSize)
	// aspect ratio preserved: 800x600 scales to 320x240
	assert.Equal(t, 320, thumb.Bounds().Dx())
	assert.Equal(t, 240, thumb.Bounds().Dy())
}

func TestSaveKeepsSmallImagesUnscaled(t *testing.T) {
	store := media.NewStore(t.TempDir())
	require.NoError(t, store.EnsureDir())

	_, err := store.Save("tiny.png", encodePNG(t, 50, 40))
	require.NoError(t, err)

	thumbBytes, err := os.ReadFile(filepath.Join(store.Dir(), "tiny_thumb.png"))
	require.NoError(t, err)

	thumb, err := png.Decode(bytes.NewReader(thumbBytes))
	require.NoError(t, err)
	assert.Equal(t, 50, thumb.Bounds().Dx())
	assert.Equal(t, 40, thumb.Bounds().Dy())
}

func TestSaveUniquifiesCollidingNames(t *testing.T) {
	store := media.NewStore(t.TempDir())
	require.NoError(t, store.EnsureDir())

	first, err := store.Save("saguaro.png", encodePNG(t, 10, 10))
	require.NoError(t, err)

	second, err := store.Save("saguaro.png", encodePNG(t, 10, 10))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, filepath.Ext(second) == ".png")
}

func TestSaveStripsDirectoryComponents(t *testing.T) {
	store := media.NewStore(t.TempDir())
	require.NoError(t, store.EnsureDir())

	name, err := store.Save("../evil/../saguaro.png", encodePNG(t, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, "saguaro.png", name)
}

func TestSaveRejectsNonImages(t *testing.T) {
	store := media.NewStore(t.TempDir())
	require.NoError(t, store.EnsureDir())

	_, err := store.Save("notes.txt", []byte("not an image"))
	assert.Error(t, err)
}
