package placeholders

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloorTileSeams(t *testing.T) {
	img := CreateFloorTile()
	assert.Equal(t, FloorSize, img.Bounds().Dx())
	assert.Equal(t, ColorPalette.FloorGrout, img.RGBAAt(10, 0))
	assert.Equal(t, ColorPalette.FloorGrout, img.RGBAAt(0, 10))
	assert.Equal(t, ColorPalette.FloorBase, img.RGBAAt(10, 10))
}

func TestPlayerSpriteFacesPositiveX(t *testing.T) {
	img := CreatePlayerSprite()
	c := SpriteSize / 2
	assert.Equal(t, ColorPalette.PlayerNose, img.RGBAAt(c+8, c))
	assert.Equal(t, ColorPalette.PlayerBody, img.RGBAAt(c-8, c))
	assert.Zero(t, img.RGBAAt(0, 0).A, "corners are transparent")
}

func TestGenerateAndSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "assets")
	require.NoError(t, GenerateAndSave(dir))

	for name := range Images() {
		f, err := os.Open(filepath.Join(dir, FileName(name)))
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.NotZero(t, img.Bounds().Dx(), name)
	}
}
