// Package placeholders draws the procedural textures used when no asset
// files are available.
package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
)

// FloorSize is the side of the floor tile in pixels
const FloorSize = 64

// SpriteSize is the side of the player sprite in pixels
const SpriteSize = 32

// Texture names understood by the asset manager
const (
	Floor  = "floor"
	Player = "player"
)

// ColorPalette defines the placeholder colors
var ColorPalette = struct {
	FloorBase    color.RGBA
	FloorGrout   color.RGBA
	PlayerBody   color.RGBA
	PlayerNose   color.RGBA
	PlayerBorder color.RGBA
}{
	FloorBase:    color.RGBA{70, 65, 60, 255},    // Dark stone gray
	FloorGrout:   color.RGBA{55, 50, 45, 255},    // Darker seams
	PlayerBody:   color.RGBA{220, 220, 220, 255}, // Light gray, tinted per player
	PlayerNose:   color.RGBA{255, 255, 255, 255},
	PlayerBorder: color.RGBA{40, 40, 40, 255},
}

// CreateFloorTile creates a stone tile with grout lines on two edges so
// that it tiles seamlessly.
func CreateFloorTile() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, FloorSize, FloorSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{ColorPalette.FloorBase}, image.Point{}, draw.Src)

	for i := 0; i < FloorSize; i++ {
		img.Set(i, 0, ColorPalette.FloorGrout)
		img.Set(0, i, ColorPalette.FloorGrout)
		// Half-offset seam
		img.Set(i, FloorSize/2, ColorPalette.FloorGrout)
	}
	return img
}

// CreatePlayerSprite creates a round sprite with a nose pointing toward
// +x, the direction of rotation zero.
func CreatePlayerSprite() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, SpriteSize, SpriteSize))

	center := SpriteSize / 2
	radius := SpriteSize/2 - 2

	for y := 0; y < SpriteSize; y++ {
		for x := 0; x < SpriteSize; x++ {
			dx := x - center
			dy := y - center
			distSq := dx*dx + dy*dy

			switch {
			case distSq <= radius*radius:
				img.Set(x, y, ColorPalette.PlayerBody)
			case distSq <= (radius+1)*(radius+1):
				img.Set(x, y, ColorPalette.PlayerBorder)
			}
		}
	}

	// Nose: a short bar from the center to the right edge
	for x := center; x < center+radius; x++ {
		for dy := -1; dy <= 1; dy++ {
			img.Set(x, center+dy, ColorPalette.PlayerNose)
		}
	}
	return img
}

// Images returns every placeholder texture keyed by name.
func Images() map[string]image.Image {
	return map[string]image.Image{
		Floor:  CreateFloorTile(),
		Player: CreatePlayerSprite(),
	}
}

// FileName maps a texture name to its file in the asset directory.
func FileName(name string) string {
	return name + ".png"
}

// GenerateAndSave writes every placeholder to dir as PNG.
func GenerateAndSave(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create asset directory: %w", err)
	}
	for name, img := range Images() {
		path := filepath.Join(dir, FileName(name))
		if err := SavePNG(img, path); err != nil {
			return fmt.Errorf("failed to save %s: %w", path, err)
		}
	}
	return nil
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
