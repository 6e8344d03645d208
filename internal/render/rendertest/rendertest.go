// Package rendertest provides recording fakes of the render interfaces
// for tests that must not open a window.
package rendertest

import (
	"errors"
	"image"
	"image/color"
	"strings"

	"chosenoffset.com/siderun/internal/render"
)

var (
	_ render.Renderer       = (*Renderer)(nil)
	_ render.Image          = (*Image)(nil)
	_ render.GeoM           = (*GeoM)(nil)
	_ render.InputManager   = (*Input)(nil)
	_ render.ResourceLoader = (*Loader)(nil)
)

func init() {
	if render.NewGeoM == nil {
		render.NewGeoM = func() render.GeoM { return &GeoM{} }
	}
}

// Op is one recorded draw call.
type Op struct {
	Kind   string // fill, clear, image, triangles, rect, line, circle, text
	Target *Image
	Src    *Image
	Color  color.Color
	Coords []float32
	Text   string
	GeoM   *GeoM
	Alpha  float32
	Verts  []render.Vertex
	Index  []uint16
}

// Renderer records every call made through it or through images it
// created.
type Renderer struct {
	Ops    []Op
	Images []*Image
}

// NewRenderer creates an empty recorder.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Kinds lists recorded op kinds in order.
func (r *Renderer) Kinds() []string {
	kinds := make([]string, len(r.Ops))
	for i, op := range r.Ops {
		kinds[i] = op.Kind
	}
	return kinds
}

// Count returns the number of ops of a kind.
func (r *Renderer) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns every drawn string joined by newlines.
func (r *Renderer) Texts() string {
	var parts []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			parts = append(parts, op.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Reset forgets recorded ops.
func (r *Renderer) Reset() {
	r.Ops = nil
}

func (r *Renderer) record(op Op) {
	r.Ops = append(r.Ops, op)
}

// Screen creates an image to pass to Draw.
func (r *Renderer) Screen(width, height int) *Image {
	return r.newImage("screen", width, height)
}

func (r *Renderer) newImage(name string, width, height int) *Image {
	img := &Image{Name: name, W: width, H: height, r: r}
	r.Images = append(r.Images, img)
	return img
}

// NewImageFromImage implements render.Renderer.
func (r *Renderer) NewImageFromImage(src image.Image) render.Image {
	b := src.Bounds()
	img := r.newImage("uploaded", b.Dx(), b.Dy())
	img.Source = src
	return img
}

// FillRect implements render.Renderer.
func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	r.record(Op{Kind: "rect", Target: dst.(*Image), Color: clr, Coords: []float32{x, y, width, height}})
}

// StrokeLine implements render.Renderer.
func (r *Renderer) StrokeLine(dst render.Image, x0, y0, x1, y1, strokeWidth float32, clr color.Color) {
	r.record(Op{Kind: "line", Target: dst.(*Image), Color: clr, Coords: []float32{x0, y0, x1, y1, strokeWidth}})
}

// FillCircle implements render.Renderer.
func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	r.record(Op{Kind: "circle", Target: dst.(*Image), Color: clr, Coords: []float32{x, y, radius}})
}

// FillTriangles implements render.Renderer.
func (r *Renderer) FillTriangles(dst render.Image, vertices []render.Vertex, indices []uint16) {
	r.record(Op{
		Kind:   "triangles",
		Target: dst.(*Image),
		Verts:  append([]render.Vertex(nil), vertices...),
		Index:  append([]uint16(nil), indices...),
	})
}

// DrawText implements render.Renderer.
func (r *Renderer) DrawText(dst render.Image, text string, x, y int, clr color.Color, scale float64) {
	r.record(Op{Kind: "text", Target: dst.(*Image), Color: clr, Text: text, Coords: []float32{float32(x), float32(y)}})
}

// Image is a recording image.
type Image struct {
	Name     string
	W, H     int
	Source   image.Image
	Disposed bool
	r        *Renderer
}

// Size implements render.Image.
func (i *Image) Size() (int, int) { return i.W, i.H }

// Fill implements render.Image.
func (i *Image) Fill(clr color.Color) { i.r.record(Op{Kind: "fill", Target: i, Color: clr}) }

// Clear implements render.Image.
func (i *Image) Clear() { i.r.record(Op{Kind: "clear", Target: i}) }

// DrawImage implements render.Image.
func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	op := Op{Kind: "image", Target: i, Src: src.(*Image)}
	if opts != nil {
		if g, ok := opts.GeoM.(*GeoM); ok {
			cp := *g
			op.GeoM = &cp
		}
		op.Alpha = opts.Alpha
	}
	i.r.record(op)
}

// DrawTriangles implements render.Image.
func (i *Image) DrawTriangles(vertices []render.Vertex, indices []uint16, img render.Image, opts *render.DrawTrianglesOptions) {
	i.r.record(Op{Kind: "triangles", Target: i, Src: img.(*Image), Verts: vertices, Index: indices})
}

// Dispose implements render.Image.
func (i *Image) Dispose() { i.Disposed = true }

// GeoM records the transformation steps applied to it.
type GeoM struct {
	Steps []string
	TX    float64
	TY    float64
	Angle float64
	SX    float64
	SY    float64
}

// Translate implements render.GeoM.
func (g *GeoM) Translate(tx, ty float64) {
	g.TX += tx
	g.TY += ty
	g.Steps = append(g.Steps, "translate")
}

// Scale implements render.GeoM.
func (g *GeoM) Scale(sx, sy float64) {
	g.SX, g.SY = sx, sy
	g.Steps = append(g.Steps, "scale")
}

// Rotate implements render.GeoM.
func (g *GeoM) Rotate(angle float64) {
	g.Angle += angle
	g.Steps = append(g.Steps, "rotate")
}

// Input is a scriptable input manager.
type Input struct {
	Pressed  map[render.Key]bool
	Released map[render.Key]bool
	CursorX  int
	CursorY  int
}

// NewInput creates an idle input.
func NewInput() *Input {
	return &Input{
		Pressed:  make(map[render.Key]bool),
		Released: make(map[render.Key]bool),
	}
}

// Press marks key as just pressed.
func (in *Input) Press(key render.Key) {
	in.Pressed[key] = true
}

// Release marks key as just released.
func (in *Input) Release(key render.Key) {
	in.Released[key] = true
}

// EndFrame clears the edge sets, as the engine does between ticks.
func (in *Input) EndFrame() {
	clear(in.Pressed)
	clear(in.Released)
}

// IsKeyJustPressed implements render.InputManager.
func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.Pressed[key] }

// IsKeyJustReleased implements render.InputManager.
func (in *Input) IsKeyJustReleased(key render.Key) bool { return in.Released[key] }

// GetCursorPosition implements render.InputManager.
func (in *Input) GetCursorPosition() (int, int) { return in.CursorX, in.CursorY }

// ErrNotFound is returned by Loader for unknown paths.
var ErrNotFound = errors.New("rendertest: no such image")

// Loader serves images from a map keyed by path.
type Loader struct {
	R      *Renderer
	Files  map[string]image.Image
	Loaded []string
}

// LoadImage implements render.ResourceLoader.
func (l *Loader) LoadImage(path string) (render.Image, error) {
	src, ok := l.Files[path]
	if !ok {
		return nil, ErrNotFound
	}
	l.Loaded = append(l.Loaded, path)
	return l.R.NewImageFromImage(src), nil
}
