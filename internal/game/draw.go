package game

import (
	"image/color"
	"math"

	"chosenoffset.com/siderun/internal/core/geom"
	"chosenoffset.com/siderun/internal/core/visibility"
	"chosenoffset.com/siderun/internal/placeholders"
	"chosenoffset.com/siderun/internal/render"
	"chosenoffset.com/siderun/internal/world"
)

// Debug ray colors by angle kind
var rayColors = map[visibility.Kind]color.RGBA{
	visibility.Primary: {255, 0, 0, 255},
	visibility.AuxCCW:  {0, 255, 0, 255},
	visibility.AuxCW:   {0, 0, 255, 255},
}

// Draw renders the frame. The visibility fan goes over world geometry and
// under the player sprites.
func (p *Play) Draw(screen render.Image) {
	screen.Clear()
	p.drawFloor(screen)
	p.drawOverlay(screen)
	p.drawColliders(screen)

	source := p.cursor
	if player, ok := p.world.PlayerObject(p.local); ok {
		player.LookAt(p.camera.ScreenToWorld(p.cursor))
		source = p.camera.WorldToScreen(player.Position)
	}
	p.polygon = visibility.Compute(source, p.occluders(), p.visOpts)
	p.drawFan(screen)
	if p.debugRays {
		p.drawRays(screen)
	}

	p.drawPlayers(screen)
}

func (p *Play) drawFloor(screen render.Image) {
	tile, ok := p.textures.Texture(placeholders.Floor)
	if !ok {
		return
	}
	tw, th := tile.Size()
	for _, origin := range FloorTiles(p.camera.Position, tw, th, p.cfg.Window.Width, p.cfg.Window.Height) {
		geoM := render.NewGeoM()
		geoM.Translate(origin.X, origin.Y)
		screen.DrawImage(tile, &render.DrawImageOptions{GeoM: geoM})
	}
}

// drawOverlay darkens the whole viewport; the fan then marks what is seen.
func (p *Play) drawOverlay(screen render.Image) {
	alpha := uint8(math.Round(p.cfg.Render.OverlayAlpha * 255))
	w, h := float32(p.cfg.Window.Width), float32(p.cfg.Window.Height)
	p.renderer.FillRect(screen, 0, 0, w, h, color.RGBA{A: alpha})
}

func (p *Play) drawColliders(screen render.Image) {
	width := float32(p.cfg.Render.OutlineWidth)
	for _, obj := range p.world.Objects() {
		if obj.Collider == nil {
			continue
		}
		center := p.camera.WorldToScreen(obj.Position)
		corners := obj.Collider.Corners()
		for i := range corners {
			a := center.Add(geom.Rotate(corners[i], obj.Rotation))
			b := center.Add(geom.Rotate(corners[(i+1)%4], obj.Rotation))
			p.renderer.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, obj.Color)
		}
	}
}

// occluders returns every collider in screen space except the viewer's,
// plus the viewport itself so the fan always closes.
func (p *Play) occluders() []geom.Box {
	w, h := float64(p.cfg.Window.Width), float64(p.cfg.Window.Height)
	boxes := []geom.Box{geom.NewRect(w, h).At(geom.Vec(w/2, h/2))}

	self := -1
	if pl, ok := p.world.Player(p.local); ok {
		self = pl.ObjectIndex
	}
	for i, obj := range p.world.Objects() {
		if i == self {
			continue
		}
		box, ok := obj.Box()
		if !ok {
			continue
		}
		boxes = append(boxes, box.Translate(p.camera.Position.Scale(-1)))
	}
	return boxes
}

// maxFanBatch is the most triangles one FillTriangles call can address
// with uint16 indices.
const maxFanBatch = math.MaxUint16 / 3

// drawFan submits the fan in batches so vertex indices never wrap.
func (p *Play) drawFan(screen render.Image) {
	tris := p.polygon.Fan()
	for len(tris) > 0 {
		n := min(len(tris), maxFanBatch)
		p.fillTriangles(screen, tris[:n])
		tris = tris[n:]
	}
}

func (p *Play) fillTriangles(screen render.Image, tris []visibility.Triangle) {
	vertices := make([]render.Vertex, 0, len(tris)*3)
	indices := make([]uint16, 0, len(tris)*3)
	for _, tri := range tris {
		for _, v := range tri {
			indices = append(indices, uint16(len(vertices)))
			vertices = append(vertices, render.ColorVertex(float32(v.X), float32(v.Y), p.fanColor))
		}
	}
	p.renderer.FillTriangles(screen, vertices, indices)
}

func (p *Play) drawRays(screen render.Image) {
	src := p.polygon.Source
	for _, hit := range p.polygon.Hits {
		p.renderer.StrokeLine(screen,
			float32(src.X), float32(src.Y), float32(hit.Point.X), float32(hit.Point.Y),
			1, rayColors[hit.Angle.Kind])
	}
}

func (p *Play) drawPlayers(screen render.Image) {
	sprite, hasSprite := p.textures.Texture(placeholders.Player)
	for _, token := range p.world.Tokens() {
		obj, ok := p.world.PlayerObject(token)
		if !ok {
			continue
		}
		pos := p.camera.WorldToScreen(obj.Position)
		if !hasSprite {
			p.drawPlayerFallback(screen, obj, pos)
			continue
		}

		sw, sh := sprite.Size()
		geoM := render.NewGeoM()
		geoM.Translate(-float64(sw)/2, -float64(sh)/2)
		if p.cfg.Player.Size > 0 {
			geoM.Scale(p.cfg.Player.Size/float64(sw), p.cfg.Player.Size/float64(sh))
		}
		// LookAt points away from its target; the sprite faces +x.
		geoM.Rotate(obj.Rotation + math.Pi)
		geoM.Translate(pos.X, pos.Y)
		screen.DrawImage(sprite, &render.DrawImageOptions{GeoM: geoM})
	}
}

func (p *Play) drawPlayerFallback(screen render.Image, obj *world.Object, pos geom.Vector2) {
	r := float32(p.cfg.Player.Size / 2)
	if r <= 0 {
		r = 4
	}
	p.renderer.FillCircle(screen, float32(pos.X), float32(pos.Y), r, obj.Color)
}
