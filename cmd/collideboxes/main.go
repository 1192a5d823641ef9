// Command collideboxes recreates the original engine's 10-collideboxes
// sample: a field of randomly oriented boxes drift between two points
// each, update_transforms/detect runs every tick, and the debug overlay
// flashes boxes that collided this frame.
package main

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gridcollide/collision"
	"gridcollide/internal/config"
	"gridcollide/internal/workerpool"
)

const numShapes = 800

type entity struct {
	id       collision.EntityID
	p1, p2   collision.Vec2
	rotation float64
	speed    float64
	phase    float64
}

const heatmapLimit = 6

type game struct {
	ctx          *collision.Context
	pool         *workerpool.Pool
	ents         []entity
	view         collision.View
	numPairs     int
	numHits      int
	raycastMode  bool
	collisionTab int
	raycastTab   int
	rayTheta     float64
	frame        int
}

var collisionModes = [...]collision.DebugCollisionMode{
	collision.DebugCollisionOutline,
	collision.DebugCollisionHeatmap,
	collision.DebugEntityHeatmap,
}

var raycastModes = [...]collision.DebugRaycastMode{
	collision.DebugRaycastOutline,
	collision.DebugRayhitHeatmap,
	collision.DebugRaymarchHeatmap,
}

func newGame(scn *config.Scenario) *game {
	mapX, mapY := scn.MapSize()
	ctx, err := collision.NewContext(mapX, mapY, scn.CellSize())
	if err != nil {
		log.Fatalf("collideboxes: NewContext: %v", err)
	}

	numShapes := numShapes
	if scn.Boxes.Count > 0 {
		numShapes = scn.Boxes.Count
	}

	rng := rand.New(rand.NewSource(scn.Seed()))
	g := &game{
		ctx:  ctx,
		pool: workerpool.New(0),
		ents: make([]entity, numShapes),
		view: collision.View{OriginX: 400, OriginY: 300, PixelsPerUnit: 3},
	}

	boxes := make([]collision.Box, numShapes)
	ids := make([]collision.EntityID, numShapes)
	masks := make([]collision.Mask, numShapes)
	transforms := make([]collision.Transform, numShapes)

	for i := 0; i < numShapes; i++ {
		ext := collision.Vec3{
			X: rng.Float64() + 0.2,
			Y: rng.Float64() + 0.2,
			Z: rng.Float64() + 0.2,
		}
		pos := collision.Vec2{
			X: (rng.Float64()*2 - 1) * mapX * 0.5,
			Y: (rng.Float64()*2 - 1) * mapY * 0.5,
		}
		moveRange := rng.Float64() * 8
		theta := rng.Float64() * 2 * math.Pi

		p1 := collision.Vec2{X: pos.X + moveRange*math.Cos(theta), Y: pos.Y + moveRange*math.Sin(theta)}
		p2 := collision.Vec2{X: pos.X + moveRange*math.Cos(math.Pi-theta), Y: pos.Y + moveRange*math.Sin(math.Pi-theta)}

		g.ents[i] = entity{
			id:       collision.EntityID(i),
			p1:       p1,
			p2:       p2,
			rotation: rng.Float64() * 2 * math.Pi,
			speed:    rng.Float64()*0.5 + 0.25,
		}

		boxes[i] = collision.Box{HalfExtents: ext}
		ids[i] = collision.EntityID(i)
		masks[i] = 0xffffffff
		transforms[i] = collision.Transform{
			Pos: collision.Vec3{X: pos.X, Y: pos.Y},
			Rot: collision.Mat3(mat3RotZ(g.ents[i].rotation)),
		}
	}

	if err := ctx.AddBoxes(boxes, ids, masks, transforms); err != nil {
		log.Fatalf("collideboxes: AddBoxes: %v", err)
	}

	return g
}

func mat3RotZ(theta float64) [3][3]float64 {
	c, s := math.Cos(theta), math.Sin(theta)
	return [3][3]float64{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}
}

// Update advances every entity's position and feeds the batch through
// Context.UpdateTransforms. The per-entity phase/position math is pure and
// index-disjoint, so it is computed in parallel across g.pool's goroutines
// before the single-threaded UpdateTransforms/Detect calls (spec.md §5:
// the Context itself is never touched concurrently).
func (g *game) Update() error {
	ids := make([]collision.EntityID, len(g.ents))
	transforms := make([]collision.Transform, len(g.ents))

	err := g.pool.ParallelFor(context.Background(), 0, len(g.ents), func(i int) error {
		e := &g.ents[i]
		e.phase += e.speed / 60.0
		t := math.Sin(e.phase)*0.5 + 0.5
		pos := collision.Vec2{
			X: e.p1.X + (e.p2.X-e.p1.X)*t,
			Y: e.p1.Y + (e.p2.Y-e.p1.Y)*t,
		}
		ids[i] = e.id
		transforms[i] = collision.Transform{
			Pos: collision.Vec3{X: pos.X, Y: pos.Y},
			Rot: collision.Mat3(mat3RotZ(e.rotation)),
		}
		return nil
	})
	if err != nil {
		log.Fatalf("collideboxes: ParallelFor: %v", err)
	}

	g.ctx.UpdateTransforms(ids, transforms)
	pairs := g.ctx.Detect()
	g.numPairs = len(pairs)

	g.frame++
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.raycastMode = !g.raycastMode
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if g.raycastMode {
			g.raycastTab = (g.raycastTab + 1) % len(raycastModes)
		} else {
			g.collisionTab = (g.collisionTab + 1) % len(collisionModes)
		}
	}

	g.rayTheta += 0.01
	ray := collision.Ray{
		Origin: collision.Vec3{X: 0, Y: 0, Z: 0},
		Dir:    collision.Vec3{X: math.Cos(g.rayTheta), Y: math.Sin(g.rayTheta), Z: 0},
		Len:    60,
	}
	g.numHits = len(g.ctx.QueryRay(ray, 0xffffffff))

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 20, 255})
	if g.raycastMode {
		g.ctx.DebugRaycast(screen, g.view, 0.35, raycastModes[g.raycastTab], heatmapLimit)
	} else {
		g.ctx.DebugCollisions(screen, g.view, 0.35, collisionModes[g.collisionTab], heatmapLimit)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"pairs: %d  ray hits: %d  [R] toggle raycast view  [M] cycle mode", g.numPairs, g.numHits), 10, 10)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 800, 600
}

func main() {
	scn := config.MustLoadScenario("scenario.yaml")
	ebiten.SetWindowSize(800, 600)
	ebiten.SetWindowTitle("collideboxes")
	if err := ebiten.RunGame(newGame(scn)); err != nil {
		log.Fatal(err)
	}
}
