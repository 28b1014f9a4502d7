package world

import (
	"math/rand/v2"

	"github.com/Faultbox/motorino/internal/ecs"
	"github.com/Faultbox/motorino/internal/engine/handle"
	"github.com/Faultbox/motorino/internal/engine/terrain"
	"github.com/Faultbox/motorino/pkg/math"
)

// SpawnTerrain adds a terrain tile: its render model and texture pack for
// the terrain pass, and its height field for physics.
func SpawnTerrain(w *World, grid GridPosition, model handle.RawModel, pack handle.TerrainTexturePack, field *terrain.HeightField) ecs.Entity {
	e := w.Entities.Create()
	w.GridPositions.Insert(e, grid)
	w.Models.Insert(e, model)
	w.TexturePacks.Insert(e, pack)
	w.HeightFields.Insert(e, field)
	return e
}

// SpawnScatter places count copies of a textured model at random points of
// the first tile, standing on the terrain.
func SpawnScatter(w *World, rng *rand.Rand, model handle.RawModel, tex handle.ModelTexture, count int, scale float32) []ecs.Entity {
	out := make([]ecs.Entity, 0, count)
	for range count {
		x := rng.Float32() * terrain.Size
		z := rng.Float32() * terrain.Size
		y := w.TerrainHeight(x, z)

		e := w.Entities.Create()
		w.Transforms.Insert(e, NewTransform(math.V3(x, y, z), scale))
		w.Models.Insert(e, model)
		w.Textures.Insert(e, tex)
		out = append(out, e)
	}
	return out
}

// SpawnPlayer adds the controllable player at pos.
func SpawnPlayer(w *World, model handle.RawModel, tex handle.ModelTexture, pos math.Vec3) ecs.Entity {
	e := w.Entities.Create()
	w.Transforms.Insert(e, NewTransform(pos, 1))
	w.Velocities.Insert(e, Velocity{})
	w.Players.Insert(e, Player{})
	w.Models.Insert(e, model)
	w.Textures.Insert(e, tex)
	return e
}

// SpawnSkybox adds a skybox cube with its day and night cube maps.
func SpawnSkybox(w *World, model handle.RawModel, sky handle.SkyboxTexture) ecs.Entity {
	e := w.Entities.Create()
	w.Models.Insert(e, model)
	w.Skyboxes.Insert(e, sky)
	return e
}
