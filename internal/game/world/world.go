// Package world holds the ECS world: component storages, the process-wide
// resources every system shares, and world construction.
package world

import (
	"iter"

	"github.com/Faultbox/motorino/internal/ecs"
	"github.com/Faultbox/motorino/internal/engine/camera"
	"github.com/Faultbox/motorino/internal/engine/handle"
	"github.com/Faultbox/motorino/internal/engine/input"
	"github.com/Faultbox/motorino/internal/engine/telemetry"
	"github.com/Faultbox/motorino/internal/engine/terrain"
)

// World is passed by pointer to every system. Which fields a system may
// touch is declared through the Res* identifiers.
type World struct {
	Entities ecs.Registry

	Transforms    *ecs.Storage[Transform]
	Velocities    *ecs.Storage[Velocity]
	Players       *ecs.Storage[Player]
	GridPositions *ecs.Storage[GridPosition]
	HeightFields  *ecs.Storage[*terrain.HeightField]
	Models        *ecs.Storage[handle.RawModel]
	Textures      *ecs.Storage[handle.ModelTexture]
	TexturePacks  *ecs.Storage[handle.TerrainTexturePack]
	Skyboxes      *ecs.Storage[handle.SkyboxTexture]

	Camera      *camera.Camera
	Light       Light
	Fog         Fog
	Debug       *telemetry.DebugInfo
	Window      WindowSize
	Cursor      input.Cursor
	Mouse       input.MouseState
	KeyEvents   []input.KeyEvent
	MouseEvents []input.MouseEvent
	Settings    RenderSettings
	DeltaTime   float32 // seconds
}

// New returns an empty world with default resources. history is the
// telemetry ring capacity.
func New(history int) *World {
	return &World{
		Transforms:    ecs.NewStorage[Transform](),
		Velocities:    ecs.NewStorage[Velocity](),
		Players:       ecs.NewStorage[Player](),
		GridPositions: ecs.NewStorage[GridPosition](),
		HeightFields:  ecs.NewStorage[*terrain.HeightField](),
		Models:        ecs.NewStorage[handle.RawModel](),
		Textures:      ecs.NewStorage[handle.ModelTexture](),
		TexturePacks:  ecs.NewStorage[handle.TerrainTexturePack](),
		Skyboxes:      ecs.NewStorage[handle.SkyboxTexture](),

		Camera: camera.New(),
		Light:  DefaultLight(),
		Fog:    DefaultFog(),
		Debug:  telemetry.NewDebugInfo(history),
	}
}

// Tiles yields every entity carrying both a grid position and a height
// field, in creation order.
func (w *World) Tiles() iter.Seq[terrain.Tile] {
	return func(yield func(terrain.Tile) bool) {
		for _, row := range ecs.Join2(w.GridPositions, w.HeightFields) {
			if !yield(terrain.Tile{GridX: row.A.X, GridZ: row.A.Z, Field: *row.B}) {
				return
			}
		}
	}
}

// TerrainHeight returns the terrain height at world (x, z), or 0 outside
// every tile.
func (w *World) TerrainHeight(x, z float32) float32 {
	return terrain.HeightForPosition(w.Tiles(), x, z)
}

// Player returns the first player entity with its transform.
func (w *World) Player() (ecs.Entity, *Transform, bool) {
	for e, row := range ecs.Join2(w.Players, w.Transforms) {
		return e, row.B, true
	}
	return 0, nil, false
}
