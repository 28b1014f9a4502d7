package world

import (
	"fmt"
	"image"
	"math/rand/v2"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/motorino/internal/config"
	"github.com/Faultbox/motorino/internal/engine/handle"
	"github.com/Faultbox/motorino/internal/engine/mesh"
	"github.com/Faultbox/motorino/internal/engine/terrain"
	"github.com/Faultbox/motorino/internal/logger"
	"github.com/Faultbox/motorino/pkg/math"
)

// Resource paths of the stock world.
const (
	HeightmapPath = "textures/heightmap.png"
	SkyboxSize    = 500
)

// TerrainTextures lists the texture pack layers in unit order.
var TerrainTextures = [5]string{
	"textures/grass.jpg",
	"textures/mud.jpg",
	"textures/grass-flowers.jpg",
	"textures/path.jpg",
	"textures/blend-map.jpg",
}

// SkyboxFaces lists cube map faces in +X, -X, +Y, -Y, +Z, -Z order.
var SkyboxFaces = [6]string{"right", "left", "top", "bottom", "back", "front"}

// Tree and player material.
const (
	modelReflectivity = 0
	modelShineDamper  = 20
)

// Loader uploads decoded resources to the GPU.
type Loader interface {
	LoadToVAO(d *mesh.Data) (handle.RawModel, error)
	LoadPositionsToVAO(positions []float32, dims int) (handle.RawModel, error)
	LoadTexture(img image.Image) (handle.Texture, error)
	LoadCubeMap(faces [6]image.Image) (handle.Texture, error)
}

// Assets resolves resource paths.
type Assets interface {
	mesh.Opener
	LoadImage(name string) (image.Image, error)
}

// NewRand returns the scatter source for seed, or a clock-seeded one for 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

// Build fills w with the stock world: two terrain tiles, scattered trees,
// the player and the skybox. Any load failure aborts construction.
func Build(w *World, ld Loader, src Assets, cfg config.WorldConfig, rng *rand.Rand) error {
	log := logger.Named("world")
	start := time.Now()

	heightmap, err := src.LoadImage(HeightmapPath)
	if err != nil {
		return fmt.Errorf("loading heightmap: %w", err)
	}
	pack, err := loadTexturePack(ld, src)
	if err != nil {
		return err
	}
	for _, grid := range []GridPosition{{0, 0}, {1, 0}} {
		data, field := terrain.Generate(heightmap, grid.X, grid.Z)
		model, err := ld.LoadToVAO(data)
		if err != nil {
			return fmt.Errorf("uploading terrain %d,%d: %w", grid.X, grid.Z, err)
		}
		SpawnTerrain(w, grid, model, pack, field)
	}

	for _, kind := range cfg.Trees {
		if kind.Count == 0 {
			continue
		}
		model, tex, err := loadTexturedModel(ld, src, kind.Model, kind.Texture)
		if err != nil {
			return err
		}
		SpawnScatter(w, rng, model, tex, kind.Count, kind.Scale)
	}

	model, tex, err := loadTexturedModel(ld, src, cfg.PlayerModel, cfg.PlayerTex)
	if err != nil {
		return err
	}
	SpawnPlayer(w, model, tex, math.FromArray(cfg.PlayerSpawn))

	sky, err := loadSkybox(ld, src)
	if err != nil {
		return err
	}
	cube, err := ld.LoadPositionsToVAO(SkyboxVertices(SkyboxSize), 3)
	if err != nil {
		return fmt.Errorf("uploading skybox cube: %w", err)
	}
	SpawnSkybox(w, cube, sky)

	log.Info("world built",
		zap.Int("entities", w.Entities.Count()),
		zap.Int("models", w.Models.Len()),
		zap.Duration("took", time.Since(start)))
	return nil
}

func loadTexture(ld Loader, src Assets, name string) (handle.Texture, error) {
	img, err := src.LoadImage(name)
	if err != nil {
		return handle.Texture{}, fmt.Errorf("loading texture: %w", err)
	}
	tex, err := ld.LoadTexture(img)
	if err != nil {
		return handle.Texture{}, fmt.Errorf("uploading texture %s: %w", name, err)
	}
	return tex, nil
}

func loadTexturePack(ld Loader, src Assets) (handle.TerrainTexturePack, error) {
	var layers [5]handle.Texture
	for i, name := range TerrainTextures {
		tex, err := loadTexture(ld, src, name)
		if err != nil {
			return handle.TerrainTexturePack{}, err
		}
		layers[i] = tex
	}
	return handle.TerrainTexturePack{
		Background: layers[0],
		R:          layers[1],
		G:          layers[2],
		B:          layers[3],
		BlendMap:   layers[4],
	}, nil
}

func loadTexturedModel(ld Loader, src Assets, modelPath, texPath string) (handle.RawModel, handle.ModelTexture, error) {
	data, err := mesh.Load(src, modelPath)
	if err != nil {
		return handle.RawModel{}, handle.ModelTexture{}, fmt.Errorf("loading model: %w", err)
	}
	model, err := ld.LoadToVAO(data)
	if err != nil {
		return handle.RawModel{}, handle.ModelTexture{}, fmt.Errorf("uploading model %s: %w", modelPath, err)
	}
	tex, err := loadTexture(ld, src, texPath)
	if err != nil {
		return handle.RawModel{}, handle.ModelTexture{}, err
	}
	return model, handle.ModelTexture{
		Texture:      tex,
		Reflectivity: modelReflectivity,
		ShineDamper:  modelShineDamper,
	}, nil
}

func loadSkybox(ld Loader, src Assets) (handle.SkyboxTexture, error) {
	var sky handle.SkyboxTexture
	for _, set := range []struct {
		dir string
		dst *handle.Texture
	}{
		{"textures/skybox/day", &sky.Day},
		{"textures/skybox/night", &sky.Night},
	} {
		var faces [6]image.Image
		for i, face := range SkyboxFaces {
			name := path.Join(set.dir, face+".png")
			img, err := src.LoadImage(name)
			if err != nil {
				return sky, fmt.Errorf("loading skybox: %w", err)
			}
			faces[i] = img
		}
		tex, err := ld.LoadCubeMap(faces)
		if err != nil {
			return sky, fmt.Errorf("uploading cube map %s: %w", set.dir, err)
		}
		*set.dst = tex
	}
	return sky, nil
}

// SkyboxVertices returns the 36 positions (two triangles per face) of a
// cube spanning [-size, size] on every axis, wound to be seen from inside.
func SkyboxVertices(size float32) []float32 {
	s := size
	return []float32{
		-s, s, -s, -s, -s, -s, s, -s, -s,
		s, -s, -s, s, s, -s, -s, s, -s,

		-s, -s, s, -s, -s, -s, -s, s, -s,
		-s, s, -s, -s, s, s, -s, -s, s,

		s, -s, -s, s, -s, s, s, s, s,
		s, s, s, s, s, -s, s, -s, -s,

		-s, -s, s, -s, s, s, s, s, s,
		s, s, s, s, -s, s, -s, -s, s,

		-s, s, -s, s, s, -s, s, s, s,
		s, s, s, -s, s, s, -s, s, -s,

		-s, -s, -s, -s, -s, s, s, -s, -s,
		s, -s, -s, -s, -s, s, s, -s, s,
	}
}
