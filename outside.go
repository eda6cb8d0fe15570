package unbounded

import (
	"math/rand"

	"github.com/ojrac/opensimplex-go"
	log "github.com/sirupsen/logrus"
)

const (
	noiseOctaves     = 7
	noiseScale       = 0.01
	noisePersistence = 0.5
)

// biomeForHeight bands noise (rescaled to [0, 1]) into biomes. Each weight
// point is 0.1 of raw noise: deep ocean below -0.5, ocean below -0.4, sea
// below -0.2, beach below -0.1, plains below 0.2, then a band per 0.1.
var biomeForHeight = MakeGradientTransitionFunction([]string{
	"deep-ocean:5",
	"ocean:1",
	"sea:2",
	"beach:1",
	"plains:3",
	"forest:1",
	"deep-forest:1",
	"hills:1",
	"cliffs:1",
	"mountains:1",
	"high-mountains:1",
	"icy-mountains:1",
	"ice:1",
})

// OutsideGenerator fills a chunk with biomes sampled from world-space noise.
// Every outside chunk shares the world's noise seed, so terrain lines up
// across chunk borders.
type OutsideGenerator struct {
	gridBuilder
	noise    *opensimplex.Noise
	mobCount int
}

// NewOutsideGenerator sets up an outside generator for the chunk
func NewOutsideGenerator(data *ChunkData, width, height, mobCount int) *OutsideGenerator {
	mix := int64(data.Center.X)*73856093 ^ int64(data.Center.Y)*19349663
	return &OutsideGenerator{
		gridBuilder: newGridBuilder(data, width, height, rand.New(rand.NewSource(data.Seed^mix))),
		noise:       opensimplex.NewWithSeed(data.Seed),
		mobCount:    mobCount,
	}
}

// Sample is fractal noise at a world coordinate, roughly in [-1, 1]
func (g *OutsideGenerator) Sample(world Point) float64 {
	total, amplitude, frequency, norm := 0.0, 1.0, noiseScale, 0.0

	for i := 0; i < noiseOctaves; i++ {
		total += g.noise.Eval2(float64(world.X)*frequency, float64(world.Y)*frequency) * amplitude
		norm += amplitude
		amplitude *= noisePersistence
		frequency *= 2
	}

	return total / norm
}

// BiomeAt is the biome role at a world coordinate
func (g *OutsideGenerator) BiomeAt(world Point) string {
	return biomeForHeight((g.Sample(world) + 1) / 2)
}

// worldPoint converts a grid coordinate to a world coordinate
func (g *OutsideGenerator) worldPoint(p Point) Point {
	return Point{
		X: g.data.Center.X - g.width/2 + p.X,
		Y: g.data.Center.Y - g.height/2 + p.Y,
	}
}

func (g *OutsideGenerator) fillTerrain() {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			p := Point{x, y}
			g.setRole(p, g.BiomeAt(g.worldPoint(p)))
		}
	}
}

// Generate builds the outside chunk
func (g *OutsideGenerator) Generate() *Chunk {
	g.fillTerrain()

	if len(g.data.Mobs) == 0 {
		g.populateMonsters(g.mobCount)
	}

	log.WithFields(log.Fields{
		"seed":   g.data.Seed,
		"center": g.data.Center,
		"mobs":   len(g.data.Mobs),
	}).Debug("Generated outside chunk")

	return g.finish()
}

func (g *OutsideGenerator) populateMonsters(count int) {
	attempts := count * spawnAttempts
	for placed := 0; placed < count && attempts > 0; attempts-- {
		p := Point{g.nextInt(0, g.width), g.nextInt(0, g.height)}
		if g.tile(p).Walkable() && !g.occupied.Has(p) {
			g.data.Mobs = append(g.data.Mobs, g.newMonster(p))
			placed++
		}
	}
}
