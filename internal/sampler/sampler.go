package sampler

import (
	"math/rand"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Rand is the random source used for placement. *math/rand.Rand satisfies it, so tests
// inject a seeded generator and the scene a time-seeded one.
type Rand interface {
	Float32() float32
	Intn(n int) int
}

// innerFraction is the part of the radius that stays empty around the origin.
const innerFraction = 0.25

// NewRand returns a generator for seed. Seed 0 uses the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Sample returns a random point in the shell [0.25·radius, radius) around the origin.
// The distance is drawn uniformly over that band, so points crowd toward the inner edge
// instead of filling the volume evenly; the direction is uniform on the unit sphere.
func Sample(rng Rand, radius float32) mgl32.Vec3 {
	minR := radius * innerFraction
	maxR := radius - minR
	dist := rng.Float32()*maxR + minR

	u := rng.Float32()
	v := rng.Float32()
	theta := 2 * math32.Pi * u
	phi := math32.Acos(2*v - 1)

	sinPhi := math32.Sin(phi)
	return mgl32.Vec3{
		dist * sinPhi * math32.Cos(theta),
		dist * sinPhi * math32.Sin(theta),
		dist * math32.Cos(phi),
	}
}
