package terrain

import (
	"github.com/ojrac/opensimplex-go"
)

// Raw opensimplex output peaks near these magnitudes. Dividing by them puts
// samples on [-1, 1].
const (
	peak2D = 0.8659203878240322
	peak3D = 0.9871048542519545
)

// octaves holds fractal sum parameters.
type octaves struct {
	count       int
	persistence float64
	lacunarity  float64
}

// fractal sums octaves of one seeded opensimplex field. Sums are not
// normalized: four octaves at persistence 0.5 span [-1.875, 1.875].
type fractal struct {
	noise opensimplex.Noise
	octaves
}

func newFractal(seed int64, o octaves) fractal {
	return fractal{noise: opensimplex.New(seed), octaves: o}
}

func (f fractal) sum2D(x, z float64) float64 {
	amplitude, frequency := 1.0, 1.0
	sum := 0.0
	for i := 0; i < f.count; i++ {
		sum += f.noise.Eval2(x*frequency, z*frequency) * amplitude
		amplitude *= f.persistence
		frequency *= f.lacunarity
	}
	return sum / peak2D
}

func (f fractal) sum3D(x, y, z float64) float64 {
	amplitude, frequency := 1.0, 1.0
	sum := 0.0
	for i := 0; i < f.count; i++ {
		sum += f.noise.Eval3(x*frequency, y*frequency, z*frequency) * amplitude
		amplitude *= f.persistence
		frequency *= f.lacunarity
	}
	return sum / peak3D
}
