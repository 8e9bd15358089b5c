package noise

import (
	"math/rand"

	"github.com/chewxy/math32"
)

// perlin is periodic gradient noise over an integer lattice.
type perlin struct {
	perm   [256]int
	period int
}

func newPerlin(rng *rand.Rand, period int) *perlin {
	p := &perlin{period: period}
	for i, v := range rng.Perm(256) {
		p.perm[i] = v
	}
	return p
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func (p *perlin) hash(x, y, z int) int {
	x, y, z = wrap(x, p.period), wrap(y, p.period), wrap(z, p.period)
	return p.perm[(p.perm[(p.perm[x&255]+y)&255]+z)&255]
}

func fade(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func grad(h int, x, y, z float32) float32 {
	switch h & 15 {
	case 0, 12:
		return x + y
	case 1, 14:
		return -x + y
	case 2:
		return x - y
	case 3:
		return -x - y
	case 4:
		return x + z
	case 5:
		return -x + z
	case 6:
		return x - z
	case 7:
		return -x - z
	case 8:
		return y + z
	case 9, 13:
		return -y + z
	case 10:
		return y - z
	default:
		return -y - z
	}
}

// at samples lattice coordinates; the result is roughly in [-1,1].
func (p *perlin) at(x, y, z float32) float32 {
	fx, fy, fz := math32.Floor(x), math32.Floor(y), math32.Floor(z)
	xi, yi, zi := int(fx), int(fy), int(fz)
	xf, yf, zf := x-fx, y-fy, z-fz
	u, v, w := fade(xf), fade(yf), fade(zf)

	c000 := grad(p.hash(xi, yi, zi), xf, yf, zf)
	c100 := grad(p.hash(xi+1, yi, zi), xf-1, yf, zf)
	c010 := grad(p.hash(xi, yi+1, zi), xf, yf-1, zf)
	c110 := grad(p.hash(xi+1, yi+1, zi), xf-1, yf-1, zf)
	c001 := grad(p.hash(xi, yi, zi+1), xf, yf, zf-1)
	c101 := grad(p.hash(xi+1, yi, zi+1), xf-1, yf, zf-1)
	c011 := grad(p.hash(xi, yi+1, zi+1), xf, yf-1, zf-1)
	c111 := grad(p.hash(xi+1, yi+1, zi+1), xf-1, yf-1, zf-1)

	x00 := lerp(c000, c100, u)
	x10 := lerp(c010, c110, u)
	x01 := lerp(c001, c101, u)
	x11 := lerp(c011, c111, u)
	return lerp(lerp(x00, x10, v), lerp(x01, x11, v), w)
}

// worley holds one feature point per cell of an n^3 periodic grid.
type worley struct {
	cells  int
	points [][3]float32
}

func newWorley(rng *rand.Rand, cells int) *worley {
	w := &worley{cells: cells, points: make([][3]float32, cells*cells*cells)}
	for i := range w.points {
		w.points[i] = [3]float32{rng.Float32(), rng.Float32(), rng.Float32()}
	}
	return w
}

// at returns the distance to the nearest feature point for a position in
// [0,1)^3, in cell units and clamped to [0,1].
func (w *worley) at(x, y, z float32) float32 {
	n := w.cells
	px, py, pz := x*float32(n), y*float32(n), z*float32(n)
	cx, cy, cz := int(math32.Floor(px)), int(math32.Floor(py)), int(math32.Floor(pz))

	best := float32(3)
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				ox, oy, oz := cx+dx, cy+dy, cz+dz
				idx := (wrap(oz, n)*n+wrap(oy, n))*n + wrap(ox, n)
				fp := w.points[idx]
				ddx := float32(ox) + fp[0] - px
				ddy := float32(oy) + fp[1] - py
				ddz := float32(oz) + fp[2] - pz
				best = math32.Min(best, ddx*ddx+ddy*ddy+ddz*ddz)
			}
		}
	}
	return math32.Min(math32.Sqrt(best), 1)
}

func remap(v, lo, hi, newLo, newHi float32) float32 {
	if hi == lo {
		return newLo
	}
	return newLo + (v-lo)*(newHi-newLo)/(hi-lo)
}

func saturate(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}

// Options tune the generated volume.
type Options struct {
	// BaseFrequency is the lattice period of the first octave.
	BaseFrequency int
	PerlinOctaves int
	WorleyOctaves int
}

var DefaultOptions = Options{BaseFrequency: 4, PerlinOctaves: 4, WorleyOctaves: 3}

// Generate builds a tileable Perlin-Worley volume of size^3 voxels.
func Generate(size int, seed int64) *Volume {
	return GenerateWith(size, seed, DefaultOptions)
}

func GenerateWith(size int, seed int64, opts Options) *Volume {
	if opts.BaseFrequency <= 0 {
		opts.BaseFrequency = DefaultOptions.BaseFrequency
	}
	rng := rand.New(rand.NewSource(seed))

	perlins := make([]*perlin, opts.PerlinOctaves)
	for o := range perlins {
		perlins[o] = newPerlin(rng, opts.BaseFrequency<<o)
	}
	worleys := make([]*worley, opts.WorleyOctaves)
	for o := range worleys {
		worleys[o] = newWorley(rng, opts.BaseFrequency<<o)
	}

	vol := NewVolume(size)
	for z := 0; z < size; z++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				u := (float32(x) + 0.5) / float32(size)
				v := (float32(y) + 0.5) / float32(size)
				w := (float32(z) + 0.5) / float32(size)

				var pn, amp, total float32 = 0, 1, 0
				for _, p := range perlins {
					f := float32(p.period)
					pn += p.at(u*f, v*f, w*f) * amp
					total += amp
					amp *= 0.5
				}
				if total > 0 {
					pn = saturate(pn/total*0.5 + 0.5)
				}

				var wn float32
				amp, total = 1, 0
				for _, c := range worleys {
					wn += (1 - c.at(u, v, w)) * amp
					total += amp
					amp *= 0.5
				}
				if total > 0 {
					wn /= total
				}

				vol.Set(x, y, z, saturate(remap(pn, wn-1, 1, 0, 1)))
			}
		}
	}
	return vol
}
