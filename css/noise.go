package css

import "math"

// permFromSeed builds a deterministic permutation table for classic Perlin
// noise, seeded with a simple xorshift so the same seed always reproduces
// the same gradient field.
func permFromSeed(seed int64) [512]int {
	var p [256]int
	for i := range p {
		p[i] = i
	}

	state := uint64(seed) ^ 0x9E3779B97F4A7C15
	if state == 0 {
		state = 1
	}
	next := func() uint64 {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		return state
	}
	for i := 255; i > 0; i-- {
		j := int(next() % uint64(i+1))
		p[i], p[j] = p[j], p[i]
	}

	var perm [512]int
	for i := 0; i < 512; i++ {
		perm[i] = p[i&255]
	}
	return perm
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func grad(hash int, x, y float64) float64 {
	switch hash & 3 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	default:
		return -x - y
	}
}

// perlin2D evaluates classic 2D Perlin noise in roughly [-1, 1].
func perlin2D(x, y float64, perm *[512]int) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	xf := x - math.Floor(x)
	yf := y - math.Floor(y)

	u := fade(xf)
	v := fade(yf)

	aa := perm[perm[xi]+yi]
	ab := perm[perm[xi]+yi+1]
	ba := perm[perm[xi+1]+yi]
	bb := perm[perm[xi+1]+yi+1]

	x1 := lerp(grad(aa, xf, yf), grad(ba, xf-1, yf), u)
	x2 := lerp(grad(ab, xf, yf-1), grad(bb, xf-1, yf-1), u)
	return lerp(x1, x2, v) * math.Sqrt2
}
