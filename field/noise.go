package field

// Skew and unskew factors of the 2D simplex grid: (sqrt(3)-1)/2 and
// (3-sqrt(3))/6.
const (
	skewK1 = float32(0.366025404)
	skewK2 = float32(0.211324865)
)

// hash2 maps a lattice point to a pseudo-random gradient in [-1, 1)².
func hash2(p vec2) vec2 {
	q := v2(p.dot(v2(127.1, 311.7)), p.dot(v2(269.5, 183.3)))
	h := func(x float32) float32 {
		return float32(-1 + float32(2*fract(float32(sin(x)*43758.5453123))))
	}
	return v2(h(q.x), h(q.y))
}

// Simplex evaluates 2D simplex gradient noise at (x, y). The three corner
// contributions use an h^4 falloff and the sum is scaled by 70, which keeps
// the result roughly in [-1, 1]. The origin maps to exactly zero.
func Simplex(x, y float32) float32 {
	p := v2(x, y)

	s := float32(float32(p.x+p.y) * skewK1)
	i := v2(floor(float32(p.x+s)), floor(float32(p.y+s)))
	u := float32(float32(i.x+i.y) * skewK2)
	a := p.sub(i).add(v2(u, u))

	o := v2(0, 1)
	if a.x > a.y {
		o = v2(1, 0)
	}
	b := a.sub(o).add(v2(skewK2, skewK2))
	c := a.add(v2(-1, -1)).add(v2(2*skewK2, 2*skewK2))

	h := v3(
		max(float32(0.5-a.dot(a)), 0),
		max(float32(0.5-b.dot(b)), 0),
		max(float32(0.5-c.dot(c)), 0),
	)
	h4 := h.mul(h).mul(h).mul(h)
	n := h4.mul(v3(
		a.dot(hash2(i)),
		b.dot(hash2(i.add(o))),
		c.dot(hash2(i.add(v2(1, 1)))),
	))
	return n.dot(v3(70, 70, 70))
}
