package reference

// point is a position in window coordinates.
type point struct{ x, y float64 }

// toWindow applies the perspective divide and the viewport transform of a
// width x height viewport anchored at the origin.
func toWindow(v [4]float32, width, height int) point {
	w := float64(v[3])
	return point{
		x: (float64(v[0])/w + 1) * float64(width) / 2,
		y: (float64(v[1])/w + 1) * float64(height) / 2,
	}
}

func edge(a, b, p point) float64 {
	return (b.x-a.x)*(p.y-a.y) - (b.y-a.y)*(p.x-a.x)
}

// ownsEdge breaks ties for pixel centers lying exactly on the edge a->b.
// The same edge walked the other way gives the opposite answer, so a
// center on an edge shared by two triangles is shaded by exactly one.
func ownsEdge(a, b point) bool {
	dx, dy := b.x-a.x, b.y-a.y
	return dy > 0 || (dy == 0 && dx < 0)
}

// rasterize calls fn once for every pixel whose center a triangle of the
// list covers. Degenerate triangles produce no fragments.
func rasterize(verts [][4]float32, width, height int, fn func(x, y int)) {
	for t := 0; t+2 < len(verts); t += 3 {
		a := toWindow(verts[t], width, height)
		b := toWindow(verts[t+1], width, height)
		c := toWindow(verts[t+2], width, height)

		area := edge(a, b, c)
		if area == 0 {
			continue
		}
		if area < 0 {
			b, c = c, b
		}

		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				p := point{float64(x) + 0.5, float64(y) + 0.5}
				if inside(a, b, p) && inside(b, c, p) && inside(c, a, p) {
					fn(x, y)
				}
			}
		}
	}
}

func inside(a, b, p point) bool {
	e := edge(a, b, p)
	return e > 0 || (e == 0 && ownsEdge(a, b))
}
