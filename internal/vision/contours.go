package vision

import (
	"image"
	"math"
)

// mooreDirs is the clockwise 8-neighbourhood starting west, as used by
// Moore boundary tracing with y growing downward.
var mooreDirs = [8]image.Point{
	{-1, 0},  // W
	{-1, -1}, // NW
	{0, -1},  // N
	{1, -1},  // NE
	{1, 0},   // E
	{1, 1},   // SE
	{0, 1},   // S
	{-1, 1},  // SW
}

// FindContours traces the external boundaries of the set regions in a
// binary image. Contours nested inside another contour's bounding box
// are discarded, so a hollow shape contributes a single boundary.
func FindContours(bin *image.Gray) [][]image.Point {
	bounds := bin.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	set := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return bin.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y > 0
	}
	visited := make([]bool, w*h)

	var contours [][]image.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !set(x, y) || visited[y*w+x] || set(x-1, y) {
				continue
			}
			contour := traceBoundary(set, visited, w, x, y)
			if len(contour) >= 4 {
				contours = append(contours, contour)
			}
		}
	}
	return dropNested(contours)
}

// traceBoundary runs Moore-neighbour tracing from a start pixel whose
// west neighbour is background.
func traceBoundary(set func(x, y int) bool, visited []bool, w, sx, sy int) []image.Point {
	start := image.Pt(sx, sy)
	contour := []image.Point{start}
	visited[sy*w+sx] = true

	cur := start
	// The backtrack direction: west of the start pixel is background.
	dir := 0
	for steps := 0; steps < 4*w*len(visited); steps++ {
		found := false
		// Scan clockwise from the pixel after the backtrack.
		for i := 1; i <= 8; i++ {
			d := (dir + i) % 8
			n := cur.Add(mooreDirs[d])
			if set(n.X, n.Y) {
				// New backtrack points at the neighbour just
				// before the one we entered from.
				dir = (d + 4) % 8
				cur = n
				found = true
				break
			}
		}
		if !found {
			break // isolated pixel
		}
		if cur == start {
			break
		}
		contour = append(contour, cur)
		visited[cur.Y*w+cur.X] = true
	}
	return contour
}

// dropNested removes contours whose bounding box lies strictly inside
// another contour's bounding box, keeping only outermost boundaries.
func dropNested(contours [][]image.Point) [][]image.Point {
	if len(contours) < 2 {
		return contours
	}
	boxes := make([]image.Rectangle, len(contours))
	for i, c := range contours {
		boxes[i] = BoundingBox(c)
	}
	kept := contours[:0]
	for i := range contours {
		nested := false
		for j := range contours {
			if i != j && boxes[i] != boxes[j] && boxes[i].In(boxes[j]) {
				nested = true
				break
			}
		}
		if !nested {
			kept = append(kept, contours[i])
		}
	}
	return kept
}

// BoundingBox returns the axis-aligned bounding rectangle of a contour.
func BoundingBox(contour []image.Point) image.Rectangle {
	if len(contour) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: contour[0], Max: contour[0].Add(image.Pt(1, 1))}
	for _, p := range contour[1:] {
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.X >= r.Max.X {
			r.Max.X = p.X + 1
		}
		if p.Y >= r.Max.Y {
			r.Max.Y = p.Y + 1
		}
	}
	return r
}

// ContourArea returns the enclosed area of a closed contour using the
// shoelace formula.
func ContourArea(contour []image.Point) float64 {
	if len(contour) < 3 {
		return 0
	}
	sum := 0.0
	for i, p := range contour {
		q := contour[(i+1)%len(contour)]
		sum += float64(p.X*q.Y - q.X*p.Y)
	}
	return math.Abs(sum) / 2
}

// ArcLength returns the perimeter of a contour, closing it when told to.
func ArcLength(contour []image.Point, closed bool) float64 {
	if len(contour) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(contour); i++ {
		total += dist(contour[i-1], contour[i])
	}
	if closed {
		total += dist(contour[len(contour)-1], contour[0])
	}
	return total
}

// ApproxPolyDP reduces a closed contour to a polygon using the
// Douglas-Peucker algorithm with the given distance tolerance.
func ApproxPolyDP(contour []image.Point, epsilon float64) []image.Point {
	if len(contour) < 3 {
		return contour
	}
	// Split the ring at the point farthest from the first vertex so
	// both chains have meaningful endpoints.
	far, farDist := 0, -1.0
	for i, p := range contour {
		if d := dist(contour[0], p); d > farDist {
			far, farDist = i, d
		}
	}
	if far == 0 {
		return contour[:1]
	}
	first := douglasPeucker(contour[:far+1], epsilon)
	second := douglasPeucker(append(contour[far:], contour[0]), epsilon)
	// Chains share both endpoints; drop the duplicates.
	poly := append([]image.Point{}, first...)
	if len(second) > 2 {
		poly = append(poly, second[1:len(second)-1]...)
	}
	return poly
}

func douglasPeucker(points []image.Point, epsilon float64) []image.Point {
	if len(points) < 3 {
		return points
	}
	idx, maxDist := 0, 0.0
	a, b := points[0], points[len(points)-1]
	for i := 1; i < len(points)-1; i++ {
		if d := pointSegDist(points[i], a, b); d > maxDist {
			idx, maxDist = i, d
		}
	}
	if maxDist <= epsilon {
		return []image.Point{a, b}
	}
	left := douglasPeucker(points[:idx+1], epsilon)
	right := douglasPeucker(points[idx:], epsilon)
	return append(left[:len(left)-1], right...)
}

// pointSegDist is the perpendicular distance from p to segment ab.
func pointSegDist(p, a, b image.Point) float64 {
	abx, aby := float64(b.X-a.X), float64(b.Y-a.Y)
	apx, apy := float64(p.X-a.X), float64(p.Y-a.Y)
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return math.Hypot(apx, apy)
	}
	t := (apx*abx + apy*aby) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	dx := apx - t*abx
	dy := apy - t*aby
	return math.Hypot(dx, dy)
}

func dist(a, b image.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}
