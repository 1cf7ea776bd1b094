package vision

import (
	"image"
	"math"
	"sort"
)

const thetaSteps = 180 // 1 degree resolution

// HoughLinesP detects straight line segments in a binary edge image
// using a probabilistic-style Hough transform made deterministic: all
// edge pixels vote, peaks are walked in order and consumed pixels are
// cleared so a segment is reported once.
func HoughLinesP(bin *image.Gray, threshold, minLineLength, maxGap int) []LineSegment {
	bounds := bin.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	grid := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			grid[y*w+x] = bin.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y > 0
		}
	}

	rMax := int(math.Ceil(math.Hypot(float64(w), float64(h))))
	sin := make([]float64, thetaSteps)
	cos := make([]float64, thetaSteps)
	for t := 0; t < thetaSteps; t++ {
		rad := float64(t) * math.Pi / thetaSteps
		sin[t] = math.Sin(rad)
		cos[t] = math.Cos(rad)
	}

	acc := make([]int, thetaSteps*(2*rMax+1))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !grid[y*w+x] {
				continue
			}
			for t := 0; t < thetaSteps; t++ {
				r := int(math.Round(float64(x)*cos[t]+float64(y)*sin[t])) + rMax
				acc[t*(2*rMax+1)+r]++
			}
		}
	}

	type peak struct{ votes, theta, rho int }
	var peaks []peak
	for t := 0; t < thetaSteps; t++ {
		for r := 0; r <= 2*rMax; r++ {
			if v := acc[t*(2*rMax+1)+r]; v >= threshold {
				peaks = append(peaks, peak{v, t, r - rMax})
			}
		}
	}
	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].votes != peaks[j].votes {
			return peaks[i].votes > peaks[j].votes
		}
		if peaks[i].theta != peaks[j].theta {
			return peaks[i].theta < peaks[j].theta
		}
		return peaks[i].rho < peaks[j].rho
	})

	var segments []LineSegment
	for _, p := range peaks {
		segments = append(segments, walkLine(grid, w, h, cos[p.theta], sin[p.theta], p.rho, minLineLength, maxGap)...)
	}
	return segments
}

// walkLine traverses the line rho = x cos(t) + y sin(t) across the
// image, collecting runs of edge pixels separated by at most maxGap
// and clearing the pixels it consumes.
func walkLine(grid []bool, w, h int, cosT, sinT float64, rho, minLen, maxGap int) []LineSegment {
	var pts []image.Point
	if math.Abs(sinT) >= math.Abs(cosT) {
		for x := 0; x < w; x++ {
			y := int(math.Round((float64(rho) - float64(x)*cosT) / sinT))
			pts = append(pts, findNear(grid, w, h, x, y, 0, 1))
		}
	} else {
		for y := 0; y < h; y++ {
			x := int(math.Round((float64(rho) - float64(y)*sinT) / cosT))
			pts = append(pts, findNear(grid, w, h, x, y, 1, 0))
		}
	}

	var segments []LineSegment
	var run []image.Point
	gap := 0
	flush := func() {
		if len(run) == 0 {
			return
		}
		a, b := run[0], run[len(run)-1]
		if dist(a, b) >= float64(minLen) {
			for _, q := range run {
				grid[q.Y*w+q.X] = false
			}
			segments = append(segments, LineSegment{a.X, a.Y, b.X, b.Y})
		}
		run = nil
	}
	for _, q := range pts {
		if q.X < 0 {
			gap++
			if gap > maxGap {
				flush()
			}
			continue
		}
		gap = 0
		run = append(run, q)
	}
	flush()
	return segments
}

// findNear returns the edge pixel at (x, y) or one step along the
// perpendicular (dx, dy); (-1, -1) marks a miss.
func findNear(grid []bool, w, h, x, y, dx, dy int) image.Point {
	for _, off := range [3]int{0, -1, 1} {
		px, py := x+off*dx, y+off*dy
		if px >= 0 && py >= 0 && px < w && py < h && grid[py*w+px] {
			return image.Pt(px, py)
		}
	}
	return image.Pt(-1, -1)
}

// HoughCircles detects circles in a grayscale image using the gradient
// method: edge pixels vote along their gradient direction into a
// centre accumulator, and radii are recovered from the distance
// histogram of supporting edge pixels. Centres closer than minDist to
// a stronger detection are suppressed.
func HoughCircles(gray *image.Gray, minRadius, maxRadius, minDist, votes int) []Circle {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 3 || h < 3 {
		return nil
	}

	var edges []edgePix
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx, gy := sobelAt(gray, bounds, x, y)
			if mag := math.Hypot(gx, gy); mag >= 64 {
				edges = append(edges, edgePix{x, y, gx / mag, gy / mag})
			}
		}
	}
	if len(edges) == 0 {
		return nil
	}

	rStep := 1
	if maxRadius-minRadius > 64 {
		rStep = 2
	}
	acc := make([]int, w*h)
	vote := func(cx, cy int) {
		if cx >= 0 && cy >= 0 && cx < w && cy < h {
			acc[cy*w+cx]++
		}
	}
	for _, e := range edges {
		for r := minRadius; r <= maxRadius; r += rStep {
			fr := float64(r)
			vote(e.x+int(math.Round(fr*e.dx)), e.y+int(math.Round(fr*e.dy)))
			vote(e.x-int(math.Round(fr*e.dx)), e.y-int(math.Round(fr*e.dy)))
		}
	}

	type centre struct{ v, x, y int }
	var centres []centre
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			v := acc[y*w+x]
			if v < votes {
				continue
			}
			if v >= acc[y*w+x-1] && v > acc[y*w+x+1] &&
				v >= acc[(y-1)*w+x] && v > acc[(y+1)*w+x] {
				centres = append(centres, centre{v, x, y})
			}
		}
	}
	sort.Slice(centres, func(i, j int) bool {
		if centres[i].v != centres[j].v {
			return centres[i].v > centres[j].v
		}
		if centres[i].y != centres[j].y {
			return centres[i].y < centres[j].y
		}
		return centres[i].x < centres[j].x
	})

	var circles []Circle
	for _, c := range centres {
		tooClose := false
		for _, kept := range circles {
			if math.Hypot(float64(c.x-kept.X), float64(c.y-kept.Y)) < float64(minDist) {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		if r, ok := bestRadius(edges, c.x, c.y, minRadius, maxRadius); ok {
			circles = append(circles, Circle{c.x, c.y, r})
		}
	}
	return circles
}

// edgePix is an edge pixel with its unit gradient direction.
type edgePix struct {
	x, y   int
	dx, dy float64
}

// bestRadius histograms edge-pixel distances from a candidate centre
// and picks the best-supported radius in range.
func bestRadius(edges []edgePix, cx, cy, minR, maxR int) (int, bool) {
	hist := make([]int, maxR+2)
	for _, e := range edges {
		d := int(math.Round(math.Hypot(float64(e.x-cx), float64(e.y-cy))))
		if d >= minR && d <= maxR {
			hist[d]++
		}
	}
	best, bestCount := 0, 0
	for r := minR; r <= maxR; r++ {
		if hist[r] > bestCount {
			best, bestCount = r, hist[r]
		}
	}
	// A genuine circle has support proportional to its circumference.
	need := int(math.Pi * float64(best) / 2)
	if need < 6 {
		need = 6
	}
	return best, bestCount >= need
}

// sobelAt computes the 3x3 Sobel gradient at an interior pixel.
func sobelAt(g *image.Gray, b image.Rectangle, x, y int) (float64, float64) {
	at := func(dx, dy int) float64 {
		return float64(g.GrayAt(b.Min.X+x+dx, b.Min.Y+y+dy).Y)
	}
	gx := -at(-1, -1) - 2*at(-1, 0) - at(-1, 1) +
		at(1, -1) + 2*at(1, 0) + at(1, 1)
	gy := -at(-1, -1) - 2*at(0, -1) - at(1, -1) +
		at(-1, 1) + 2*at(0, 1) + at(1, 1)
	return gx, gy
}
