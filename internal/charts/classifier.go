// Package charts turns rendered page images into structured chart
// records: a geometric classifier decides whether a page contains a
// bar, line, pie or scatter chart, and an OCR-driven parser recovers
// titles, axis labels and numeric data points from the raster.
package charts

import (
	"image"

	"github.com/raporlabs/finrag/internal/core/domain"
	"github.com/raporlabs/finrag/internal/vision"
)

const (
	// acceptScore is the minimum classification score; weaker
	// detections are treated as "no chart on this page".
	acceptScore = 0.30

	// minRectArea filters contour noise before counting bars.
	minRectArea = 100.0

	segmentMinLength = 50
	segmentMaxGap    = 10
	segmentVotes     = 50

	pieMinRadius     = 10
	pieMaxRadius     = 200
	scatterMinRadius = 2
	scatterMaxRadius = 10
	scatterMinCount  = 5
)

// Features are the geometric observations one page image reduces to.
type Features struct {
	// Rectangles counts 4-vertex contour approximations above the
	// noise area floor.
	Rectangles int

	// Segments are the straight line segments found on the edge map.
	Segments []vision.LineSegment

	// LargeCircles are pie-sized circles, SmallCircles scatter-sized
	// dots.
	LargeCircles []vision.Circle
	SmallCircles []vision.Circle
}

// ExtractFeatures runs the full geometric pipeline over a page image.
func ExtractFeatures(img image.Image) Features {
	gray := vision.Grayscale(img)
	edges := vision.EdgeMap(gray)

	var f Features
	for _, contour := range vision.FindContours(edges) {
		if rectangleContour(contour) {
			f.Rectangles++
		}
	}
	f.Segments = vision.HoughLinesP(edges, segmentVotes, segmentMinLength, segmentMaxGap)
	f.LargeCircles = vision.HoughCircles(gray, pieMinRadius, pieMaxRadius, 40, 30)
	f.SmallCircles = vision.HoughCircles(gray, scatterMinRadius, scatterMaxRadius, 10, 8)
	return f
}

// rectangleContour reports whether the contour is a bar-shaped
// quadrilateral. Area must be strictly above minRectArea; exactly at
// the bound is noise.
func rectangleContour(contour []image.Point) bool {
	if vision.ContourArea(contour) <= minRectArea {
		return false
	}
	poly := vision.ApproxPolyDP(contour, 0.02*vision.ArcLength(contour, true))
	return len(poly) == 4
}

// Classify scores each chart type against the features and returns the
// winner. ok is false when the best score stays under the acceptance
// threshold, meaning the page holds no recognisable chart.
func Classify(f Features) (domain.ChartType, float64, bool) {
	best := domain.ChartType("")
	bestScore := 0.0
	for _, c := range []struct {
		t     domain.ChartType
		score float64
	}{
		{domain.ChartTypeBar, barScore(f)},
		{domain.ChartTypeLine, lineScore(f)},
		{domain.ChartTypePie, pieScore(f)},
		{domain.ChartTypeScatter, scatterScore(f)},
	} {
		if c.score > bestScore {
			best, bestScore = c.t, c.score
		}
	}
	if bestScore < acceptScore {
		return "", bestScore, false
	}
	return best, bestScore, true
}

// barScore grows with the rectangle count and saturates at 0.8.
func barScore(f Features) float64 {
	return capScore(float64(f.Rectangles)/10, 0.8)
}

// lineScore grows with the segment count and saturates at 0.7.
func lineScore(f Features) float64 {
	return capScore(float64(len(f.Segments))/20, 0.7)
}

// pieScore is binary: any pie-sized circle is strong evidence.
func pieScore(f Features) float64 {
	if len(f.LargeCircles) >= 1 {
		return 0.8
	}
	return 0
}

// scatterScore needs a minimum dot population before it counts at all.
func scatterScore(f Features) float64 {
	if len(f.SmallCircles) < scatterMinCount {
		return 0
	}
	return capScore(float64(len(f.SmallCircles))/20, 0.7)
}

func capScore(v, max float64) float64 {
	if v > max {
		return max
	}
	return v
}
