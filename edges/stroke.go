// seehuhn.de/go/scanline - a 2D rendering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package edges

import (
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/scanline/edgeplan"
	"seehuhn.de/go/scanline/geometry"
	"seehuhn.de/go/scanline/subpath"
)

// Tolerances used while building stroke outlines.
const (
	// zeroLengthThreshold is the minimum length for a stroke segment.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold is the sine of the angle below which two
	// consecutive segments are treated as collinear.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold detects a path doubling back on itself.
	// cos(179.43°) ≈ -0.9999
	cuspCosineThreshold = -0.9999

	// DefaultMiterLimit is the default miter limit.  Miter joins become
	// bevels when the interior angle is less than about 11.5 degrees.
	DefaultMiterLimit = 10.0
)

// StrokeStyle describes how a line is stroked.  Lengths are in user space.
type StrokeStyle struct {
	// Width is the line width.
	Width float64

	Cap  graphics.LineCapStyle
	Join graphics.LineJoinStyle

	// MiterLimit caps the length of miter joins, relative to the line
	// width.  Values below 1 are replaced by [DefaultMiterLimit].
	MiterLimit float64

	// Dash gives alternating on/off lengths.  Nil means a solid line.
	Dash []float64

	// DashPhase is the offset into the dash pattern at the start of each
	// subpath.
	DashPhase float64
}

// DefaultStrokeStyle returns a solid line of width 1 with butt caps and
// miter joins.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{
		Width:      1,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: DefaultMiterLimit,
	}
}

// LineStrokeEdge is the outline of a stroked path.  The outline consists
// of one polygon per subpath or dash, which together must be filled with
// the non-zero winding rule.
type LineStrokeEdge struct {
	shape    edgeplan.ShapeID
	lines    lineSet
	outlines [][]vec.Vec2
}

// NewLineStrokeEdge strokes the subpaths, which are given in user space.
// The transformation ctm maps user space to device space, and flatness is
// the tolerance in device pixels for approximating curves and round
// joins.
func NewLineStrokeEdge(shape edgeplan.ShapeID, sps []subpath.Subpath, style StrokeStyle, ctm geometry.Transform, flatness float64) *LineStrokeEdge {
	if flatness <= 0 {
		flatness = DefaultFlatness
	}
	if style.MiterLimit < 1 {
		style.MiterLimit = DefaultMiterLimit
	}
	s := &stroker{ctm: ctm, flatness: flatness, style: style}
	user := s.outline(sps)

	e := &LineStrokeEdge{shape: shape, lines: newLineSet()}
	for _, poly := range user {
		dev := make([]vec.Vec2, len(poly))
		for i, p := range poly {
			dev[i] = ctm.Apply(p)
		}
		e.outlines = append(e.outlines, dev)
		e.lines.addPolygon(dev)
	}
	e.lines.finish()
	return e
}

// Shape implements [edgeplan.Edge].
func (e *LineStrokeEdge) Shape() edgeplan.ShapeID { return e.shape }

// BoundingBox implements [edgeplan.Edge].
func (e *LineStrokeEdge) BoundingBox() geometry.BoundingBox { return e.lines.box }

// PrepareToRender implements [edgeplan.Edge].
func (e *LineStrokeEdge) PrepareToRender(yMin, yMax float64) {}

// Intercepts implements [edgeplan.Edge].
func (e *LineStrokeEdge) Intercepts(y float64, buf []edgeplan.Intercept) []edgeplan.Intercept {
	return e.lines.intercepts(y, buf)
}

// Outlines returns the outline polygons in device space.
func (e *LineStrokeEdge) Outlines() [][]vec.Vec2 {
	return e.outlines
}

// strokeRun is a connected piece of the centre line, in user space.
type strokeRun struct {
	pieces []geometry.Curve
	closed bool
}

// strokeDot is a subpath or dash without extent.  Dir is the direction
// used to orient square caps.
type strokeDot struct {
	at, dir vec.Vec2
}

// stroker builds the outline polygons of a stroke.  Each side of the
// centre line is approximated by offset Bézier curves, which are then
// flattened in device space.
type stroker struct {
	ctm      geometry.Transform
	flatness float64
	style    StrokeStyle
	d        float64 // half the line width

	runs []strokeRun
	dots []strokeDot

	poly  []vec.Vec2
	polys [][]vec.Vec2
}

// outline returns the outline polygons of the stroke, in user space.
func (s *stroker) outline(sps []subpath.Subpath) [][]vec.Vec2 {
	s.collect(sps)

	s.d = s.style.Width / 2
	if s.d <= 0 {
		return nil
	}

	if s.style.Cap == graphics.LineCapRound {
		for _, dot := range s.dots {
			s.addDot(dot)
		}
	}

	runs := s.runs
	if len(s.style.Dash) > 0 && dashLength(s.style.Dash) > 0 {
		var dots []strokeDot
		runs, dots = s.applyDashPattern(runs)
		for _, dot := range dots {
			s.addDot(dot)
		}
	}
	for _, run := range runs {
		if run.closed {
			s.strokeClosed(run.pieces)
		} else {
			s.strokeOpen(run.pieces)
		}
	}
	return s.polys
}

// emitPolygon moves the current outline polygon to the output.  Polygons
// with less than three vertices have no area and are dropped.
func (s *stroker) emitPolygon() {
	if len(s.poly) >= 3 {
		s.polys = append(s.polys, s.poly)
	}
	s.poly = nil
}

// collect splits the subpaths into runs of curves, dropping pieces of
// zero length.
func (s *stroker) collect(sps []subpath.Subpath) {
	for _, sp := range sps {
		var pieces []geometry.Curve
		for _, c := range sp.Curves {
			if c.HullSize() >= zeroLengthThreshold {
				pieces = append(pieces, c)
			}
		}
		if sp.Closed && !geometry.Coincident(sp.End(), sp.Start) {
			pieces = append(pieces, geometry.LineToCurve(sp.End(), sp.Start))
		}
		if len(pieces) == 0 {
			// a bare move draws nothing
			if len(sp.Curves) > 0 || sp.Closed {
				s.dots = append(s.dots, strokeDot{at: sp.Start, dir: vec.Vec2{X: 1}})
			}
			continue
		}
		s.runs = append(s.runs, strokeRun{pieces: pieces, closed: sp.Closed})
	}
}

// strokeOpen builds a single polygon for an open run: the left side
// forwards, the end cap, the left side of the reversed run and the start
// cap.
func (s *stroker) strokeOpen(pieces []geometry.Curve) {
	first := pieces[0]
	last := pieces[len(pieces)-1]
	s.side(pieces, false)
	s.addCap(last.P3, endTangent(last))
	s.side(reversed(pieces), false)
	s.addCap(first.P0, startTangent(first).Mul(-1))
	s.emitPolygon()
}

// strokeClosed builds one polygon for each side of a closed run.  The
// two polygons have opposite orientation, so that the area enclosed by
// the inner one is not covered.
func (s *stroker) strokeClosed(pieces []geometry.Curve) {
	s.side(pieces, true)
	s.emitPolygon()
	s.side(reversed(pieces), true)
	s.emitPolygon()
}

// side appends the offset of the run on its left, including the joins
// between pieces.
func (s *stroker) side(pieces []geometry.Curve, closed bool) {
	first := pieces[0]
	if !closed {
		s.poly = append(s.poly, s.offsetPoint(first.P0, startTangent(first)))
	}
	for i, c := range pieces {
		s.offset(c, 0)
		var next geometry.Curve
		switch {
		case i+1 < len(pieces):
			next = pieces[i+1]
		case closed:
			next = first
		default:
			continue
		}
		s.addJoin(c.P3, endTangent(c), startTangent(next))
	}
}

func reversed(pieces []geometry.Curve) []geometry.Curve {
	res := make([]geometry.Curve, len(pieces))
	for i, c := range pieces {
		res[len(pieces)-1-i] = c.Reverse()
	}
	return res
}

// startTangent returns the unit direction in which c leaves P0.  For
// curves with coincident control points the next distinct control point
// is used.
func startTangent(c geometry.Curve) vec.Vec2 {
	for _, q := range []vec.Vec2{c.P1, c.P2, c.P3} {
		if d := q.Sub(c.P0); d.Length() >= zeroLengthThreshold {
			return d.Normalize()
		}
	}
	return vec.Vec2{X: 1}
}

// endTangent returns the unit direction in which c arrives at P3.
func endTangent(c geometry.Curve) vec.Vec2 {
	return startTangent(c.Reverse()).Mul(-1)
}

// cross returns the z-component of the cross product of a and b, which
// is the sine of the angle between two unit vectors.
func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

func (s *stroker) offsetPoint(p, t vec.Vec2) vec.Vec2 {
	return p.Add(t.Rot90().Mul(s.d))
}

// maxOffsetDepth limits the subdivision of curves while offsetting.
const maxOffsetDepth = 10

// offset appends the flattened left offset of c, without its first
// point.  The offset curve is found by moving the control points along
// the end normals.  Where this deviates from the true offset by more
// than the flatness, c is subdivided.
func (s *stroker) offset(c geometry.Curve, depth int) {
	n0 := startTangent(c).Rot90().Mul(s.d)
	if c.IsLine(zeroLengthThreshold) {
		s.poly = append(s.poly, c.P3.Add(n0))
		return
	}
	n3 := endTangent(c).Rot90().Mul(s.d)
	o := geometry.Curve{
		P0: c.P0.Add(n0),
		P1: c.P1.Add(n0),
		P2: c.P2.Add(n3),
		P3: c.P3.Add(n3),
	}
	if depth < maxOffsetDepth && s.offsetError(c, o) > s.flatness {
		a, b := c.Halves()
		s.offset(a, depth+1)
		s.offset(b, depth+1)
		return
	}
	s.flattenCurve(o)
}

// offsetError returns the distance in device space between o and the
// exact offset of c, sampled at a few parameter values.
func (s *stroker) offsetError(c, o geometry.Curve) float64 {
	worst := 0.0
	for _, t := range []float64{0.25, 0.5, 0.75} {
		tan := c.Tangent(t)
		if tan.Length() < zeroLengthThreshold {
			continue
		}
		want := s.offsetPoint(c.Eval(t), tan.Normalize())
		worst = max(worst, s.ctm.ApplyVector(o.Eval(t).Sub(want)).Length())
	}
	return worst
}

// flattenCurve appends the vertices of a polygonal approximation of the
// user space curve c, without its first point.  The number of segments
// is found with Wang's formula, using the deviation vectors mapped to
// device space.
func (s *stroker) flattenCurve(c geometry.Curve) {
	d1 := s.ctm.ApplyVector(c.P0.Sub(c.P1.Mul(2)).Add(c.P2))
	d2 := s.ctm.ApplyVector(c.P1.Sub(c.P2.Mul(2)).Add(c.P3))

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if nFloat := math.Sqrt(3 * m / (4 * s.flatness)); nFloat > 1 {
			n = int(math.Ceil(nFloat))
		}
	}
	for i := 1; i < n; i++ {
		s.poly = append(s.poly, c.Eval(float64(i)/float64(n)))
	}
	s.poly = append(s.poly, c.P3)
}

// addJoin continues the left side around the point P, where the tangent
// changes from T1 to T2.  On the inner side of a corner the outline goes
// through P itself.  The result ends at the start of the next offset.
func (s *stroker) addJoin(P, T1, T2 vec.Vec2) {
	cosTheta := T1.Dot(T2)
	sinTheta := cross(T1, T2)
	next := s.offsetPoint(P, T2)

	switch {
	case cosTheta < cuspCosineThreshold:
		s.addCap(P, T1)
	case sinTheta > -collinearityThreshold && sinTheta < collinearityThreshold:
		// collinear
	case sinTheta > 0:
		s.poly = append(s.poly, P)
	case s.style.Join == graphics.LineJoinMiter:
		// The miter length relative to the line width is 1/sin(φ/2),
		// where φ is the interior angle, and sin(φ/2) = cos(θ/2).
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		const miterEpsilon = 1e-10
		if sinHalf > 0 && 1/sinHalf <= s.style.MiterLimit+miterEpsilon {
			bisector := T1.Rot90().Add(T2.Rot90())
			if l := bisector.Length(); l > zeroLengthThreshold {
				s.poly = append(s.poly, P.Add(bisector.Mul(s.d/(l*sinHalf))))
			}
		}
		// beyond the miter limit this is a bevel join
	case s.style.Join == graphics.LineJoinRound:
		s.addArc(P, T1.Rot90(), math.Atan2(sinTheta, cosTheta))
	}
	s.poly = append(s.poly, next)
}

// addCap adds a line cap at P, going from the left side to the right
// side.  T is the outward tangent direction.
func (s *stroker) addCap(P, T vec.Vec2) {
	N := T.Rot90()
	switch s.style.Cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(s.d))
		s.poly = append(s.poly, ext.Add(N.Mul(s.d)), ext.Sub(N.Mul(s.d)))
	case graphics.LineCapRound:
		// half circle from +N through T to -N
		s.addArc(P, N, -math.Pi)
	}
	// butt caps need no extra points
}

// addArc appends a circular arc of radius d around center, starting in
// direction from and sweeping by the given angle (positive is
// counter-clockwise in a y-up system).  The first point of the arc is
// not included.  Each quarter circle is approximated by a cubic Bézier
// curve, which is then flattened.
func (s *stroker) addArc(center, from vec.Vec2, sweep float64) {
	n := max(int(math.Ceil(math.Abs(sweep)/(math.Pi/2)-1e-9)), 1)
	phi := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(phi/4)

	a := from
	for i := 1; i <= n; i++ {
		sin, cos := math.Sincos(float64(i) * phi)
		b := vec.Vec2{X: from.X*cos - from.Y*sin, Y: from.X*sin + from.Y*cos}
		s.flattenCurve(geometry.Curve{
			P0: center.Add(a.Mul(s.d)),
			P1: center.Add(a.Add(a.Rot90().Mul(k)).Mul(s.d)),
			P2: center.Add(b.Sub(b.Rot90().Mul(k)).Mul(s.d)),
			P3: center.Add(b.Mul(s.d)),
		})
		a = b
	}
}

// addDot draws a subpath or dash without extent, as a circle for round
// caps and as a square for square caps.
func (s *stroker) addDot(dot strokeDot) {
	switch s.style.Cap {
	case graphics.LineCapRound:
		from := vec.Vec2{X: 1}
		s.poly = append(s.poly, dot.at.Add(from.Mul(s.d)))
		s.addArc(dot.at, from, 2*math.Pi)
	case graphics.LineCapSquare:
		T := dot.dir.Mul(s.d)
		N := T.Rot90()
		s.poly = append(s.poly,
			dot.at.Add(T).Add(N),
			dot.at.Add(T).Sub(N),
			dot.at.Sub(T).Sub(N),
			dot.at.Sub(T).Add(N),
		)
	}
	s.emitPolygon()
}
