package domain

import "math"

// Epsilon is the tolerance used for parallel and degenerate checks
const Epsilon = 1e-9

// Vec2 is a screen or plan coordinate
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64  { return v.Sub(o).Len() }
func (v Vec2) ToPlan() Vec3         { return Vec3{X: v.X, Y: v.Y} }
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Vec3 is a world coordinate. Y is up in world space.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Len() float64         { return math.Sqrt(v.Dot(v)) }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Normalize returns the unit vector, or the zero vector for a zero input
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < Epsilon {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// FlipYZ swaps the Y and Z components, converting plan space into world space
func (v Vec3) FlipYZ() Vec3 { return Vec3{v.X, v.Z, v.Y} }

// WithY returns a copy with Y replaced
func (v Vec3) WithY(y float64) Vec3 { return Vec3{v.X, y, v.Z} }

// PlanXY drops the Z component of a plan-space point
func (v Vec3) PlanXY() Vec2 { return Vec2{v.X, v.Y} }

// Ray is a half-line
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Plane is the set of points p with Normal·p == Distance
type Plane struct {
	Normal   Vec3
	Distance float64
}

// Plane constructors
var (
	// PlanPlane is z = 0 in plan space, viewed from +Z
	PlanPlane = Plane{Normal: Vec3{Z: 1}}
	// GroundPlane is y = 0 in world space
	GroundPlane = Plane{Normal: Vec3{Y: 1}}
)

// Raycast intersects the ray with the plane. It returns false when the ray is parallel
// to the plane or the hit lies behind the origin.
func (p Plane) Raycast(r Ray) (Vec3, bool) {
	denom := p.Normal.Dot(r.Direction)
	if math.Abs(denom) < Epsilon {
		return Vec3{}, false
	}
	t := (p.Distance - p.Normal.Dot(r.Origin)) / denom
	if t < 0 {
		return Vec3{}, false
	}
	return r.At(t), true
}

// Camera turns a screen coordinate into a world ray
type Camera interface {
	ScreenRay(screen Vec2) Ray
}

// OrthoCamera looks down -Z onto the plan. Screen Y grows downward.
type OrthoCamera struct {
	Center   Vec2    // plan point under the viewport center
	Scale    float64 // plan units per screen unit
	Viewport Vec2    // width, height in screen units
	Height   float64 // camera Z
}

func (c OrthoCamera) ScreenRay(screen Vec2) Ray {
	scale := c.Scale
	if scale == 0 {
		scale = 1
	}
	height := c.Height
	if height <= 0 {
		height = 10
	}
	x := c.Center.X + (screen.X-c.Viewport.X/2)*scale
	y := c.Center.Y - (screen.Y-c.Viewport.Y/2)*scale
	return Ray{
		Origin:    Vec3{X: x, Y: y, Z: height},
		Direction: Vec3{Z: -1},
	}
}

// ScreenPoint returns the screen coordinate above a plan point
func (c OrthoCamera) ScreenPoint(p Vec2) Vec2 {
	scale := c.Scale
	if scale == 0 {
		scale = 1
	}
	return Vec2{
		X: (p.X-c.Center.X)/scale + c.Viewport.X/2,
		Y: (c.Center.Y-p.Y)/scale + c.Viewport.Y/2,
	}
}

// PerspectiveCamera is a pinhole camera in world space
type PerspectiveCamera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3
	Fovy     float64 // vertical field of view, degrees
	Viewport Vec2
}

func (c PerspectiveCamera) basis() (forward, right, up Vec3) {
	forward = c.Target.Sub(c.Position).Normalize()
	up = c.Up
	if up.Len() < Epsilon {
		up = Vec3{Y: 1}
	}
	right = forward.Cross(up).Normalize()
	return forward, right, right.Cross(forward)
}

// halfExtents returns the half width and height of the image plane at distance 1
func (c PerspectiveCamera) halfExtents() (halfW, halfH float64) {
	aspect := 1.0
	if c.Viewport.Y > 0 {
		aspect = c.Viewport.X / c.Viewport.Y
	}
	halfH = math.Tan(c.Fovy * math.Pi / 360)
	return halfH * aspect, halfH
}

func (c PerspectiveCamera) ScreenRay(screen Vec2) Ray {
	forward, right, trueUp := c.basis()
	halfW, halfH := c.halfExtents()

	var nx, ny float64
	if c.Viewport.X > 0 && c.Viewport.Y > 0 {
		nx = 2*screen.X/c.Viewport.X - 1
		ny = 1 - 2*screen.Y/c.Viewport.Y
	}
	dir := forward.
		Add(right.Scale(nx * halfW)).
		Add(trueUp.Scale(ny * halfH)).
		Normalize()
	return Ray{Origin: c.Position, Direction: dir}
}

// Project returns the screen coordinate of a world point. It reports false for
// points behind the camera or a camera without a viewport.
func (c PerspectiveCamera) Project(p Vec3) (Vec2, bool) {
	if c.Viewport.X <= 0 || c.Viewport.Y <= 0 {
		return Vec2{}, false
	}
	forward, right, trueUp := c.basis()
	halfW, halfH := c.halfExtents()

	d := p.Sub(c.Position)
	depth := d.Dot(forward)
	if depth < Epsilon {
		return Vec2{}, false
	}
	nx := d.Dot(right) / (depth * halfW)
	ny := d.Dot(trueUp) / (depth * halfH)
	return Vec2{
		X: (nx + 1) * c.Viewport.X / 2,
		Y: (1 - ny) * c.Viewport.Y / 2,
	}, true
}

// CameraPlane resolves screen coordinates onto a plane through a camera
type CameraPlane struct {
	Name   string
	Plane  Plane
	Camera Camera
}

// Raycast returns the point on the plane under the screen coordinate
func (p CameraPlane) Raycast(screen Vec2) (Vec3, bool) {
	if p.Camera == nil {
		return Vec3{}, false
	}
	return p.Plane.Raycast(p.Camera.ScreenRay(screen))
}

// ProjectOnSegment returns the parameter t in [0,1] of the closest point of segment ab to p
func ProjectOnSegment(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < Epsilon {
		return 0
	}
	t := p.Sub(a).Dot(ab) / l2
	return math.Max(0, math.Min(1, t))
}

// DistanceToSegment returns the distance from p to segment ab
func DistanceToSegment(p, a, b Vec2) float64 {
	return p.Dist(a.Lerp(b, ProjectOnSegment(p, a, b)))
}
