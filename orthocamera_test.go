package nexus

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestOrthoCameraDeferredPosition(t *testing.T) {
	cam := NewOrthoCamera(&fakeAllocator{})
	cam.SetViewportSize(800, 600)

	cam.SetPosition(mgl32.Vec3{5, 0, 0})
	if cam.Position() != (mgl32.Vec3{}) {
		t.Error("position moved before ApplyUpdates")
	}

	cam.ApplyUpdates(0.016)
	if cam.Position() != (mgl32.Vec3{5, 0, 0}) {
		t.Errorf("position = %v after ApplyUpdates", cam.Position())
	}
}

func TestOrthoCameraViewTranslatesWorld(t *testing.T) {
	cam := NewOrthoCamera(&fakeAllocator{})
	cam.SetViewportSize(800, 600)
	cam.SetPosition(mgl32.Vec3{3, -2, 7})
	cam.ApplyUpdates(0.016)

	// The camera position maps to the view space origin.
	p := cam.ViewMatrix().Mul4x1(mgl32.Vec4{3, -2, 7, 1})
	if p.Vec3() != (mgl32.Vec3{}) {
		t.Errorf("camera position in view space = %v, want origin", p.Vec3())
	}
}

func TestOrthoCameraVisibility(t *testing.T) {
	cam := NewOrthoCamera(&fakeAllocator{})
	cam.SetViewportSize(800, 600)
	cam.SetWidth(10)
	cam.SetHeight(10)
	cam.ApplyUpdates(0.016)

	front := Bounds{Center: mgl32.Vec3{0, 0, -5}, HalfExtent: mgl32.Vec3{1, 1, 1}}
	if !cam.IsVisible(front) {
		t.Error("bounds in front of the camera reported invisible")
	}

	behind := Bounds{Center: mgl32.Vec3{0, 0, 5}, HalfExtent: mgl32.Vec3{1, 1, 1}}
	if cam.IsVisible(behind) {
		t.Error("bounds behind the camera reported visible")
	}

	side := Bounds{Center: mgl32.Vec3{100, 0, -5}, HalfExtent: mgl32.Vec3{1, 1, 1}}
	if cam.IsVisible(side) {
		t.Error("bounds far outside the view volume reported visible")
	}

	// Bounds straddling the volume edge stay visible.
	edge := Bounds{Center: mgl32.Vec3{5.5, 0, -5}, HalfExtent: mgl32.Vec3{1, 1, 1}}
	if !cam.IsVisible(edge) {
		t.Error("bounds overlapping the volume edge reported invisible")
	}
}

func TestOrthoCameraWorldToScreenPoint(t *testing.T) {
	cam := NewOrthoCamera(&fakeAllocator{})
	cam.SetViewportSize(800, 600)
	cam.ApplyUpdates(0.016)

	// A point on the view axis lands at the screen center.
	sx, sy := cam.WorldToScreenPoint(mgl32.Vec3{0, 0, -5}, 800, 600)
	if math32.Abs(sx-400) > 1e-3 || math32.Abs(sy-300) > 1e-3 {
		t.Errorf("axis point = (%v, %v), want (400, 300)", sx, sy)
	}

	// The top right corner of the view volume maps to the top right of
	// the screen.
	sx, sy = cam.WorldToScreenPoint(mgl32.Vec3{5, 5, -5}, 800, 600)
	if math32.Abs(sx-800) > 1e-3 || math32.Abs(sy) > 1e-3 {
		t.Errorf("corner point = (%v, %v), want (800, 0)", sx, sy)
	}
}

func TestOrthoCameraScreenToWorldRay(t *testing.T) {
	cam := NewOrthoCamera(&fakeAllocator{})
	cam.SetViewportSize(800, 600)
	cam.SetPosition(mgl32.Vec3{2, 3, 10})
	cam.ApplyUpdates(0.016)

	ray := cam.ScreenToWorldRay(400, 300, 800, 600)
	if ray.Direction != (mgl32.Vec3{0, 0, -1}) {
		t.Errorf("ray direction = %v, want view direction", ray.Direction)
	}
	if math32.Abs(ray.Origin.X()-2) > 1e-4 || math32.Abs(ray.Origin.Y()-3) > 1e-4 {
		t.Errorf("center ray origin = %v, want camera X/Y", ray.Origin)
	}

	// Top left of the screen maps to the top left of the view plane.
	ray = cam.ScreenToWorldRay(0, 0, 800, 600)
	if math32.Abs(ray.Origin.X()-(2-5)) > 1e-4 || math32.Abs(ray.Origin.Y()-(3+5)) > 1e-4 {
		t.Errorf("top left ray origin = %v, want (-3, 8, ...)", ray.Origin)
	}
}
