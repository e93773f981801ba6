package nexus

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestStaticCameraProjectionMapsPixelsToNDC(t *testing.T) {
	cam := NewStaticCamera(&fakeAllocator{})
	cam.SetViewportSize(800, 600)

	vp := cam.GetViewProjectionMatrix()

	// Top left pixel lands at NDC (-1,-1), the opposite corner at (1,1).
	// With Vulkan's downward Y clip space that puts (0,0) at the top left
	// of the screen.
	topLeft := vp.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if math32.Abs(topLeft.X()+1) > 1e-5 || math32.Abs(topLeft.Y()+1) > 1e-5 {
		t.Errorf("(0,0) projected to (%v, %v), want (-1, -1)", topLeft.X(), topLeft.Y())
	}

	bottomRight := vp.Mul4x1(mgl32.Vec4{800, 600, 0, 1})
	if math32.Abs(bottomRight.X()-1) > 1e-5 || math32.Abs(bottomRight.Y()-1) > 1e-5 {
		t.Errorf("(800,600) projected to (%v, %v), want (1, 1)", bottomRight.X(), bottomRight.Y())
	}

	center := vp.Mul4x1(mgl32.Vec4{400, 300, 0, 1})
	if math32.Abs(center.X()) > 1e-5 || math32.Abs(center.Y()) > 1e-5 {
		t.Errorf("center projected to (%v, %v), want (0, 0)", center.X(), center.Y())
	}
}

func TestStaticCameraViewIsIdentity(t *testing.T) {
	cam := NewStaticCamera(&fakeAllocator{})
	cam.SetViewportSize(800, 600)
	if cam.ViewMatrix() != mgl32.Ident4() {
		t.Error("static camera view matrix is not the identity")
	}
}

func TestStaticCameraFixedAxes(t *testing.T) {
	cam := NewStaticCamera(&fakeAllocator{})
	if cam.Forward() != (mgl32.Vec3{0, 0, -1}) {
		t.Errorf("Forward = %v", cam.Forward())
	}
	if cam.Up() != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Up = %v", cam.Up())
	}
	if cam.Right() != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("Right = %v", cam.Right())
	}
}

func TestStaticCameraVisibility(t *testing.T) {
	cam := NewStaticCamera(&fakeAllocator{})
	cam.SetViewportSize(800, 600)

	inside := Bounds{Center: mgl32.Vec3{400, 300, 0}, HalfExtent: mgl32.Vec3{10, 10, 0}}
	if !cam.IsVisible(inside) {
		t.Error("bounds at the viewport center reported invisible")
	}

	// Straddling the edge still counts.
	edge := Bounds{Center: mgl32.Vec3{-5, 300, 0}, HalfExtent: mgl32.Vec3{10, 10, 0}}
	if !cam.IsVisible(edge) {
		t.Error("bounds overlapping the left edge reported invisible")
	}

	offLeft := Bounds{Center: mgl32.Vec3{-50, 300, 0}, HalfExtent: mgl32.Vec3{10, 10, 0}}
	if cam.IsVisible(offLeft) {
		t.Error("bounds fully left of the viewport reported visible")
	}

	offBelow := Bounds{Center: mgl32.Vec3{400, 700, 0}, HalfExtent: mgl32.Vec3{10, 10, 0}}
	if cam.IsVisible(offBelow) {
		t.Error("bounds fully below the viewport reported visible")
	}

	// Depth never culls UI content.
	deep := Bounds{Center: mgl32.Vec3{400, 300, -9999}, HalfExtent: mgl32.Vec3{1, 1, 1}}
	if !cam.IsVisible(deep) {
		t.Error("depth culled a bounds the X/Y test accepts")
	}
}

func TestStaticCameraScreenWorldRoundTrip(t *testing.T) {
	cam := NewStaticCamera(&fakeAllocator{})
	cam.SetViewportSize(800, 600)

	// Screen larger than the viewport: coordinates scale down.
	ray := cam.ScreenToWorldRay(1600, 1200, 1600, 1200)
	if ray.Origin.X() != 800 || ray.Origin.Y() != 600 {
		t.Errorf("ray origin = %v, want (800, 600, 0)", ray.Origin)
	}
	if ray.Direction != (mgl32.Vec3{0, 0, -1}) {
		t.Errorf("ray direction = %v, want (0, 0, -1)", ray.Direction)
	}

	sx, sy := cam.WorldToScreenPoint(mgl32.Vec3{400, 300, 0}, 1600, 1200)
	if sx != 800 || sy != 600 {
		t.Errorf("WorldToScreenPoint = (%v, %v), want (800, 600)", sx, sy)
	}

	// A point outside the viewport still yields a ray.
	ray = cam.ScreenToWorldRay(-100, -100, 800, 600)
	if ray.Origin.X() != -100 || ray.Origin.Y() != -100 {
		t.Errorf("off-viewport ray origin = %v", ray.Origin)
	}
}
