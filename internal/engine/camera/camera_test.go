package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/motorino/pkg/math"
)

const eps = 1e-4

func nearVec(a, b math.Vec3, tol float32) bool {
	return a.Sub(b).Length() <= tol
}

func TestNewDefaults(t *testing.T) {
	c := New()

	if !c.FollowPlayer {
		t.Error("expected follow mode on by default")
	}
	if c.Yaw() != -90 || c.Pitch() != -10 {
		t.Errorf("yaw/pitch = %v/%v, want -90/-10", c.Yaw(), c.Pitch())
	}
	if c.Position != math.V3(4, 50, 120) {
		t.Errorf("Position = %v, want (4,50,120)", c.Position)
	}

	// yaw -90 looks down -Z, tilted 10 degrees down
	pitch := float64(math.Radians(-10))
	want := math.V3(0, float32(gomath.Sin(pitch)), -float32(gomath.Cos(pitch)))
	if !nearVec(c.Front, want, eps) {
		t.Errorf("Front = %v, want %v", c.Front, want)
	}
}

func TestBasisOrthonormal(t *testing.T) {
	tests := []struct{ yaw, pitch float32 }{
		{-90, -10},
		{0, 0},
		{45, 30},
		{180, -60},
	}
	for _, tt := range tests {
		c := New()
		c.SetYaw(tt.yaw)
		c.SetPitch(tt.pitch)

		for name, v := range map[string]math.Vec3{"front": c.Front, "right": c.Right, "up": c.Up} {
			if l := v.Length(); gomath.Abs(float64(l-1)) > eps {
				t.Errorf("yaw=%v pitch=%v: |%s| = %v, want 1", tt.yaw, tt.pitch, name, l)
			}
		}
		if d := c.Front.Dot(c.Right); gomath.Abs(float64(d)) > eps {
			t.Errorf("yaw=%v pitch=%v: front·right = %v, want 0", tt.yaw, tt.pitch, d)
		}
		if d := c.Front.Dot(c.Up); gomath.Abs(float64(d)) > eps {
			t.Errorf("yaw=%v pitch=%v: front·up = %v, want 0", tt.yaw, tt.pitch, d)
		}
		if c.Right.Y > eps || c.Right.Y < -eps {
			t.Errorf("yaw=%v pitch=%v: right should be horizontal, got %v", tt.yaw, tt.pitch, c.Right)
		}
	}
}

func TestSetYawRecomputesBasis(t *testing.T) {
	c := New()
	c.SetPitch(0)
	c.SetYaw(0)

	if !nearVec(c.Front, math.V3(1, 0, 0), eps) {
		t.Errorf("Front = %v, want +X", c.Front)
	}
	if !nearVec(c.Right, math.V3(0, 0, 1), eps) {
		t.Errorf("Right = %v, want +Z", c.Right)
	}
	if !nearVec(c.Up, math.V3(0, 1, 0), eps) {
		t.Errorf("Up = %v, want +Y", c.Up)
	}
}

func TestFollowAtOrigin(t *testing.T) {
	c := New()
	c.Follow(math.V3(0, 0, 0), 0)

	if !nearVec(c.Position, math.V3(0, 10, -20), eps) {
		t.Errorf("Position = %v, want (0,10,-20)", c.Position)
	}
	if c.Yaw() != 90 {
		t.Errorf("Yaw() = %v, want 90", c.Yaw())
	}
	// Camera looks toward the player along +Z
	if c.Front.Z <= 0 {
		t.Errorf("Front = %v, want positive Z", c.Front)
	}
}

func TestFollowTarget(t *testing.T) {
	tests := []struct {
		name    string
		pos     math.Vec3
		rotY    float32
		wantEye math.Vec3
		wantYaw float32
	}{
		{"facing +z", math.V3(400, 5, 400), 0, math.V3(400, 15, 380), 90},
		{"facing +x", math.V3(0, 0, 0), 90, math.V3(-20, 10, 0), 0},
		{"facing -z", math.V3(10, 0, 10), 180, math.V3(10, 10, 30), -90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eye, yaw := FollowTarget(tt.pos, tt.rotY)
			if !nearVec(eye, tt.wantEye, 1e-3) {
				t.Errorf("FollowTarget() eye = %v, want %v", eye, tt.wantEye)
			}
			if yaw != tt.wantYaw {
				t.Errorf("FollowTarget() yaw = %v, want %v", yaw, tt.wantYaw)
			}
		})
	}
}

func TestViewMatrixPlacesTargetInFront(t *testing.T) {
	c := New()
	c.Follow(math.V3(0, 0, 0), 0)

	// The player sits 20 units ahead and 10 below the eye.
	p := c.ViewMatrix().TransformVec3(math.V3(0, 0, 0))
	if p.Z >= 0 {
		t.Errorf("player in view space = %v, want negative Z", p)
	}
}

func TestProjectionMatrix(t *testing.T) {
	m := ProjectionMatrix(1)
	want := float32(1 / gomath.Tan(float64(math.Radians(FOV))/2))
	if gomath.Abs(float64(m[5]-want)) > eps {
		t.Errorf("m[5] = %v, want %v", m[5], want)
	}
}

func TestSmootherSnapsThenEases(t *testing.T) {
	c := New()
	s := NewSmoother(6, 1)

	s.Follow(c, math.V3(0, 0, 0), 0, 1.0/60)
	if !nearVec(c.Position, math.V3(0, 10, -20), eps) {
		t.Fatalf("first Follow() = %v, want snap to (0,10,-20)", c.Position)
	}

	// Target jumps 100 units along x; one frame should move only part way.
	s.Follow(c, math.V3(100, 0, 0), 0, 1.0/60)
	if c.Position.X <= 0 || c.Position.X >= 100 {
		t.Errorf("eased X = %v, want strictly between 0 and 100", c.Position.X)
	}

	for i := 0; i < 600; i++ {
		s.Follow(c, math.V3(100, 0, 0), 0, 1.0/60)
	}
	if !nearVec(c.Position, math.V3(100, 10, -20), 0.01) {
		t.Errorf("settled Position = %v, want (100,10,-20)", c.Position)
	}

	s.Reset()
	s.Follow(c, math.V3(-50, 0, 0), 0, 1.0/60)
	if !nearVec(c.Position, math.V3(-50, 10, -20), eps) {
		t.Errorf("after Reset Follow() = %v, want snap", c.Position)
	}
}
