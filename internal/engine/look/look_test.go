package look

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/charctl/internal/engine/events"
	"github.com/Faultbox/charctl/pkg/math"
)

const lookID = 7

func newFrame() *events.Frame {
	return events.Begin(events.NewSet(), 1, time.Second/60)
}

func TestUpdateSignConvention(t *testing.T) {
	s := New(0.01)
	s.Update(newFrame(), lookID, []mgl32.Vec2{{10, 0}})
	if s.Yaw >= 0 {
		t.Errorf("moving the pointer right should turn right (negative yaw), got %v", s.Yaw)
	}

	// Turning right must swing forward toward +X.
	if f := s.Direction().Forward; f.X() <= 0 {
		t.Errorf("expected forward to swing toward +X, got %v", f)
	}

	s = New(0.01)
	s.Update(newFrame(), lookID, []mgl32.Vec2{{0, 10}})
	if s.Pitch >= 0 {
		t.Errorf("moving the pointer down should look down, got pitch %v", s.Pitch)
	}
}

func TestUpdateSumsDeltas(t *testing.T) {
	s := New(0.01)
	s.Update(newFrame(), lookID, []mgl32.Vec2{{10, 5}, {-4, 5}, {4, 0}})
	if math32.Abs(s.Yaw-(-0.1)) > 1e-6 {
		t.Errorf("expected yaw -0.1, got %v", s.Yaw)
	}
	if math32.Abs(s.Pitch-(-0.1)) > 1e-6 {
		t.Errorf("expected pitch -0.1, got %v", s.Pitch)
	}
	if s.Roll != 0 {
		t.Errorf("expected roll to stay 0, got %v", s.Roll)
	}
}

func TestPitchClamp(t *testing.T) {
	tests := []struct {
		name   string
		deltas [][]mgl32.Vec2
	}{
		{"single huge delta up", [][]mgl32.Vec2{{{0, -1e9}}}},
		{"single huge delta down", [][]mgl32.Vec2{{{0, 1e9}}}},
		{"many frames", func() [][]mgl32.Vec2 {
			var out [][]mgl32.Vec2
			for i := 0; i < 500; i++ {
				out = append(out, []mgl32.Vec2{{3, -50}})
			}
			return out
		}()},
		{"oscillating", [][]mgl32.Vec2{{{0, 5000}}, {{0, -9000}}, {{0, 1}}, {{0, -1e6}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(0.01)
			for _, frame := range tt.deltas {
				s.Update(newFrame(), lookID, frame)
				if math32.Abs(s.Pitch) > math.PitchBound {
					t.Fatalf("pitch %v exceeds bound %v", s.Pitch, math.PitchBound)
				}
			}
		})
	}
}

func TestNegligibleDeltaEmitsNothing(t *testing.T) {
	s := New(0.001)
	f := newFrame()

	// 0.5px at 0.001 rad/px = 5e-4 rad, under the 1e-3 threshold.
	changed := s.Update(f, lookID, []mgl32.Vec2{{0.3, 0.4}})
	if changed {
		t.Error("expected no change for negligible delta")
	}
	for name, n := range f.Channels.Counts() {
		if n != 0 {
			t.Errorf("channel %s: expected no events, got %d", name, n)
		}
	}
	if s.Yaw != 0 || s.Pitch != 0 {
		t.Errorf("expected angles untouched, got yaw=%v pitch=%v", s.Yaw, s.Pitch)
	}

	if s.Update(f, lookID, nil) {
		t.Error("expected no change for empty input")
	}
}

func TestUpdateEmitsEvents(t *testing.T) {
	s := New(0.01)
	f := newFrame()
	if !s.Update(f, lookID, []mgl32.Vec2{{10, 20}}) {
		t.Fatal("expected change")
	}

	ch := f.Channels
	for name, n := range ch.Counts() {
		want := 1
		if name == events.NameTranslation || name == events.NameImpulse || name == events.NameForce {
			want = 0
		}
		if n != want {
			t.Errorf("channel %s: expected %d events, got %d", name, want, n)
		}
	}

	d := ch.LookDelta.Slice()[0]
	if d.Entity != lookID || !math.Near(d.Delta, mgl32.Vec3{-0.1, -0.2, 0}, 1e-6) {
		t.Errorf("unexpected look delta %+v", d)
	}
	l := ch.Look.Slice()[0]
	if l.Angles != s.Angles() {
		t.Errorf("expected look angles %v, got %v", s.Angles(), l.Angles)
	}
	if p := ch.Pitch.Slice()[0]; p.Pitch != s.Pitch || p.Entity != lookID {
		t.Errorf("unexpected pitch event %+v", p)
	}
	if y := ch.Yaw.Slice()[0]; y.Yaw != s.Yaw || y.Entity != lookID {
		t.Errorf("unexpected yaw event %+v", y)
	}
}

func TestDirectionOrthonormal(t *testing.T) {
	angles := []mgl32.Vec3{
		{0, 0, 0},
		{1.2, 0.4, 0},
		{-3, -1.5, 0.2},
		{10, math.PitchBound, -0.7},
	}

	for _, a := range angles {
		s := New(DefaultSensitivity)
		s.SetAngles(a[0], a[1], a[2])
		d := s.Direction()

		for name, v := range map[string]mgl32.Vec3{"forward": d.Forward, "right": d.Right, "up": d.Up} {
			if math32.Abs(v.Len()-1) > 1e-4 {
				t.Errorf("angles %v: %s not unit length: %v", a, name, v.Len())
			}
		}
		if math32.Abs(d.Forward.Dot(d.Right)) > 1e-4 ||
			math32.Abs(d.Forward.Dot(d.Up)) > 1e-4 ||
			math32.Abs(d.Right.Dot(d.Up)) > 1e-4 {
			t.Errorf("angles %v: basis not orthogonal: %+v", a, d)
		}
	}
}

func TestDirectionIdentity(t *testing.T) {
	d := New(DefaultSensitivity).Direction()
	if !math.Near(d.Forward, Identity.Forward, 1e-6) ||
		!math.Near(d.Right, Identity.Right, 1e-6) ||
		!math.Near(d.Up, Identity.Up, 1e-6) {
		t.Errorf("expected identity basis, got %+v", d)
	}
}

func TestFlat(t *testing.T) {
	s := New(DefaultSensitivity)
	s.SetAngles(0.3, -1.2, 0)
	flat := s.Direction().Flat()

	if flat.Forward.Y() != 0 || flat.Right.Y() != 0 {
		t.Errorf("expected flat forward/right, got %+v", flat)
	}
	if flat.Up != math.WorldUp {
		t.Errorf("expected world up, got %v", flat.Up)
	}
	if math32.Abs(flat.Forward.Len()-1) > 1e-5 {
		t.Errorf("expected unit forward, got %v", flat.Forward.Len())
	}
}

func TestSetAnglesClamps(t *testing.T) {
	s := New(DefaultSensitivity)
	s.SetAngles(0, 5, 0)
	if s.Pitch != math.PitchBound {
		t.Errorf("expected pitch clamped to %v, got %v", math.PitchBound, s.Pitch)
	}
}
