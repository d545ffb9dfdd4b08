package motion

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/charctl/internal/engine/events"
	"github.com/Faultbox/charctl/internal/engine/input"
	"github.com/Faultbox/charctl/internal/engine/look"
	"github.com/Faultbox/charctl/pkg/math"
)

const bodyID = 3

func newController() *Controller {
	return New(bodyID, input.DefaultBindings(), DefaultConfig())
}

func newFrame() *events.Frame {
	return events.Begin(events.NewSet(), 1, time.Second/60)
}

func TestFixedStepAccumulation(t *testing.T) {
	f := DefaultFixedTimestep
	tests := []struct {
		name   string
		frames []float32
		want   int
	}{
		{"irregular frames summing to three steps", []float32{0.5 * f, 0.7 * f, 0.9 * f, 0.4 * f, 0.5 * f}, 3},
		{"exact steps", []float32{f, f, f}, 3},
		{"short frames", []float32{0.25 * f, 0.25 * f, 0.25 * f, 0.25 * f}, 1},
		{"nothing elapsed", []float32{0, 0, 0}, 0},
		{"long frame drops excess", []float32{3.5 * f}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController()
			keys := input.NewSnapshot()
			steps := 0
			for _, elapsed := range tt.frames {
				if due, _ := c.Sample(keys, elapsed); due {
					steps++
				}
			}
			if steps != tt.want {
				t.Errorf("expected %d steps, got %d", tt.want, steps)
			}
			if c.Accumulated() < 0 || c.Accumulated() >= c.FixedTimestep {
				t.Errorf("accumulator out of range: %v", c.Accumulated())
			}
		})
	}
}

func TestInputStickyUntilStep(t *testing.T) {
	c := newController()
	keys := input.NewSnapshot().Hold(input.KeyW)

	if due, _ := c.Sample(keys, c.FixedTimestep/2); due {
		t.Fatal("step should not be due yet")
	}
	keys.Release(input.KeyW).EndFrame()

	if due, _ := c.Sample(keys, c.FixedTimestep/2); !due {
		t.Fatal("expected step to be due")
	}
	if !c.Pending().Forward {
		t.Error("expected forward press from the previous frame to be kept")
	}

	c.Step(newFrame(), look.Identity, Body{Mass: 80})
	if !c.Pending().Empty() {
		t.Errorf("expected pending input to be reset, got %+v", c.Pending())
	}
}

func TestFlyToggle(t *testing.T) {
	c := newController()
	keys := input.NewSnapshot().Press(input.KeyF)

	if _, toggled := c.Sample(keys, 0); !toggled || !c.Fly {
		t.Fatalf("expected fly on, got toggled=%v fly=%v", toggled, c.Fly)
	}
	keys.EndFrame()
	if _, toggled := c.Sample(keys, 0); toggled || !c.Fly {
		t.Error("holding the toggle key should not flip fly again")
	}
	keys.Release(input.KeyF).Press(input.KeyF)
	c.Sample(keys, 0)
	if c.Fly {
		t.Error("expected fly off after second press")
	}
}

func TestWalkForwardScenario(t *testing.T) {
	c := newController()
	c.pending = input.State{Forward: true}
	frame := newFrame()

	res := c.Step(frame, look.Identity, Body{Mass: 80})

	if !math.Near(res.Desired, mgl32.Vec3{0, 0, -5}, 1e-5) {
		t.Errorf("expected desired (0,0,-5), got %v", res.Desired)
	}

	imp := frame.Channels.Impulse.Slice()
	if len(imp) != 1 {
		t.Fatalf("expected 1 impulse event, got %d", len(imp))
	}
	if !math.Near(imp[0].Impulse, mgl32.Vec3{0, 0, -400}, 1e-3) {
		t.Errorf("expected impulse (0,0,-400), got %v", imp[0].Impulse)
	}
	if imp[0].Entity != bodyID {
		t.Errorf("expected impulse from %v, got %v", bodyID, imp[0].Entity)
	}

	force := frame.Channels.Force.Slice()
	if len(force) != 1 {
		t.Fatalf("expected 1 force event, got %d", len(force))
	}
	if !math.Near(force[0].Force, mgl32.Vec3{0, 0, -24000}, 1e-2) {
		t.Errorf("expected force (0,0,-24000), got %v", force[0].Force)
	}

	tr := frame.Channels.Translation.Slice()
	if len(tr) != 1 {
		t.Fatalf("expected 1 translation event, got %d", len(tr))
	}
	want := mgl32.Vec3{0, 0, -5 * c.FixedTimestep}
	if !math.Near(tr[0].Delta, want, 1e-6) {
		t.Errorf("expected translation %v, got %v", want, tr[0].Delta)
	}
	if c.Velocity != res.Desired {
		t.Errorf("expected retained velocity %v, got %v", res.Desired, c.Velocity)
	}
}

func TestRunSpeed(t *testing.T) {
	c := newController()
	c.pending = input.State{Forward: true, Right: true, Run: true}
	res := c.Step(newFrame(), look.Identity, Body{Mass: 1})
	if math32.Abs(res.Desired.Len()-DefaultRunSpeed) > 1e-4 {
		t.Errorf("expected speed %v, got %v", DefaultRunSpeed, res.Desired.Len())
	}
}

func TestGroundMovementIgnoresPitch(t *testing.T) {
	s := look.New(look.DefaultSensitivity)
	s.SetAngles(0.4, -1.3, 0)

	c := newController()
	c.pending = input.State{Forward: true}
	res := c.Step(newFrame(), s.Direction(), Body{Mass: 1})

	if res.Desired.Y() != 0 {
		t.Errorf("expected no vertical motion on the ground, got %v", res.Desired)
	}
	if math32.Abs(res.Desired.Len()-DefaultWalkSpeed) > 1e-4 {
		t.Errorf("expected walk speed regardless of pitch, got %v", res.Desired.Len())
	}
}

func TestOppositeKeysCancel(t *testing.T) {
	c := newController()
	c.pending = input.State{Forward: true, Backward: true}
	frame := newFrame()
	res := c.Step(frame, look.Identity, Body{Mass: 80})
	if math.NonNegligible(res.Desired) {
		t.Errorf("expected no motion, got %v", res.Desired)
	}
	for name, n := range frame.Channels.Counts() {
		if n != 0 {
			t.Errorf("channel %s: expected no events, got %d", name, n)
		}
	}
}

func TestImpulseForceConsistency(t *testing.T) {
	tests := []struct {
		name string
		prev mgl32.Vec3
		mass float32
		in   input.State
		fly  bool
	}{
		{"from rest", mgl32.Vec3{}, 80, input.State{Forward: true}, false},
		{"reverse", mgl32.Vec3{0, 0, -5}, 60, input.State{Backward: true, Run: true}, false},
		{"strafe while moving", mgl32.Vec3{2, 0, 1}, 12.5, input.State{Left: true}, false},
		{"fly up", mgl32.Vec3{1, 1, 0}, 80, input.State{Up: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController()
			c.Fly = tt.fly
			c.pending = tt.in
			frame := newFrame()
			res := c.Step(frame, look.Identity, Body{Mass: tt.mass, Velocity: tt.prev})

			imp := frame.Channels.Impulse.Slice()
			force := frame.Channels.Force.Slice()
			if len(imp) != 1 || len(force) != 1 {
				t.Fatalf("expected one impulse and one force, got %d and %d", len(imp), len(force))
			}

			wantImp := res.Delta.Len() * tt.mass
			if math32.Abs(imp[0].Impulse.Len()-wantImp) > 1e-3 {
				t.Errorf("expected |impulse| %v, got %v", wantImp, imp[0].Impulse.Len())
			}
			wantForce := imp[0].Impulse.Len() / c.FixedTimestep
			if math32.Abs(force[0].Force.Len()-wantForce) > wantForce*1e-5 {
				t.Errorf("expected |force| %v, got %v", wantForce, force[0].Force.Len())
			}
		})
	}
}

func TestGroundedVerticalReset(t *testing.T) {
	c := newController()
	res := c.Step(newFrame(), look.Identity, Body{Mass: 80, Velocity: mgl32.Vec3{1, -3, 0}})
	if res.Desired.Y() != 0 {
		t.Errorf("expected vertical velocity 0, got %v", res.Desired.Y())
	}
	if res.Delta.Y() != 0 {
		t.Errorf("expected grounded step to leave vertical out of the delta, got %v", res.Delta)
	}
}

func TestJump(t *testing.T) {
	c := newController()
	c.pending = input.State{Jump: true}
	res := c.Step(newFrame(), look.Identity, Body{Mass: 80})
	if !c.Jumping {
		t.Error("expected jumping after jump request")
	}
	if res.Desired.Y() != DefaultJumpSpeed {
		t.Errorf("expected vertical %v, got %v", DefaultJumpSpeed, res.Desired.Y())
	}

	c.Land()
	if c.Jumping {
		t.Error("expected Land to clear jumping")
	}
}

func TestGravityIntegration(t *testing.T) {
	c := newController()
	c.Jumping = true
	c.Velocity = mgl32.Vec3{0, 2, 0}

	step := -math.Gravity * c.FixedTimestep
	prev := c.Velocity.Y()
	for i := 0; i < 30; i++ {
		c.Step(newFrame(), look.Identity, Body{Mass: 80, Velocity: c.Velocity})
		got := c.Velocity.Y()
		if math32.Abs((prev-got)-step) > 1e-5 {
			t.Fatalf("step %d: expected vertical to drop by %v, dropped by %v", i, step, prev-got)
		}
		prev = got
	}
	if !c.Jumping {
		t.Error("expected to keep falling without ground contact")
	}
}

func TestDampingScenario(t *testing.T) {
	c := newController()
	c.Velocity = mgl32.Vec3{3, 0, 3}

	want := float32(3)
	lastEmitted := 0
	for i := 1; i <= 16; i++ {
		frame := newFrame()
		c.Step(frame, look.Identity, Body{Mass: 80, Velocity: c.Velocity})
		want *= 0.5

		if !math.Near(c.Velocity, mgl32.Vec3{want, 0, want}, 1e-6) {
			t.Fatalf("step %d: expected (%v,0,%v), got %v", i, want, want, c.Velocity)
		}

		emitted := frame.Channels.Translation.Len() > 0
		nonNegligible := 2*want*want > math.Epsilon
		if emitted != nonNegligible {
			t.Errorf("step %d: translation emitted=%v for velocity %v", i, emitted, c.Velocity)
		}
		if emitted {
			if lastEmitted != i-1 {
				t.Errorf("step %d: translation resumed after stopping at step %d", i, lastEmitted)
			}
			lastEmitted = i
		}
	}
	if lastEmitted == 0 || lastEmitted == 16 {
		t.Errorf("expected translations to stop partway, last at step %d", lastEmitted)
	}
}

func TestFlyKeepsVerticalWithoutInput(t *testing.T) {
	c := newController()
	c.Fly = true
	res := c.Step(newFrame(), look.Identity, Body{Mass: 80, Velocity: mgl32.Vec3{4, 2, 0}})

	if !math.Near(res.Desired, mgl32.Vec3{2, 2, 0}, 1e-6) {
		t.Errorf("expected (2,2,0), got %v", res.Desired)
	}
	if c.Jumping {
		t.Error("fly mode should never start a jump")
	}
}

func TestFlyUsesFullBasis(t *testing.T) {
	s := look.New(look.DefaultSensitivity)
	s.SetAngles(0, 0.5, 0)

	c := newController()
	c.Fly = true
	c.pending = input.State{Forward: true, Jump: true}
	res := c.Step(newFrame(), s.Direction(), Body{Mass: 80})

	if res.Desired.Y() <= 0 {
		t.Errorf("expected climbing along a pitched-up look, got %v", res.Desired)
	}
	if c.Jumping {
		t.Error("jump input should be ignored while flying")
	}

	c.pending = input.State{Down: true}
	res = c.Step(newFrame(), look.Identity, Body{Mass: 80})
	if !math.Near(res.Desired, mgl32.Vec3{0, -DefaultWalkSpeed, 0}, 1e-5) {
		t.Errorf("expected straight down at walk speed, got %v", res.Desired)
	}
}

func TestRetuneKeepsFly(t *testing.T) {
	c := newController()
	c.Fly = true
	cfg := DefaultConfig()
	cfg.WalkSpeed = 2
	cfg.FixedTimestep = 0
	c.Retune(cfg)
	if !c.Fly || c.WalkSpeed != 2 || c.FixedTimestep != DefaultFixedTimestep {
		t.Errorf("unexpected controller after retune: %+v", c)
	}
}
