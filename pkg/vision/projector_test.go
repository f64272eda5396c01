package vision

import (
	"image"
	"testing"
)

func testProjector() Projector {
	return Projector{
		SensorWidth:   640,
		SensorHeight:  480,
		DisplayWidth:  240,
		DisplayHeight: 240,
		Margin:        10,
	}
}

func TestProjector_CenterMapsToCenter(t *testing.T) {
	p := testProjector()
	x, y := p.Project(image.Rect(310, 230, 330, 250))
	if x != 120 || y != 120 {
		t.Errorf("sensor center mapped to (%v, %v), want (120, 120)", x, y)
	}
}

func TestProjector_TopLeftBoxLandsLeftAndAbove(t *testing.T) {
	p := Projector{
		SensorWidth:   100,
		SensorHeight:  100,
		DisplayWidth:  240,
		DisplayHeight: 240,
		Margin:        10,
	}

	x, y := p.Project(image.Rect(10, 10, 20, 20))
	if x >= 120 {
		t.Errorf("top-left box mapped to x=%v, want left of 120", x)
	}
	if y >= 120 {
		t.Errorf("top-left box mapped to y=%v, want above 120", y)
	}
	if x < p.Margin || y < p.Margin {
		t.Errorf("point (%v, %v) escaped the margin bounds", x, y)
	}
}

func TestProjector_EdgesRespectMargin(t *testing.T) {
	p := testProjector()

	// The extreme sensor corner maps exactly onto the margin bound.
	x, y := p.Project(image.Rect(0, 0, 0, 0))
	if x != 10 {
		t.Errorf("x = %v, want 10", x)
	}
	if y != 10 {
		t.Errorf("y = %v, want 10", y)
	}

	// Boxes reaching past the frame clamp to the same bound.
	x, _ = p.Project(image.Rect(-200, 0, -100, 50))
	if x != 10 {
		t.Errorf("clamped x = %v, want 10", x)
	}
}

func TestProjector_AreaFraction(t *testing.T) {
	p := testProjector()
	got := p.AreaFraction(image.Rect(0, 0, 64, 48))
	want := float64(64*48) / float64(640*480)
	if got != want {
		t.Errorf("area fraction = %v, want %v", got, want)
	}
}

func TestEvent_LargestPicksBiggestBox(t *testing.T) {
	ev := Event{Boxes: []image.Rectangle{
		image.Rect(0, 0, 10, 10),
		image.Rect(0, 0, 40, 40),
		image.Rect(0, 0, 20, 20),
	}}
	box, ok := ev.Largest()
	if !ok {
		t.Fatal("expected a box")
	}
	if box.Dx() != 40 {
		t.Errorf("largest box has width %d, want 40", box.Dx())
	}

	if _, ok := (Event{}).Largest(); ok {
		t.Error("empty event reported a box")
	}
}
