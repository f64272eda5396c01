package display

import "testing"

func TestNull_RejectsWrongFrameSize(t *testing.T) {
	var d Null

	if err := d.Present(make([]byte, FrameSize)); err != nil {
		t.Errorf("valid frame rejected: %v", err)
	}
	if err := d.Present(make([]byte, FrameSize-1)); err == nil {
		t.Error("short frame accepted")
	}
	if err := d.Present(make([]byte, Width*Height*3)); err == nil {
		t.Error("RGB-sized frame accepted")
	}
	if d.Frames != 1 {
		t.Errorf("counted %d frames, want 1", d.Frames)
	}
}
