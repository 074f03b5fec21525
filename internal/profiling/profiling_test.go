package profiling

import (
	"testing"
	"time"
)

func TestRecorderAccumulates(t *testing.T) {
	r := New()
	r.Add("mesh", 2*time.Millisecond)
	r.Add("mesh", 3*time.Millisecond)
	r.Add("generate", time.Millisecond)

	snap := r.Snapshot()
	if snap["mesh"] != 5*time.Millisecond || snap["generate"] != time.Millisecond {
		t.Errorf("snapshot = %v", snap)
	}
	if r.Count("mesh") != 2 {
		t.Errorf("count = %d, want 2", r.Count("mesh"))
	}

	// The snapshot is a copy.
	snap["mesh"] = 0
	if r.Snapshot()["mesh"] != 5*time.Millisecond {
		t.Error("snapshot aliases recorder state")
	}
}

func TestTrack(t *testing.T) {
	var r Recorder
	stop := r.Track("stage")
	time.Sleep(time.Millisecond)
	stop()
	if r.Snapshot()["stage"] <= 0 {
		t.Error("Track recorded nothing")
	}
}

func TestTopN(t *testing.T) {
	r := New()
	r.Add("a", 1500*time.Microsecond)
	r.Add("b", 4*time.Millisecond)
	r.Add("c", 200*time.Microsecond)

	if got, want := r.TopN(2), "b:4ms, a:1.5ms"; got != want {
		t.Errorf("TopN(2) = %q, want %q", got, want)
	}
	if got, want := r.TopN(10), "b:4ms, a:1.5ms, c:0.2ms"; got != want {
		t.Errorf("TopN(10) = %q, want %q", got, want)
	}
}

func TestReset(t *testing.T) {
	r := New()
	r.Add("x", time.Second)
	r.Reset()
	if len(r.Snapshot()) != 0 || r.TopN(3) != "" {
		t.Error("reset left totals behind")
	}
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.Track("x")()
	r.Add("x", time.Second)
	r.Reset()
	if len(r.Snapshot()) != 0 || r.Count("x") != 0 || r.TopN(1) != "" {
		t.Error("nil recorder should be inert")
	}
}
