package proc

import "testing"

func TestTableAllocIsDenseAndNeverReused(t *testing.T) {
	var t_ Table
	_, id0 := t_.Alloc()
	_, id1 := t_.Alloc()
	if id0 != 0 || id1 != 1 {
		t.Fatalf("expected dense IDs 0,1; got %d,%d", id0, id1)
	}
	if t_.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", t_.Len())
	}
	if t_.Get(0).ProcessID != 0 || t_.Get(1).ProcessID != 1 {
		t.Fatalf("PCB.ProcessID must match its table index")
	}
}

func TestClampPriority(t *testing.T) {
	cases := []struct{ in, want int }{
		{-5, MinPriority},
		{-1, MinPriority},
		{0, 0},
		{9, MaxPriority},
		{15, MaxPriority},
	}
	for _, c := range cases {
		if got := ClampPriority(c.in); got != c.want {
			t.Errorf("ClampPriority(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestTimeSlicesTableShape(t *testing.T) {
	if len(TimeSlices) != MaxPriority+1 {
		t.Fatalf("TimeSlices has %d entries, want %d", len(TimeSlices), MaxPriority+1)
	}
	for i := 1; i < len(TimeSlices); i++ {
		if TimeSlices[i] > TimeSlices[i-1] {
			t.Errorf("TimeSlices should be non-increasing with priority number: [%d]=%d > [%d]=%d", i, TimeSlices[i], i-1, TimeSlices[i-1])
		}
	}
}
