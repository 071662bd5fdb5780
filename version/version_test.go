package version

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{"1.0", New(1, 0), false},
		{"2.13", New(2, 13), false},
		{"0.1", New(0, 1), false},
		{"1", Version{}, true},
		{"1.x", Version{}, true},
		{"", Version{}, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) returned unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	if got, want := New(1, 0).String(), "1.0"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		a, b Version
		want bool
	}{
		{New(1, 0), New(1, 5), true},
		{New(1, 5), New(1, 0), true},
		{New(1, 0), New(2, 0), false},
	}

	for _, tt := range tests {
		if got := Compatible(tt.a, tt.b); got != tt.want {
			t.Errorf("Compatible(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b Version
		want int
	}{
		{New(1, 0), New(1, 0), 0},
		{New(1, 0), New(1, 1), -1},
		{New(1, 1), New(1, 0), 1},
		{New(1, 9), New(2, 0), -1},
		{New(2, 0), New(1, 9), 1},
	}

	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestBump(t *testing.T) {
	v := New(1, 4)
	if got, want := v.BumpMinor(), New(1, 5); got != want {
		t.Errorf("BumpMinor() = %v, want %v", got, want)
	}
	if got, want := v.BumpMajor(), New(2, 0); got != want {
		t.Errorf("BumpMajor() = %v, want %v", got, want)
	}
}

func TestMarshalJSON(t *testing.T) {
	v := New(1, 2)
	data, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() returned error: %v", err)
	}
	if got, want := string(data), `"1.2"`; got != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}

	var roundTrip Version
	if err := roundTrip.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON() returned error: %v", err)
	}
	if roundTrip != v {
		t.Errorf("round trip = %v, want %v", roundTrip, v)
	}
}
