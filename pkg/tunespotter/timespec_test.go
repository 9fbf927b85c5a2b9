package tunespotter

import (
	"errors"
	"testing"
)

func TestParseTimeSpec(t *testing.T) {
	cases := []struct {
		spec string
		want int
	}{
		{"1:30", 90},
		{"01:02:03", 3723},
		{"0:00", 0},
		{"0:05", 5},
		{"10:00", 600},
		// Fields beyond their natural range roll up arithmetically.
		{"90:00", 5400},
		{"0:75", 75},
		{"2:00:00", 7200},
	}

	for _, c := range cases {
		got, err := ParseTimeSpec(c.spec)
		if err != nil {
			t.Errorf("ParseTimeSpec(%q) returned error: %v", c.spec, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseTimeSpec(%q) = %d, want %d", c.spec, got, c.want)
		}
	}
}

func TestParseTimeSpecInvalid(t *testing.T) {
	invalid := []string{"", "90", "1:2:3:4", "abc", "1:a0", "-1:30", "1:-5", "1.5:00", ":30", "1:"}

	for _, spec := range invalid {
		if _, err := ParseTimeSpec(spec); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("ParseTimeSpec(%q) = %v, want ErrInvalidTimeFormat", spec, err)
		}
	}
}

func TestValidateRange(t *testing.T) {
	if err := ValidateRange(60, 90, true, 200); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}
	if err := ValidateRange(90, 60, true, 200); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("end before start: got %v, want ErrInvalidRange", err)
	}
	if err := ValidateRange(90, 90, true, 200); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("end equal to start: got %v, want ErrInvalidRange", err)
	}
	if err := ValidateRange(250, 0, false, 200); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("start beyond duration: got %v, want ErrInvalidRange", err)
	}
	if err := ValidateRange(199, 0, false, 200); err != nil {
		t.Errorf("open-ended range inside media rejected: %v", err)
	}
}

func TestResolveRange(t *testing.T) {
	rng, err := ResolveRange("", "", 300)
	if err != nil {
		t.Fatalf("empty specs: %v", err)
	}
	if rng != nil {
		t.Fatalf("empty specs should yield nil range, got %+v", rng)
	}

	rng, err = ResolveRange("1:00", "2:30", 300)
	if err != nil {
		t.Fatalf("full range: %v", err)
	}
	if rng.StartSec != 60 || rng.EndSec != 150 || !rng.HasEnd {
		t.Errorf("full range = %+v, want start=60 end=150 hasEnd", rng)
	}

	// A lone end spec pairs with the default start of zero.
	rng, err = ResolveRange("", "0:45", 300)
	if err != nil {
		t.Fatalf("end-only range: %v", err)
	}
	if rng.StartSec != 0 || rng.EndSec != 45 || !rng.HasEnd {
		t.Errorf("end-only range = %+v, want start=0 end=45 hasEnd", rng)
	}

	rng, err = ResolveRange("1:00", "", 300)
	if err != nil {
		t.Fatalf("start-only range: %v", err)
	}
	if rng.StartSec != 60 || rng.HasEnd {
		t.Errorf("start-only range = %+v, want start=60 open end", rng)
	}

	if _, err := ResolveRange("bogus", "", 300); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("bad start spec: got %v, want ErrInvalidTimeFormat", err)
	}
	if _, err := ResolveRange("2:30", "1:00", 300); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("inverted range: got %v, want ErrInvalidRange", err)
	}
	if _, err := ResolveRange("10:00", "", 300); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("start beyond duration: got %v, want ErrInvalidRange", err)
	}
}
