package player

import "testing"

func TestParsePosition(t *testing.T) {
	got, ok := ParsePosition(" ZAG ")
	if !ok || got != PositionCenterBack {
		t.Fatalf("expected zag, got %q ok=%v", got, ok)
	}
	if _, ok := ParsePosition("gk"); ok {
		t.Fatalf("expected unknown position to be rejected")
	}
}

func TestPlayerValidate(t *testing.T) {
	valid := Player{ID: "p1", ClubID: "c1", Name: "Goleiro", Position: PositionGoalkeeper, Price: 850, Status: StatusLikely}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid player, got %v", err)
	}

	invalid := valid
	invalid.Status = "retired"
	if err := invalid.Validate(); err == nil {
		t.Fatalf("expected invalid status error")
	}

	invalid = valid
	invalid.Price = -1
	if err := invalid.Validate(); err == nil {
		t.Fatalf("expected negative price error")
	}
}
