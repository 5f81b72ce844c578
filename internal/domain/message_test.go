package domain

import "testing"

func TestVisibilityDeleteFor(t *testing.T) {
	cases := []struct {
		name string
		from Visibility
		side Side
		want Visibility
	}{
		{"sender first", VisibleToBoth, SenderSide, HiddenForSender},
		{"recipient first", VisibleToBoth, RecipientSide, HiddenForRecipient},
		{"recipient completes purge", HiddenForSender, RecipientSide, Purged},
		{"sender completes purge", HiddenForRecipient, SenderSide, Purged},
		{"sender repeat is noop", HiddenForSender, SenderSide, HiddenForSender},
		{"recipient repeat is noop", HiddenForRecipient, RecipientSide, HiddenForRecipient},
		{"purged stays purged", Purged, SenderSide, Purged},
	}

	for _, tc := range cases {
		if got := tc.from.DeleteFor(tc.side); got != tc.want {
			t.Errorf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestVisibilityHiddenFor(t *testing.T) {
	if VisibleToBoth.HiddenFor(SenderSide) || VisibleToBoth.HiddenFor(RecipientSide) {
		t.Fatalf("fresh message must be visible to both sides")
	}
	if !HiddenForSender.HiddenFor(SenderSide) || HiddenForSender.HiddenFor(RecipientSide) {
		t.Fatalf("sender-deleted message must hide for sender only")
	}
	if !Purged.HiddenFor(SenderSide) || !Purged.HiddenFor(RecipientSide) {
		t.Fatalf("purged message must be hidden from both sides")
	}
}

func TestMessageSideOf(t *testing.T) {
	m := Message{SenderID: "a", RecipientID: "b"}

	if side, ok := m.SideOf("a"); !ok || side != SenderSide {
		t.Fatalf("expected sender side for a")
	}
	if side, ok := m.SideOf("b"); !ok || side != RecipientSide {
		t.Fatalf("expected recipient side for b")
	}
	if _, ok := m.SideOf("c"); ok {
		t.Fatalf("stranger must not resolve to a side")
	}
	if m.Counterpart("a") != "b" || m.Counterpart("b") != "a" {
		t.Fatalf("counterpart mismatch")
	}
}
