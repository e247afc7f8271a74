package domain

import "testing"

func TestIsMobileNumber(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"5234567", true},
		{"52345678", true},
		{"+372 5234 567", true},
		{"372 5234 5678", true},
		{"+372 (5234) 567", true},
		{"6234567", false},
		{"+372 6234 567", false},
		{"523456", false},
		{"523456789", false},
		{"", false},
		{"  -  ", false},
	}
	for _, tc := range cases {
		if got := IsMobileNumber(tc.phone); got != tc.want {
			t.Fatalf("IsMobileNumber(%q) = %v, want %v", tc.phone, got, tc.want)
		}
	}
}

func TestPriorityRank(t *testing.T) {
	order := []Priority{PriorityUnreviewed, PriorityHigh, PriorityMedium, PriorityNormal, PriorityLow}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() >= order[i].Rank() {
			t.Fatalf("expected %s to rank before %s", order[i-1], order[i])
		}
	}
	if Priority("").Rank() != PriorityNormal.Rank() {
		t.Fatal("empty priority should rank as normal")
	}
}

func TestSortForCalling(t *testing.T) {
	contacts := []Contact{
		{Name: "landline normal", Phone: "+372 6234 567", Priority: PriorityNormal},
		{Name: "mobile low", Phone: "5234567", Priority: PriorityLow},
		{Name: "mobile normal", Phone: "+372 5234 567", Priority: PriorityNormal},
		{Name: "landline high", Phone: "6234567", Priority: PriorityHigh},
		{Name: "mobile unreviewed", Phone: "5234567", Priority: PriorityUnreviewed},
	}

	SortForCalling(contacts)

	want := []string{
		"mobile unreviewed",
		"landline high",
		"mobile normal",
		"landline normal",
		"mobile low",
	}
	for i, name := range want {
		if contacts[i].Name != name {
			t.Fatalf("position %d: got %q, want %q", i, contacts[i].Name, name)
		}
	}
}

func TestSortForCallingIsStable(t *testing.T) {
	contacts := []Contact{
		{Name: "first", Phone: "5234567", Priority: PriorityNormal},
		{Name: "second", Phone: "5234568", Priority: PriorityNormal},
		{Name: "third", Phone: "5234569", Priority: PriorityNormal},
	}

	SortForCalling(contacts)

	for i, name := range []string{"first", "second", "third"} {
		if contacts[i].Name != name {
			t.Fatalf("tie order changed at %d: got %q", i, contacts[i].Name)
		}
	}
}
