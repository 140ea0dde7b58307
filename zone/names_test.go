package zone

import "testing"

func TestCompareNames(t *testing.T) {
	tests := []struct {
		a, b string
		want Relation
	}{
		{"example.com.", "example.com.", RelationEqual},
		{"www.example.com.", "example.com.", RelationSubdomain},
		{"example.com.", "www.example.com.", RelationSuperdomain},
		{"abc.example.", "xyz.example.", RelationCommonAncestor},
		{"a.b.example.", "c.d.example.", RelationCommonAncestor},
	}

	for _, tc := range tests {
		got, _ := compareNames(tc.a, tc.b)
		if got != tc.want {
			t.Errorf("compareNames(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCompareNamesCommonAncestorLabels(t *testing.T) {
	rel, common := compareNames("abc.example.", "xyz.example.")
	if rel != RelationCommonAncestor {
		t.Fatalf("relation = %v, want RelationCommonAncestor", rel)
	}
	if common != 1 {
		t.Errorf("common labels = %d, want 1 (just \"example\")", common)
	}
}

func TestCanonicalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"example.com.", "a.example.com.", true},
		{"a.example.com.", "x.a.example.com.", true},
		{"x.a.example.com.", "b.example.com.", true},
		{"b.example.com.", "a.example.com.", false},
	}
	for _, tc := range tests {
		if got := canonicalLess(tc.a, tc.b); got != tc.want {
			t.Errorf("canonicalLess(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestRelativeLabels(t *testing.T) {
	labels, err := relativeLabels("www.sub.example.com.", "example.com.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"sub", "www"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestRelativeLabelsOutOfZone(t *testing.T) {
	_, err := relativeLabels("www.other.com.", "example.com.")
	if err == nil {
		t.Fatal("expected OutOfZone error, got nil")
	}
	if _, ok := err.(*OutOfZone); !ok {
		t.Errorf("error = %T, want *OutOfZone", err)
	}
}

func TestWildcardName(t *testing.T) {
	if got, want := wildcardName("wild.example."), "*.wild.example."; got != want {
		t.Errorf("wildcardName = %q, want %q", got, want)
	}
	if !isWildcard("*.wild.example.") {
		t.Error("isWildcard(*.wild.example.) = false, want true")
	}
	if isWildcard("wild.example.") {
		t.Error("isWildcard(wild.example.) = true, want false")
	}
}
