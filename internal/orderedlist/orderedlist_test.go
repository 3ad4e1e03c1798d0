package orderedlist

import "testing"

func TestInsertPriorityOrder(t *testing.T) {
	var l List[string]
	l.Insert(0, "low")
	l.Insert(5, "mid")
	l.Insert(9, "hi")

	want := []string{"hi", "mid", "low"}
	for _, w := range want {
		v, _, ok := l.PopFront()
		if !ok || v != w {
			t.Fatalf("PopFront() = %q, %v; want %q", v, ok, w)
		}
	}
	if l.Len() != 0 {
		t.Fatalf("Len() = %d; want 0", l.Len())
	}
}

func TestInsertFIFOWithinPriority(t *testing.T) {
	var l List[string]
	l.Insert(3, "a")
	l.Insert(3, "b")
	l.Insert(3, "c")

	for _, w := range []string{"a", "b", "c"} {
		v, _, ok := l.PopFront()
		if !ok || v != w {
			t.Fatalf("PopFront() = %q; want %q", v, w)
		}
	}
}

func TestRemoveByToken(t *testing.T) {
	var l List[string]
	tokA := l.Insert(1, "a")
	l.Insert(2, "b")
	tokC := l.Insert(1, "c")

	if !l.Remove(tokA) {
		t.Fatal("Remove(tokA) = false; want true")
	}
	if l.Remove(tokA) {
		t.Fatal("Remove(tokA) a second time = true; want false (already removed)")
	}

	v, _, ok := l.PopFront()
	if !ok || v != "b" {
		t.Fatalf("PopFront() = %q; want %q", v, "b")
	}

	if !l.Contains(tokC) {
		t.Fatal("Contains(tokC) = false; want true")
	}
	v, _, ok = l.PopFront()
	if !ok || v != "c" {
		t.Fatalf("PopFront() = %q; want %q", v, "c")
	}
}

func TestDrainEmptiesList(t *testing.T) {
	var l List[int]
	l.Insert(1, 10)
	l.Insert(2, 20)

	got := l.Drain()
	if len(got) != 2 {
		t.Fatalf("len(Drain()) = %d; want 2", len(got))
	}
	if got[0] != 20 || got[1] != 10 {
		t.Fatalf("Drain() = %v; want [20 10]", got)
	}
	if l.Len() != 0 {
		t.Fatalf("Len() after Drain() = %d; want 0", l.Len())
	}
}

func TestRemoveMatchFindsFirstMatchInPriorityOrder(t *testing.T) {
	var l List[string]
	l.Insert(1, "low-a")
	l.Insert(5, "hi")
	l.Insert(1, "low-b")

	tok, ok := l.RemoveMatch(func(v string) bool { return v == "hi" || v == "low-a" })
	if !ok {
		t.Fatal("RemoveMatch() = false; want true")
	}
	if l.Contains(tok) {
		t.Fatal("removed token still reported as Contains()")
	}
	if l.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", l.Len())
	}

	v, _, _ := l.PopFront()
	if v != "low-a" {
		t.Fatalf("PopFront() = %q; want %q ('hi' should have been removed)", v, "low-a")
	}
}

func TestRemoveMatchNoMatchReturnsFalse(t *testing.T) {
	var l List[string]
	l.Insert(1, "only")

	if _, ok := l.RemoveMatch(func(v string) bool { return v == "nope" }); ok {
		t.Fatal("RemoveMatch() = true; want false")
	}
	if l.Len() != 1 {
		t.Fatalf("Len() = %d; want 1 (no-op on no match)", l.Len())
	}
}

func TestDrainTokensEmptiesListAndMatchesPriorityOrder(t *testing.T) {
	var l List[int]
	tokA := l.Insert(1, 10)
	tokB := l.Insert(2, 20)

	toks := l.DrainTokens()
	if len(toks) != 2 {
		t.Fatalf("len(DrainTokens()) = %d; want 2", len(toks))
	}
	if toks[0] != tokB || toks[1] != tokA {
		t.Fatalf("DrainTokens() = %v; want [%d %d] (priority order)", toks, tokB, tokA)
	}
	if l.Len() != 0 {
		t.Fatalf("Len() after DrainTokens() = %d; want 0", l.Len())
	}
}

func TestFrontDoesNotRemove(t *testing.T) {
	var l List[string]
	l.Insert(1, "only")

	v, p, ok := l.Front()
	if !ok || v != "only" || p != 1 {
		t.Fatalf("Front() = %q, %d, %v; want %q, 1, true", v, p, ok, "only")
	}
	if l.Len() != 1 {
		t.Fatalf("Len() = %d; want 1 (Front must not remove)", l.Len())
	}
}
