package condition

import "testing"

func TestSetIsOrCombined(t *testing.T) {
	set := Set{
		AtLeast(2, Words("ВКЛЮЧ", "ФОНАР")...),
		Keyword("LIGHT"),
	}
	if !set.Matches([]string{"LIGHTS"}) {
		t.Fatalf("expected second condition to satisfy set")
	}
	if !set.Matches(Tokenize("включи фонарик")) {
		t.Fatalf("expected first condition to satisfy set")
	}
	if set.Matches(Tokenize("выключи свет")) {
		t.Fatalf("did not expect unrelated input to match")
	}
}

func TestEmptySetNeverMatches(t *testing.T) {
	var set Set
	if set.Matches([]string{"ANY"}) {
		t.Fatalf("expected empty set to never match")
	}
}

func TestFirstMatchPrefersRegistrationOrder(t *testing.T) {
	candidates := []Set{
		{Keyword("NOPE")},
		{Keyword("СЦЕНАР")},
		{Keyword("СЦЕН")},
	}
	if got := FirstMatch(candidates, Tokenize("сценарий")); got != 1 {
		t.Fatalf("expected first hit at index 1, got %d", got)
	}
	if got := FirstMatch(candidates, Tokenize("ничего")); got != -1 {
		t.Fatalf("expected -1 for no match, got %d", got)
	}
}
