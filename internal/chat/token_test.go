package chat

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	actions := []Action{
		ActionVacancyDetails,
		ActionApply,
		ActionEdit,
		ActionDelete,
		ActionCandidates,
	}

	for _, action := range actions {
		data := Token(action, 42)
		got, id, ok := ParseToken(data)
		if !ok {
			t.Fatalf("ParseToken(%q) not ok", data)
		}
		if got != action || id != 42 {
			t.Errorf("ParseToken(%q) = (%q, %d)", data, got, id)
		}
	}
}

func TestParseTokenNavigation(t *testing.T) {
	for _, action := range []Action{ActionBackToMenu, ActionBackToCatalog} {
		got, id, ok := ParseToken(string(action))
		if !ok || got != action || id != 0 {
			t.Errorf("ParseToken(%q) = (%q, %d, %v)", action, got, id, ok)
		}
	}
}

func TestParseTokenStripsTelebotPrefix(t *testing.T) {
	got, id, ok := ParseToken("\f" + Token(ActionApply, 7))
	if !ok || got != ActionApply || id != 7 {
		t.Errorf("ParseToken = (%q, %d, %v)", got, id, ok)
	}
}

func TestParseTokenRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"garbage",
		"select-vacancy-to-apply",
		"select-vacancy-to-apply_",
		"select-vacancy-to-apply_abc",
		"unknown-action_5",
		"_5",
	}

	for _, data := range cases {
		if _, _, ok := ParseToken(data); ok {
			t.Errorf("ParseToken(%q) accepted", data)
		}
	}
}
