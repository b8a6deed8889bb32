package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_enum", nil); msg == "invalid_enum" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("too_small", nil); msg == "too small" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, _ map[string]string) string { return "E:" + code }

func TestTranslator_Custom(t *testing.T) {
	SetTranslator(upperTranslator{})
	defer SetTranslator(nil)
	if msg := T("required", nil); msg != "E:required" {
		t.Fatalf("custom translator not used, got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("unlisted_code", nil); msg != "unlisted_code" {
		t.Fatalf("unknown codes fall back to the code, got %q", msg)
	}
}
