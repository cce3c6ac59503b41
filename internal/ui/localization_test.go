package ui

import "testing"

func TestLocalization_SetLanguage(t *testing.T) {
	tests := []struct {
		name string
		lang string
		want string
	}{
		{"english", LangEnglish, LangEnglish},
		{"russian", LangRussian, LangRussian},
		{"system maps to english", LangSystem, LangEnglish},
		{"unknown keeps current", "xx", LangEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLocalization()
			l.SetLanguage(tt.lang)
			if got := l.GetCurrentLanguage(); got != tt.want {
				t.Errorf("GetCurrentLanguage() = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestLocalization_GetText(t *testing.T) {
	l := NewLocalization()
	if got := l.GetText(KeyDownload); got != "Download" {
		t.Errorf("GetText(KeyDownload) = %q", got)
	}

	l.SetLanguage(LangRussian)
	if got := l.GetText(KeyDownload); got != "Скачать" {
		t.Errorf("GetText(KeyDownload) in ru = %q", got)
	}

	if got := l.GetText("missing_key"); got != "missing_key" {
		t.Errorf("missing key should fall back to itself, got %q", got)
	}
}

func TestLocalization_Complete(t *testing.T) {
	l := NewLocalization()
	for key := range l.texts[LangEnglish] {
		if _, ok := l.texts[LangRussian][key]; !ok {
			t.Errorf("russian translation missing for %q", key)
		}
	}
}
