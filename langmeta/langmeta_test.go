package langmeta

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"ru", "Russian"},
		{"de", "German"},
		{"pt-BR", "Brazilian Portuguese"},
		{"pt_BR", "Brazilian Portuguese"},
		{"pt_br", "Brazilian Portuguese"},
		{"zh-CN", "Simplified Chinese"},
		{"RU", "Russian"},
		{"de-AT", "German"},
		{"en-GB", "English"},
		{"xx", "xx"},
	}
	for _, tt := range tests {
		if got := Resolve(tt.lang).Name; got != tt.want {
			t.Errorf("Resolve(%q).Name = %q, want %q", tt.lang, got, tt.want)
		}
	}
}

func TestResolveNative(t *testing.T) {
	if got := Resolve("ja").Native; got != "日本語" {
		t.Errorf("got %q", got)
	}
	if got := Resolve("unknown").Native; got != "unknown" {
		t.Errorf("unknown codes should echo the code, got %q", got)
	}
}

func TestKnown(t *testing.T) {
	for _, lang := range []string{"ru", "pt-BR", "pt_br", "de-AT", "ZH"} {
		if !Known(lang) {
			t.Errorf("Known(%q) = false", lang)
		}
	}
	for _, lang := range []string{"xx", "klingon", ""} {
		if Known(lang) {
			t.Errorf("Known(%q) = true", lang)
		}
	}
}
