// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package i18n

import "testing"

func TestInitAndAvailableLocales(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}

	av := GetAvailableLocales()
	for _, k := range []string{"en", "tr"} {
		if _, ok := av[k]; !ok {
			t.Fatalf("expected available locale %q to be present", k)
		}
	}
	if av["en"] != "English" {
		t.Fatalf("unexpected display name for en: %q", av["en"])
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")

	if got := T("menu.exit"); got != "Exit" {
		t.Fatalf("expected 'Exit', got %q", got)
	}
	if got := T("release.tag_created", "v1.2.3"); got != "Created tag v1.2.3" {
		t.Fatalf("unexpected formatted translation: %q", got)
	}
}

func TestT_FallsBackToID(t *testing.T) {
	Init("en")
	if got := T("does.not.exist"); got != "does.not.exist" {
		t.Fatalf("expected message id fallback, got %q", got)
	}
}

func TestSetLang_Turkish(t *testing.T) {
	SetLang("tr")
	defer SetLang("en")
	if GetLang() != "tr" {
		t.Fatalf("expected tr, got %q", GetLang())
	}
	if got := T("menu.exit"); got != "Çıkış" {
		t.Fatalf("expected Turkish exit label, got %q", got)
	}
}
