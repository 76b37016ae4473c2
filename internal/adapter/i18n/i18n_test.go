package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/escalopa/quran-recite-api/internal/domain"
)

func writeLocale(t *testing.T, dir, lang, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, lang+".yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write locale %s: %v", lang, err)
	}
}

func newTestI18n(t *testing.T) *I18n {
	t.Helper()
	dir := t.TempDir()

	writeLocale(t, dir, "en", `
messages:
  welcome.message: "Welcome"
  ayah.select: "Surah %s has %d ayahs"
surahs:
  - "Al-Fatihah"
  - "Al-Baqarah"
`)
	writeLocale(t, dir, "ar", `
messages:
  welcome.message: "مرحبا"
surahs:
  - "الفاتحة"
  - "البقرة"
`)
	writeLocale(t, dir, "ru", `
messages:
  welcome.message: "Добро пожаловать"
`)

	i18n, err := NewI18n(dir)
	if err != nil {
		t.Fatalf("NewI18n() error = %v", err)
	}
	return i18n
}

func TestGet(t *testing.T) {
	i18n := newTestI18n(t)

	if got := i18n.Get(domain.LangArabic, "welcome.message"); got != "مرحبا" {
		t.Errorf("Get(ar, welcome.message) = %q", got)
	}

	// Formatting arguments are applied.
	got := i18n.Get(domain.LangEnglish, "ayah.select", "Al-Fatihah", 7)
	if got != "Surah Al-Fatihah has 7 ayahs" {
		t.Errorf("Get(en, ayah.select) = %q", got)
	}

	// Missing keys return the key itself.
	if got := i18n.Get(domain.LangEnglish, "no.such.key"); got != "no.such.key" {
		t.Errorf("Get(en, no.such.key) = %q", got)
	}

	// Unknown languages fall back to English.
	if got := i18n.Get(domain.Language("fr"), "welcome.message"); got != "Welcome" {
		t.Errorf("Get(fr, welcome.message) = %q", got)
	}
}

func TestGetSurahName(t *testing.T) {
	i18n := newTestI18n(t)

	if got := i18n.GetSurahName(domain.LangArabic, 1); got != "الفاتحة" {
		t.Errorf("GetSurahName(ar, 1) = %q", got)
	}

	// Russian has no surah list and falls back to English.
	if got := i18n.GetSurahName(domain.LangRussian, 2); got != "Al-Baqarah" {
		t.Errorf("GetSurahName(ru, 2) = %q", got)
	}

	// Out of range falls back to a generic name.
	if got := i18n.GetSurahName(domain.LangEnglish, 99); got != "Surah 99" {
		t.Errorf("GetSurahName(en, 99) = %q", got)
	}
}
