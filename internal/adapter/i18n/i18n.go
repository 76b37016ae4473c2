// Package i18n loads YAML locale bundles with bot messages and surah names.
package i18n

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/escalopa/quran-recite-api/internal/domain"
)

// I18n serves translated messages with English as the fallback language.
type I18n struct {
	messages map[domain.Language]map[string]string
	surahs   map[domain.Language][]string
}

type localeFile struct {
	Messages map[string]string `yaml:"messages"`
	Surahs   []string          `yaml:"surahs"`
}

func NewI18n(localesDir string) (*I18n, error) {
	i18n := &I18n{
		messages: make(map[domain.Language]map[string]string),
		surahs:   make(map[domain.Language][]string),
	}

	for _, lang := range []domain.Language{domain.LangEnglish, domain.LangArabic, domain.LangRussian} {
		if err := i18n.loadLocale(lang, filepath.Join(localesDir, string(lang)+".yaml")); err != nil {
			return nil, fmt.Errorf("load %s locale: %w", lang, err)
		}
	}

	return i18n, nil
}

func (i *I18n) loadLocale(lang domain.Language, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	var lf localeFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return fmt.Errorf("unmarshal yaml: %w", err)
	}

	i.messages[lang] = lf.Messages
	i.surahs[lang] = lf.Surahs

	return nil
}

// Get retrieves a translated message. Missing keys come back verbatim so a
// gap in a locale file is visible instead of silent.
func (i *I18n) Get(lang domain.Language, key string, args ...interface{}) string {
	messages, ok := i.messages[lang]
	if !ok {
		messages = i.messages[domain.LangEnglish]
	}

	msg, ok := messages[key]
	if !ok {
		return key
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	return msg
}

// GetSurahName retrieves the localized name of a Surah. Locales without a
// surah list fall back to the English transliterations.
func (i *I18n) GetSurahName(lang domain.Language, surahNumber int) string {
	surahs := i.surahs[lang]
	if surahNumber < 1 || surahNumber > len(surahs) {
		surahs = i.surahs[domain.LangEnglish]
	}

	if surahNumber < 1 || surahNumber > len(surahs) {
		return fmt.Sprintf("Surah %d", surahNumber)
	}

	return surahs[surahNumber-1]
}
