package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

const (
	LangPT = "pt"
	LangEN = "en"

	mealSlotKeyPrefix = "meal_slot."
)

//go:embed locales/*.json
var embeddedLocales embed.FS

type Manager struct {
	defaultLanguage string
	locales         map[string]map[string]string
	supported       []string
	matchOrder      []string
	matcher         language.Matcher
}

// NewManager loads the catalogs compiled into the binary.
func NewManager(defaultLanguage string) (*Manager, error) {
	locales, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, fmt.Errorf("open embedded locales: %w", err)
	}
	return NewManagerFromFS(defaultLanguage, locales)
}

func NewManagerFromFS(defaultLanguage string, locales fs.FS) (*Manager, error) {
	manager := &Manager{
		locales: map[string]map[string]string{},
	}

	entries, err := fs.ReadDir(locales, ".")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}

		lang := strings.TrimSuffix(strings.ToLower(entry.Name()), ".json")
		content, err := fs.ReadFile(locales, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", lang, err)
		}

		messages := map[string]string{}
		if err := json.Unmarshal(content, &messages); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", lang, err)
		}
		if len(messages) == 0 {
			return nil, fmt.Errorf("locale %s is empty", lang)
		}

		manager.locales[lang] = messages
		manager.supported = append(manager.supported, lang)
	}

	for _, required := range []string{LangPT, LangEN} {
		if _, ok := manager.locales[required]; !ok {
			return nil, fmt.Errorf("required locale %q missing", required)
		}
	}

	sort.Strings(manager.supported)
	manager.defaultLanguage = LangPT
	manager.defaultLanguage = manager.NormalizeLanguage(defaultLanguage)

	// The matcher falls back to its first tag, so the default goes first.
	manager.matchOrder = []string{manager.defaultLanguage}
	for _, lang := range manager.supported {
		if lang != manager.defaultLanguage {
			manager.matchOrder = append(manager.matchOrder, lang)
		}
	}
	tags := make([]language.Tag, 0, len(manager.matchOrder))
	for _, lang := range manager.matchOrder {
		tags = append(tags, language.Make(lang))
	}
	manager.matcher = language.NewMatcher(tags)
	return manager, nil
}

func (manager *Manager) DefaultLanguage() string {
	return manager.defaultLanguage
}

func (manager *Manager) SupportedLanguages() []string {
	result := make([]string, len(manager.supported))
	copy(result, manager.supported)
	return result
}

// NormalizeLanguage maps a tag such as "en-US" or "pt_BR" onto a loaded
// catalog, or the default language.
func (manager *Manager) NormalizeLanguage(raw string) string {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(raw), "_", "-"))
	if err != nil {
		return manager.defaultLanguage
	}
	base, _ := tag.Base()
	if manager.isSupported(base.String()) {
		return base.String()
	}
	return manager.defaultLanguage
}

func (manager *Manager) DetectFromAcceptLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return manager.defaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return manager.defaultLanguage
	}

	_, index, confidence := manager.matcher.Match(tags...)
	if confidence == language.No || index < 0 || index >= len(manager.matchOrder) {
		return manager.defaultLanguage
	}
	return manager.matchOrder[index]
}

func (manager *Manager) Translate(lang string, key string) string {
	normalized := manager.NormalizeLanguage(lang)
	if value, ok := manager.locales[normalized][key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	if value, ok := manager.locales[manager.defaultLanguage][key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return key
}

func (manager *Manager) Translatef(lang string, key string, args ...any) string {
	return fmt.Sprintf(manager.Translate(lang, key), args...)
}

// MealSlotLabel returns the display label of a configured slot. Slots with no
// catalog entry are shown as configured.
func (manager *Manager) MealSlotLabel(lang string, slot string) string {
	key := mealSlotKeyPrefix + slot
	label := manager.Translate(lang, key)
	if label == key {
		return slot
	}
	return label
}

func (manager *Manager) isSupported(lang string) bool {
	if lang == "" {
		return false
	}
	_, ok := manager.locales[lang]
	return ok
}
