package dashboard

import (
	"context"
	"strings"
)

// DefaultLocale is used when a viewer carries no locale.
const DefaultLocale = "en"

// TranslationService exposes locale-aware translation helpers.
// Providers fall back to their built-in English copy when it is absent or fails.
type TranslationService interface {
	Translate(ctx context.Context, key, locale string, args map[string]any) (string, error)
}

// ResolveLocalizedValue selects the best translation for the provided locale and falls back to the supplied value.
// Keys are matched case-insensitively, and language-region pairs (`es-mx`) automatically fall back to their
// base language (`es`) when present.
func ResolveLocalizedValue(values map[string]string, locale, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	for _, candidate := range localeCandidates(locale) {
		if candidate == "" {
			continue
		}
		for key, value := range values {
			if strings.EqualFold(key, candidate) && value != "" {
				return value
			}
		}
	}
	if value, ok := values["default"]; ok && value != "" {
		return value
	}
	return fallback
}

// LabelForLocale returns the sidebar label for the requested locale.
func (def PageDefinition) LabelForLocale(locale string) string {
	return ResolveLocalizedValue(def.LabelLocalized, locale, def.Label)
}

// BreadcrumbForLocale returns the breadcrumb label, defaulting to the sidebar label.
func (def PageDefinition) BreadcrumbForLocale(locale string) string {
	fallback := def.Breadcrumb
	if fallback == "" {
		fallback = def.LabelForLocale(locale)
	}
	return ResolveLocalizedValue(def.BreadcrumbLocalized, locale, fallback)
}

func (def *PageDefinition) normalizeLocalizedFields() {
	def.LabelLocalized = normalizeLocaleMap(def.LabelLocalized)
	def.BreadcrumbLocalized = normalizeLocaleMap(def.BreadcrumbLocalized)
}

func normalizeLocaleMap(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	normalized := make(map[string]string, len(values))
	for key, value := range values {
		key = normalizeLocale(key)
		if key == "" || value == "" {
			continue
		}
		normalized[key] = value
	}
	return normalized
}

func localeCandidates(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return []string{"default"}
	}
	candidates := []string{locale}
	if idx := strings.Index(locale, "-"); idx > 0 {
		candidates = append(candidates, locale[:idx])
	}
	return append(candidates, "default")
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(strings.ToLower(locale)), "_", "-")
}

func translateOrFallback(ctx context.Context, svc TranslationService, key, locale, fallback string, params map[string]any) string {
	if svc != nil {
		if translated, err := svc.Translate(ctx, key, locale, params); err == nil && translated != "" {
			return translated
		}
	}
	if fallback != "" {
		return fallback
	}
	return key
}
