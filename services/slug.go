package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// slugInvalidChars matches anything outside lowercase alphanumerics and hyphens
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	// slugMultiHyphen matches runs of consecutive hyphens
	slugMultiHyphen = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a title to a URL-friendly slug: accents stripped, lowered,
// spaces hyphenated, everything outside [a-z0-9-] removed.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = strings.ReplaceAll(result, " ", "-")
	result = slugInvalidChars.ReplaceAllString(result, "")
	result = slugMultiHyphen.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if result == "" {
		result = "post"
	}
	return result
}

// UniqueSlug disambiguates base against the already-taken slugs sharing its
// prefix by appending the first free numeric suffix. Slugs are immutable once
// assigned, so only creation goes through here.
func UniqueSlug(base string, taken []string) string {
	inUse := make(map[string]struct{}, len(taken))
	for _, s := range taken {
		inUse[s] = struct{}{}
	}

	if _, ok := inUse[base]; !ok {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if _, ok := inUse[candidate]; !ok {
			return candidate
		}
	}
}
