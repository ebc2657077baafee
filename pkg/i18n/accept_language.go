package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// maxAcceptLanguageLength prevents DoS attacks through oversized Accept-Language headers.
const maxAcceptLanguageLength = 4096

// weightedTag is a parsed language range with its quality value.
type weightedTag struct {
	tag     language.Tag
	quality float64
}

// ParseAcceptLanguage parses an Accept-Language header into tags ordered by
// quality, highest first. Entries with equal quality keep header order.
// Wildcards, entries with q=0 and entries that are not valid BCP 47 tags are skipped.
//
// Example header: "fr-CH, fr;q=0.9, en;q=0.8, *;q=0.5"
// Returns: [fr-CH fr en]
func ParseAcceptLanguage(header string) []language.Tag {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var tags []weightedTag

	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		quality := 1.0
		langPart, qPart, hasQuality := strings.Cut(part, ";")
		langPart = strings.TrimSpace(langPart)

		if hasQuality {
			qPart = strings.TrimSpace(qPart)

			if strings.HasPrefix(qPart, "q=") {
				if q, err := strconv.ParseFloat(qPart[2:], 64); err == nil && q >= 0 && q <= 1 {
					quality = q
				}
			}
		}

		if langPart == "" || langPart == "*" || quality == 0 {
			continue
		}

		tag, err := language.Parse(langPart)
		if err != nil {
			continue
		}
		tags = append(tags, weightedTag{tag: tag, quality: quality})
	}

	slices.SortStableFunc(tags, func(a, b weightedTag) int {
		return cmp.Compare(b.quality, a.quality)
	})

	out := make([]language.Tag, len(tags))
	for i, t := range tags {
		out[i] = t.tag
	}
	return out
}

// MatchAcceptLanguage returns the supported locale that best serves the header.
// It reports false when the header names nothing usable.
// With no supported locales, the highest-quality valid entry is returned as is.
//
// Example header: "en-US,en;q=0.9,pl;q=0.8"
// Supported: [pl en de]
// Returns: en, true
func MatchAcceptLanguage(header string, supported []language.Tag) (language.Tag, bool) {
	tags := ParseAcceptLanguage(header)
	if len(tags) == 0 {
		return language.Und, false
	}
	if len(supported) == 0 {
		return tags[0], true
	}

	_, idx, conf := language.NewMatcher(supported).Match(tags...)
	if conf == language.No {
		return language.Und, false
	}
	return supported[idx], true
}
