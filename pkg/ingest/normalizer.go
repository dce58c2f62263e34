// Package ingest reshapes raw fort records into the text that gets embedded
// and the flat metadata stored next to each vector.
package ingest

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"fort-chatbot-be/internal/constant"
	"fort-chatbot-be/internal/entity"
)

const featureSeparator = " | "

// CombineText joins the record's searchable features into the document that gets embedded.
// Features that are empty or carry a "nan" token are skipped.
func CombineText(fort entity.Fort) string {
	features := []string{
		fort.Name,
		fort.Title,
		fort.Summary,
		strings.Join(infoboxValues(fort.InfoboxData), " "),
		strings.Join(fort.Images, " "),
	}

	kept := make([]string, 0, len(features))
	for _, f := range features {
		if f == "" || hasNaNToken(f) {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, featureSeparator)
}

func hasNaNToken(s string) bool {
	for _, tok := range strings.Fields(s) {
		if strings.EqualFold(strings.Trim(tok, ".,;:"), "nan") {
			return true
		}
	}
	return false
}

// infoboxValues renders the attribute values in key order so the combined text is stable.
func infoboxValues(infobox map[string]interface{}) []string {
	keys := make([]string, 0, len(infobox))
	for k := range infobox {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, scalarText(infobox[k]))
	}
	return values
}

// CleanMetadata flattens every field but infobox_data into printable, non-empty text.
func CleanMetadata(fort entity.Fort) map[string]string {
	images := make([]string, 0, len(fort.Images))
	for _, img := range fort.Images {
		if v := cleanValue(img); v != constant.MetadataNotSpecified {
			images = append(images, v)
		}
	}

	metadata := map[string]string{
		"name":    cleanValue(fort.Name),
		"title":   cleanValue(fort.Title),
		"summary": cleanValue(fort.Summary),
		"images":  constant.MetadataNotSpecified,
	}
	if len(images) > 0 {
		metadata["images"] = strings.Join(images, ", ")
	}
	return metadata
}

// cleanValue drops non-printable runes, trims, and replaces missing values with the sentinel.
func cleanValue(v interface{}) string {
	s := strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, scalarText(v)))

	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "null") {
		return constant.MetadataNotSpecified
	}
	return s
}

func scalarText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := scalarText(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}
