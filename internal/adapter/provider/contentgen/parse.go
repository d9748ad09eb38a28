package contentgen

import "strings"

const (
	menuMarker     = "Menu Items:"
	locationMarker = "Location:"
)

// Fallback values used when generation is unavailable or a response cannot
// be parsed. Pages always get something to render.
var fallbackMenuItems = []string{"McDonald's fries", "McDonald's burger", "vanilla milkshake"}

const fallbackLocationDetail = "countryside"

// ParseMenuItems extracts the comma-separated list following the
// "Menu Items:" marker. The result is always exactly three entries: short
// lists are padded positionally from the fixed fallback menu, long ones
// truncated.
func ParseMenuItems(text string) []string {
	items := []string{}

	if idx := strings.Index(text, menuMarker); idx >= 0 {
		rest := text[idx+len(menuMarker):]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[:nl]
		}
		for _, raw := range strings.Split(rest, ",") {
			item := strings.Trim(strings.TrimSpace(raw), ".")
			if item != "" {
				items = append(items, item)
			}
		}
	}

	for len(items) < 3 {
		items = append(items, fallbackMenuItems[len(items)])
	}
	return items[:3]
}

// ParseLocationDetail extracts the free-text location hint following the
// "Location:" marker, falling back to a generic setting.
func ParseLocationDetail(text string) string {
	idx := strings.Index(text, locationMarker)
	if idx < 0 {
		return fallbackLocationDetail
	}

	rest := text[idx+len(locationMarker):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}

	loc := strings.Trim(strings.TrimSpace(rest), ".")
	if loc == "" {
		return fallbackLocationDetail
	}
	return loc
}
