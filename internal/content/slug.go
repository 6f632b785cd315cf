package content

import (
	"regexp"
	"strings"
)

var (
	slugStripRE    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaceRE    = regexp.MustCompile(`\s+`)
	slugCollapseRE = regexp.MustCompile(`-+`)
)

// Slugify derives a URL slug: lowercase, trim, strip everything outside
// [a-z0-9 -], whitespace runs to single hyphens, collapse repeated hyphens,
// trim edge hyphens. Returns "" when nothing survives.
func Slugify(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	s = slugStripRE.ReplaceAllString(s, "")
	s = slugSpaceRE.ReplaceAllString(s, "-")
	s = slugCollapseRE.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
