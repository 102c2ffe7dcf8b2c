package naming

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// FilenameForPath converts an OpenAPI path template into a safe filename
// stem: alphanumerics and single hyphens only, lowercase.
//
// Example: "/users/{id}" -> "users-id"
// Example: "/api/v1/products/{id}/reviews" -> "api-v1-products-id-reviews"
//
// An empty or all-separator path yields "root".
func FilenameForPath(path string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range path {
		switch {
		case r == '/' || r == '.' || r == '{' || r == '}':
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		default:
			b.WriteRune(r)
			lastHyphen = false
		}
	}
	stem := strings.Trim(b.String(), "-")
	stem = lower.String(stem)
	if stem == "" {
		return "root"
	}
	return stem
}

// OutputFilename builds the full output filename for one operation:
// the sanitized path stem, an underscore, the uppercased method, and the
// extension. Example: ("/users/{id}", "get", "yaml") -> "users-id_GET.yaml".
func OutputFilename(path, method, extension string) string {
	return FilenameForPath(path) + "_" + strings.ToUpper(method) + "." + extension
}
