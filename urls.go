package localizer

import (
	"path"
	"strings"
)

// CanonicalURL builds the canonical URL for a document at relPath under
// the given locale:
//
//	https://{domain}/{locale}/{path}/
//
// relPath is the document's path relative to the input root with any
// platform separators; it is normalized to URL form. Root documents
// ("", ".") yield https://{domain}/{locale}/ with no path segment, and
// a relPath naming an .html file keeps the file name with no trailing
// slash.
func CanonicalURL(domain, locale, relPath string) string {
	p := cleanRelPath(relPath)

	base := "https://" + domain + "/" + locale + "/"
	if p == "" {
		return base
	}
	if strings.HasSuffix(p, ".html") {
		return base + p
	}
	return base + p + "/"
}

// cleanRelPath normalizes a relative filesystem path for use in a URL:
// separators become "/", dot segments collapse, and leading and trailing
// slashes are stripped. Root paths normalize to "".
func cleanRelPath(relPath string) string {
	p := strings.ReplaceAll(relPath, "\\", "/")
	p = path.Clean(p)
	for strings.HasPrefix(p, "../") {
		p = p[len("../"):]
	}
	p = strings.Trim(p, "/")
	if p == "." || p == ".." {
		return ""
	}
	return p
}
