package lsp

import "net/url"

// canonicalURI normalizes a document URI so that the store keys stay
// stable across clients that escape paths differently.
func canonicalURI(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	return parsed.String()
}
