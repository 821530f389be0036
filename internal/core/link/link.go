// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package link defines the external-source link value object shared by the
chapter and episode catalogs.

A Link has no lifecycle of its own: it is always embedded in the link list
of exactly one owning catalog record, and its identity within that list is
its URL string.
*/
package link

// Link is a labeled external URL (a reading or streaming source).
type Link struct {
	// Source is the human-readable label of the site hosting the content.
	Source string `json:"source"`
	// URL is the absolute address of the content.
	URL string `json:"url"`
}

// ContainsURL reports whether the list already holds a link with the given URL.
//
// URL comparison is an exact string match; duplicate detection never
// normalizes or canonicalizes addresses.
func ContainsURL(links []Link, url string) bool {
	for _, l := range links {
		if l.URL == url {
			return true
		}
	}
	return false
}
