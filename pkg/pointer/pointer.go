// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer removes the address-of-literal boilerplate around
// optional fields. Mapping records model their episode references as *int,
// so call sites build candidates with pointer.To(7) instead of a named
// temporary.
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}
