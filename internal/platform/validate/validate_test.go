// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tamgioi/internal/platform/validate"
)

/*
TestParseEntryNumber verifies numeric bounds for chapters and episodes.
*/
func TestParseEntryNumber(t *testing.T) {
	number, err := validate.ParseEntryNumber("chapter", " 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, number)

	_, err = validate.ParseEntryNumber("chapter", "abc")
	assert.Error(t, err)

	_, err = validate.ParseEntryNumber("chapter", "0")
	assert.Error(t, err)

	_, err = validate.ParseEntryNumber("chapter", "-3")
	assert.Error(t, err)

	_, err = validate.ParseEntryNumber("chapter", "10001")
	assert.Error(t, err)
}

/*
TestParseChapterList covers the comma and range syntaxes.
*/
func TestParseChapterList(t *testing.T) {
	// Comma-separated, unsorted input comes back sorted
	chapters, err := validate.ParseChapterList("chapters", "123, 121, 122")
	require.NoError(t, err)
	assert.Equal(t, []int{121, 122, 123}, chapters)

	// Inclusive range
	chapters, err = validate.ParseChapterList("chapters", "121-123")
	require.NoError(t, err)
	assert.Equal(t, []int{121, 122, 123}, chapters)

	// Duplicates rejected
	_, err = validate.ParseChapterList("chapters", "5, 5")
	assert.Error(t, err)

	// Backwards range rejected
	_, err = validate.ParseChapterList("chapters", "10-5")
	assert.Error(t, err)

	// Oversized range rejected
	_, err = validate.ParseChapterList("chapters", "1-500")
	assert.Error(t, err)

	// Empty input rejected
	_, err = validate.ParseChapterList("chapters", "  ")
	assert.Error(t, err)
}

/*
TestIsAbsoluteURL checks the URL pre-check used for link submissions.
*/
func TestIsAbsoluteURL(t *testing.T) {
	assert.True(t, validate.IsAbsoluteURL("http://a.test/7"))
	assert.True(t, validate.IsAbsoluteURL("https://example.com/read?ch=1"))

	assert.False(t, validate.IsAbsoluteURL("example.com/read"))
	assert.False(t, validate.IsAbsoluteURL("ftp://example.com"))
	assert.False(t, validate.IsAbsoluteURL(""))
	assert.False(t, validate.IsAbsoluteURL("http://"))
}

/*
TestValidator_SourceLabel enforces the 2-50 character label rule.
*/
func TestValidator_SourceLabel(t *testing.T) {
	valid := &validate.Validator{}
	valid.SourceLabel("source", "Alpha")
	assert.NoError(t, valid.Err())

	tooShort := &validate.Validator{}
	tooShort.SourceLabel("source", "A")
	assert.Error(t, tooShort.Err())

	tooLong := &validate.Validator{}
	tooLong.SourceLabel("source", strings.Repeat("x", 51))
	assert.Error(t, tooLong.Err())
}
