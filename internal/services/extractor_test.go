package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTextPlain(t *testing.T) {
	extractor := NewTextExtractor()

	text := extractor.ExtractText([]byte("Jane Doe\n5 years Python\n"), "Resume_Jane_Doe.txt")
	assert.Equal(t, "Jane Doe\n5 years Python", text)

	text = extractor.ExtractText([]byte("also fine"), "notes.text")
	assert.Equal(t, "also fine", text)
}

func TestExtractTextLatin1Fallback(t *testing.T) {
	extractor := NewTextExtractor()

	// 0xE9 is é in Latin-1 and invalid as a standalone UTF-8 byte.
	data := []byte{'R', 'e', 'n', 0xE9}
	text := extractor.ExtractText(data, "resume.txt")
	assert.Equal(t, "René", text)
}

func TestExtractTextTotality(t *testing.T) {
	extractor := NewTextExtractor()

	cases := map[string]struct {
		data     []byte
		filename string
	}{
		"empty input":        {nil, "resume.txt"},
		"unknown extension":  {[]byte("binary"), "resume.docx"},
		"no extension":       {[]byte("text"), "resume"},
		"corrupt pdf":        {[]byte("%PDF-1.4 garbage"), "resume.pdf"},
		"not a pdf at all":   {[]byte("hello"), "resume.pdf"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			// Must never panic, must come back empty.
			assert.Equal(t, "", extractor.ExtractText(tc.data, tc.filename))
		})
	}
}

func TestCleanText(t *testing.T) {
	in := "  Jane Doe  \n\n\n   Data Engineer\n\t\n5 years  "
	assert.Equal(t, "Jane Doe\nData Engineer\n5 years", CleanText(in))

	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText(" \n \n "))
}
