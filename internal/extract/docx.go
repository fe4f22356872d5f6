package extract

import (
	"bytes"
	"errors"

	"github.com/nguyenthenguyen/docx"
)

var errNoExtractableText = errors.New("no extractable text")

// extractDOCX parses the OOXML package and strips the document XML down to
// its character data.
func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errNoExtractableText
	}
	reader := bytes.NewReader(data)
	doc, err := docx.ReadDocxFromMemory(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	return stripXML(content), nil
}
