package common

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestExtractTextFromReader_InvalidPDF(t *testing.T) {
	reader := bytes.NewReader([]byte("not a valid pdf"))

	_, err := ExtractTextFromReader(reader)
	if err == nil {
		t.Error("Expected error for invalid PDF data")
	}
}

func TestExtractTextFromReader_PlainReader(t *testing.T) {
	// A reader without io.ReaderAt goes through the buffering path
	reader := io.LimitReader(strings.NewReader("still not a pdf"), 64)

	_, err := ExtractTextFromReader(reader)
	if err == nil {
		t.Error("Expected error for invalid PDF data")
	}
}
