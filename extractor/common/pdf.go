package common

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dslipak/pdf"
)

// ExtractTextFromReader linearizes a PDF into a single block of text: rows
// joined with spaces, rows and pages joined with newlines. Table columns
// collapse into whitespace runs, which is what the issuer patterns expect.
func ExtractTextFromReader(reader io.Reader) (string, error) {
	var rAt io.ReaderAt
	var size int64

	switch v := reader.(type) {
	case io.ReaderAt:
		rAt = v
		seeker, ok := reader.(io.Seeker)
		if !ok {
			return "", errors.New("reader is io.ReaderAt but not io.Seeker, cannot determine size")
		}
		cur, _ := seeker.Seek(0, io.SeekCurrent)
		end, _ := seeker.Seek(0, io.SeekEnd)
		seeker.Seek(cur, io.SeekStart)
		size = end
	default:
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(reader); err != nil {
			return "", err
		}
		b := buf.Bytes()
		rAt = bytes.NewReader(b)
		size = int64(len(b))
	}

	r, err := pdf.NewReader(rAt, size)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	for no := 1; no <= r.NumPage(); no++ {
		page := r.Page(no)
		rows, err := page.GetTextByRow()
		if err != nil {
			log.Printf("Warning: error getting text from page %d: %v", no, err)
			continue
		}

		for _, row := range rows {
			line := make([]string, 0, len(row.Content))
			for _, text := range row.Content {
				line = append(line, text.S)
			}
			joined := strings.Join(line, " ")
			if joined != "" {
				builder.WriteString(joined)
				builder.WriteByte('\n')
			}
		}
	}

	return builder.String(), nil
}

// ExtractTextFromPDF linearizes the PDF at path.
func ExtractTextFromPDF(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return ExtractTextFromReader(file)
}
