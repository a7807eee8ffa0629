package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader wraps r in a reader that yields UTF-8, whatever the input
// encoding was. Spreadsheet tools export CSV in a mix of UTF-8 (with or
// without BOM), UTF-16 and Windows-1252, so detection goes:
//
//  1. BOM (UTF-8 BOM stripped, UTF-16 LE/BE decoded)
//  2. valid UTF-8 passed through as-is
//  3. chardet heuristic
//  4. Windows-1252 fallback
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	result, detectErr := chardet.NewTextDetector().DetectBest(buf)
	if detectErr == nil {
		switch result.Charset {
		case "UTF-8":
			return br, nil
		case "ISO-8859-1", "windows-1252":
			return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
		case "ISO-8859-9":
			return transform.NewReader(br, charmap.ISO8859_9.NewDecoder()), nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}
