package extract

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"mdtree/internal/services"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeText returns data as UTF-8 text. UTF-8 input loses its BOM; UTF-16
// input with a BOM is transcoded. Anything containing NUL bytes or invalid
// UTF-8 is rejected with services.ErrUnsupportedEncoding.
func decodeText(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		data = data[len(bomUTF8):]
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		decoded, err := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("%w: utf-16: %w", services.ErrUnsupportedEncoding, err)
		}
		data = decoded
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return "", fmt.Errorf("%w: binary content", services.ErrUnsupportedEncoding)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: invalid utf-8", services.ErrUnsupportedEncoding)
	}
	return string(data), nil
}
