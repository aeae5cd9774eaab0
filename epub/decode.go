package epub

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

var (
	xmlEncodingPattern = regexp.MustCompile(`(?i)<\?xml[^>]*\bencoding=["']([A-Za-z0-9._\-]+)["']`)
	metaCharsetPattern = regexp.MustCompile(`(?i)<meta[^>]*\bcharset=["']?([A-Za-z0-9._\-]+)`)
)

// decodeText converts a resource body to UTF-8. The charset comes from a
// UTF-16 byte order mark, the XML declaration, or a meta charset attribute,
// in that order. A body that is neither declared nor valid UTF-8 is
// undecodable and the resource gets skipped by the caller.
func decodeText(body []byte) ([]byte, error) {
	if len(body) >= 2 && (body[0] == 0xFE && body[1] == 0xFF || body[0] == 0xFF && body[1] == 0xFE) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(body)
		if err != nil {
			return nil, fmt.Errorf("utf-16 decode: %w", err)
		}
		return out, nil
	}

	body = bytes.TrimPrefix(body, []byte{0xEF, 0xBB, 0xBF})

	if name := declaredCharset(body); name != "" && !isUTF8Name(name) {
		enc, err := htmlindex.Get(name)
		if err != nil {
			return nil, fmt.Errorf("unsupported charset %q", name)
		}
		out, err := enc.NewDecoder().Bytes(body)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return out, nil
	}

	if !utf8.Valid(body) {
		return nil, fmt.Errorf("body is not valid UTF-8 and declares no charset")
	}
	return body, nil
}

// declaredCharset sniffs the charset declared in the document prolog.
// Only the first KB is inspected; declarations live at the top.
func declaredCharset(body []byte) string {
	head := body
	if len(head) > 1024 {
		head = head[:1024]
	}
	if m := xmlEncodingPattern.FindSubmatch(head); m != nil {
		return string(m[1])
	}
	if m := metaCharsetPattern.FindSubmatch(head); m != nil {
		return string(m[1])
	}
	return ""
}

func isUTF8Name(name string) bool {
	switch strings.ToLower(name) {
	case "utf-8", "utf8", "us-ascii", "ascii":
		return true
	}
	return false
}
