package ingest

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeFile reads a file and returns its contents as UTF-8, detecting the
// source encoding. The chain is UTF-8 with BOM, plain UTF-8, then
// GBK/GB2312; files matching none of these are rejected.
func DecodeFile(path string) ([]byte, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return decodeBytes(raw, path)
}

func decodeBytes(raw []byte, path string) ([]byte, string, error) {
	if bytes.HasPrefix(raw, utf8BOM) {
		stripped := raw[len(utf8BOM):]
		if utf8.Valid(stripped) {
			return stripped, "utf-8-sig", nil
		}
	}
	if utf8.Valid(raw) {
		return raw, "utf-8", nil
	}
	decoded, _, err := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), raw)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: not valid UTF-8 and GBK decoding failed: %w", path, err)
	}
	return decoded, "gbk", nil
}
