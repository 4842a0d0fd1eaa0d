package utils

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"
)

var ErrNotUTF8 = errors.New("decoded bytes are not valid UTF-8 text")

// padBase64 appends the '=' padding a truncated base64 string is missing.
func padBase64(str string) string {
	if rem := len(str) % 4; rem != 0 {
		return str + strings.Repeat("=", 4-rem)
	}
	return str
}

// DecodeBase64Text decodes standard base64, tolerating missing padding, and
// requires the result to be UTF-8 text.
func DecodeBase64Text(str string) (string, error) {
	return decodeText(base64.StdEncoding, str)
}

// DecodeBase64URLText is DecodeBase64Text for the URL-safe alphabet.
func DecodeBase64URLText(str string) (string, error) {
	return decodeText(base64.URLEncoding, str)
}

func decodeText(enc *base64.Encoding, str string) (string, error) {
	data, err := enc.DecodeString(padBase64(str))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrNotUTF8
	}
	return string(data), nil
}
