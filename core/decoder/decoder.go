// Package decoder turns raw pattern matches into finding values, revealing
// the plaintext behind encodings such as base64 and JWT.
package decoder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rafabd1/LiteFinder/utils"
)

// Names of the decode strategies a pattern can reference.
const (
	NameIdentity = ""
	NameBase64   = "base64"
	NameJWT      = "jwt"
)

// Arrow separates a raw match from its decoded interpretation.
const Arrow = " → "

var ErrMalformedJWT = errors.New("jwt must have exactly three segments")

// Func maps a raw match to the value stored in a finding. A non-nil error
// means the match is discarded.
type Func func(raw string) (string, error)

var registry = map[string]Func{
	NameIdentity: Identity,
	NameBase64:   Base64,
	NameJWT:      JWT,
}

// Lookup returns the strategy registered under name. Unknown names fall back
// to Identity.
func Lookup(name string) Func {
	if fn, ok := registry[name]; ok {
		return fn
	}
	return Identity
}

// Known reports whether name refers to a registered strategy.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

func Identity(raw string) (string, error) {
	return raw, nil
}

// Base64 decodes raw as standard base64 text.
func Base64(raw string) (string, error) {
	decoded, err := utils.DecodeBase64Text(raw)
	if err != nil {
		return "", err
	}
	return raw + Arrow + decoded, nil
}

// JWT decodes the header and payload segments; the signature is kept as-is.
func JWT(raw string) (string, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return "", ErrMalformedJWT
	}

	header, err := utils.DecodeBase64URLText(parts[0])
	if err != nil {
		return "", fmt.Errorf("header: %w", err)
	}
	payload, err := utils.DecodeBase64URLText(parts[1])
	if err != nil {
		return "", fmt.Errorf("payload: %w", err)
	}

	return fmt.Sprintf("%s%sheader: %s | payload: %s", raw, Arrow, header, payload), nil
}
