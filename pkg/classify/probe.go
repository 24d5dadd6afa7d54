package classify

import (
	"unicode/utf8"

	"github.com/go-enry/go-enry/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/yaklabco/ctxport/pkg/fsutil"
)

// ProbeSize is the number of leading bytes inspected by the content probe.
const ProbeSize = 4096

// probeFile reads the head of path and reports whether it looks like text.
// Any read error counts as "not text".
func probeFile(path string) (bool, error) {
	sample, err := fsutil.ReadPrefix(path, ProbeSize)
	if err != nil {
		return false, err
	}
	return LooksLikeText(sample, len(sample) == ProbeSize), nil
}

// LooksLikeText reports whether sample decodes as text.
//
// A NUL byte marks the sample as binary. Otherwise valid UTF-8 is text; when
// truncated is set a multi-byte rune cut off at the end of the sample is
// tolerated. Failing UTF-8, the sample is read as Windows-1252, a superset of
// ISO-8859-1 with printable characters in 0x80-0x9F, and accepted only if it
// contains no control characters besides common whitespace, backspace and escape.
// The five bytes Windows-1252 leaves undefined decode to C1 controls and fail.
func LooksLikeText(sample []byte, truncated bool) bool {
	if len(sample) == 0 {
		return true
	}
	if enry.IsBinary(sample) {
		return false
	}

	utf8Sample := sample
	if truncated {
		utf8Sample = trimPartialRune(sample)
	}
	if utf8.Valid(utf8Sample) {
		return true
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(sample)
	if err != nil {
		return false
	}
	for _, r := range string(decoded) {
		if !plausibleSingleByte(r) {
			return false
		}
	}
	return true
}

func plausibleSingleByte(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\v', r == '\f', r == '\r', r == '\b', r == 0x1b:
		return true
	case r < 0x20:
		return false
	case r >= 0x80 && r <= 0x9f:
		return false
	default:
		return true
	}
}

// trimPartialRune drops an incomplete UTF-8 sequence at the end of b.
func trimPartialRune(b []byte) []byte {
	for i := 1; i <= utf8.UTFMax && i <= len(b); i++ {
		if !utf8.RuneStart(b[len(b)-i]) {
			continue
		}
		if utf8.FullRune(b[len(b)-i:]) {
			return b
		}
		return b[:len(b)-i]
	}
	return b
}
