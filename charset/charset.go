// Package charset resolves terminal character encodings and transcodes
// terminal streams with golang.org/x/text.
package charset

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknown is returned for names and codepages with no encoding
var ErrUnknown = errors.New("charset: unknown encoding")

// codepages maps Windows codepage numbers to encodings
var codepages = map[int]encoding.Encoding{
	437:   charmap.CodePage437,
	850:   charmap.CodePage850,
	852:   charmap.CodePage852,
	855:   charmap.CodePage855,
	858:   charmap.CodePage858,
	860:   charmap.CodePage860,
	862:   charmap.CodePage862,
	863:   charmap.CodePage863,
	865:   charmap.CodePage865,
	866:   charmap.CodePage866,
	874:   charmap.Windows874,
	1250:  charmap.Windows1250,
	1251:  charmap.Windows1251,
	1252:  charmap.Windows1252,
	1253:  charmap.Windows1253,
	1254:  charmap.Windows1254,
	1255:  charmap.Windows1255,
	1256:  charmap.Windows1256,
	1257:  charmap.Windows1257,
	1258:  charmap.Windows1258,
	10000: charmap.Macintosh,
	20866: charmap.KOI8R,
	21866: charmap.KOI8U,
	28591: charmap.ISO8859_1,
	28592: charmap.ISO8859_2,
	28595: charmap.ISO8859_5,
	28597: charmap.ISO8859_7,
	28605: charmap.ISO8859_15,
	65001: unicode.UTF8,
}

// Lookup resolves an IANA or WHATWG encoding label
func Lookup(name string) (encoding.Encoding, error) {
	label := strings.ToLower(strings.TrimSpace(name))
	switch label {
	case "":
		return nil, fmt.Errorf("%w: empty name", ErrUnknown)
	case "utf8", "utf-8":
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return enc, nil
}

// FromCodepage resolves a legacy Windows codepage number
func FromCodepage(cp int) (encoding.Encoding, error) {
	if enc, ok := codepages[cp]; ok {
		return enc, nil
	}
	return nil, fmt.Errorf("%w: codepage %d", ErrUnknown, cp)
}

// Default derives the encoding from the locale variables, in POSIX
// precedence order. Locales without a codeset, and unknown codesets, yield UTF-8.
func Default(getenv func(string) string) encoding.Encoding {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		locale := getenv(key)
		if locale == "" {
			continue
		}
		// language_territory.codeset@modifier
		_, codeset, ok := strings.Cut(locale, ".")
		if !ok {
			return unicode.UTF8
		}
		codeset, _, _ = strings.Cut(codeset, "@")
		if enc, err := Lookup(codeset); err == nil {
			return enc
		}
		return unicode.UTF8
	}
	return unicode.UTF8
}

// Resolve picks the encoding for a terminal: an explicit name wins, then a
// codepage, then the locale
func Resolve(name string, codepage int, getenv func(string) string) (encoding.Encoding, error) {
	if name != "" {
		return Lookup(name)
	}
	if codepage > 0 {
		return FromCodepage(codepage)
	}
	return Default(getenv), nil
}

// Name returns the canonical label of enc
func Name(enc encoding.Encoding) string {
	if IsUTF8(enc) {
		return "utf-8"
	}
	if name, err := htmlindex.Name(enc); err == nil {
		return name
	}
	if s, ok := enc.(fmt.Stringer); ok {
		return s.String()
	}
	return "unknown"
}

// IsUTF8 reports whether enc needs no transcoding; nil means UTF-8
func IsUTF8(enc encoding.Encoding) bool {
	return enc == nil || enc == unicode.UTF8
}

// NewEncodingWriter converts UTF-8 written to it into enc. Runes enc cannot
// represent are replaced.
func NewEncodingWriter(w io.Writer, enc encoding.Encoding) io.Writer {
	if IsUTF8(enc) {
		return w
	}
	return transform.NewWriter(w, encoding.ReplaceUnsupported(enc.NewEncoder()))
}

// NewDecodingWriter converts enc bytes written to it into UTF-8. Incomplete
// trailing sequences are held until the next write.
func NewDecodingWriter(w io.Writer, enc encoding.Encoding) io.Writer {
	if IsUTF8(enc) {
		return w
	}
	return transform.NewWriter(w, enc.NewDecoder())
}

// NewDecodingReader converts enc bytes read from r into UTF-8
func NewDecodingReader(r io.Reader, enc encoding.Encoding) io.Reader {
	if IsUTF8(enc) {
		return r
	}
	return transform.NewReader(r, enc.NewDecoder())
}
