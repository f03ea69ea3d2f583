package idl

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

//The charset decoding of date lists is all done in this file so you could use a different decoder

//Decoder interface as passed to OpenFile and OpenStream
type Decoder interface {
	Decode(in []byte) ([]byte, error)
}

//This decoder translates a Windows-1250 date list to UTF8
type Win1250Decoder struct{}

func (d *Win1250Decoder) Decode(in []byte) ([]byte, error) {
	return decodeCharmap(in, charmap.Windows1250)
}

//This decoder translates a Windows-1252 date list to UTF8
type Win1252Decoder struct{}

func (d *Win1252Decoder) Decode(in []byte) ([]byte, error) {
	return decodeCharmap(in, charmap.Windows1252)
}

//This decoder assumes your date list is in UTF8 so it does nothing
type UTF8Decoder struct{}

func (d *UTF8Decoder) Decode(in []byte) ([]byte, error) {
	return in, nil
}

//DecoderFor returns the decoder for a charset name, nil if there is none
func DecoderFor(charset string) Decoder {
	switch strings.ToLower(strings.ReplaceAll(charset, "-", "")) {
	case "", "utf8":
		return new(UTF8Decoder)
	case "win1250", "windows1250", "cp1250":
		return new(Win1250Decoder)
	case "win1252", "windows1252", "cp1252":
		return new(Win1252Decoder)
	}
	return nil
}

func decodeCharmap(in []byte, cm *charmap.Charmap) ([]byte, error) {
	if utf8.Valid(in) {
		return in, nil
	}
	r := transform.NewReader(bytes.NewReader(in), cm.NewDecoder())
	return io.ReadAll(r)
}

//dashes that spreadsheets and word processors put in dates
var dashReplacer = strings.NewReplacer("‐", "-", "‑", "-", "‒", "-", "–", "-", "−", "-")

//normalizeText folds compatibility characters, like full width digits and
//colons, to ASCII and replaces typographic dashes with a hyphen
func normalizeText(in []byte) string {
	return dashReplacer.Replace(string(norm.NFKC.Bytes(in)))
}
