package resource

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/go-text/typesetting/font"
	"github.com/h2non/filetype"
)

// FontFormat is the on-disk font container format, auto-detected from the
// first four bytes of the supplied data.
type FontFormat int

const (
	FormatUnknown FontFormat = iota
	FormatTTF
	FormatOTF
	FormatWOFF
	FormatWOFF2
)

// GuessFontFormat sniffs the container format via filetype's magic-byte
// matchers, the same sniffing library the converter uses for its own
// loaded-resource validation.
func GuessFontFormat(data []byte) FontFormat {
	kind, err := filetype.Match(data)
	if err != nil {
		return FormatUnknown
	}
	switch kind.Extension {
	case "woff2":
		return FormatWOFF2
	case "woff":
		return FormatWOFF
	case "ttf":
		return FormatTTF
	case "otf":
		return FormatOTF
	default:
		return FormatUnknown
	}
}

// FontOverride lets a caller supply family name/style/weight metadata that
// the container itself doesn't carry reliably.
type FontOverride struct {
	FamilyName string
	Style      string
	Weight     int
}

// FontFace is a registered, parsed font ready for shaping.
type FontFace struct {
	Face     *font.Face
	Override FontOverride
}

// FontRegistry holds every font registered for the lifetime of a
// GlobalContext. Registration is atomic: concurrent RegisterFont calls are
// serialized on an internal lock, matching the "accepts raw bytes with an
// optional format hint, auto-detects otherwise" contract.
type FontRegistry struct {
	mu    sync.Mutex
	faces []FontFace
}

func NewFontRegistry() *FontRegistry {
	return &FontRegistry{}
}

// RegisterFont decompresses WOFF/WOFF2 containers to raw SFNT bytes, then
// parses the result. format may be FormatUnknown to request auto-detection.
func (r *FontRegistry) RegisterFont(data []byte, format FontFormat, override FontOverride) error {
	if format == FormatUnknown {
		format = GuessFontFormat(data)
	}

	var sfnt []byte
	var err error
	switch format {
	case FormatTTF, FormatOTF:
		sfnt = data
	case FormatWOFF:
		sfnt, err = decompressWOFF(data)
	case FormatWOFF2:
		sfnt, err = decompressWOFF2(data)
	default:
		return fmt.Errorf("unsupported font format")
	}
	if err != nil {
		return fmt.Errorf("failed to decompress font: %w", err)
	}

	faces, err := font.ParseTTC(bytes.NewReader(sfnt))
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	if len(faces) == 0 {
		return fmt.Errorf("font container has no faces")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range faces {
		r.faces = append(r.faces, FontFace{Face: f, Override: override})
	}
	return nil
}

// MatchFamily returns the first registered face whose override family name
// matches (the face's own family name is not consulted), falling back to
// the first registered face of any family when nothing matches — the
// "falls back to the next registered font or a default" rule.
func (r *FontRegistry) MatchFamily(family string) (*font.Face, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.faces {
		if f.Override.FamilyName == family {
			return f.Face, true
		}
	}
	if len(r.faces) > 0 {
		return r.faces[0].Face, true
	}
	return nil, false
}

// woffHeaderSize is the fixed size of the WOFF1 header that precedes the
// table directory.
const woffHeaderSize = 44

// decompressWOFF reconstructs an SFNT blob from a WOFF1 container: the
// header gives each table's compressed/decompressed length and offset; each
// table's payload is zlib-deflate compressed (or stored raw when the
// compressed size equals the decompressed size).
func decompressWOFF(data []byte) ([]byte, error) {
	if len(data) < woffHeaderSize {
		return nil, fmt.Errorf("WOFF data too short")
	}
	numTables := binary.BigEndian.Uint16(data[12:14])
	flavor := data[4:8]

	type tableDirEntry struct {
		tag                                    [4]byte
		offset, compLen, origLen, origChecksum uint32
	}

	entries := make([]tableDirEntry, 0, numTables)
	pos := woffHeaderSize
	for i := 0; i < int(numTables); i++ {
		if pos+20 > len(data) {
			return nil, fmt.Errorf("WOFF table directory truncated")
		}
		var e tableDirEntry
		copy(e.tag[:], data[pos:pos+4])
		e.offset = binary.BigEndian.Uint32(data[pos+4 : pos+8])
		e.compLen = binary.BigEndian.Uint32(data[pos+8 : pos+12])
		e.origLen = binary.BigEndian.Uint32(data[pos+12 : pos+16])
		e.origChecksum = binary.BigEndian.Uint32(data[pos+16 : pos+20])
		entries = append(entries, e)
		pos += 20
	}

	tables := make(map[[4]byte][]byte, len(entries))
	for _, e := range entries {
		if int(e.offset+e.compLen) > len(data) {
			return nil, fmt.Errorf("WOFF table %s out of bounds", e.tag)
		}
		raw := data[e.offset : e.offset+e.compLen]
		if e.compLen == e.origLen {
			tables[e.tag] = raw
			continue
		}
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("WOFF table %s: %w", e.tag, err)
		}
		out, err := io.ReadAll(zr)
		zr.Close()
		if err != nil {
			return nil, fmt.Errorf("WOFF table %s: %w", e.tag, err)
		}
		tables[e.tag] = out
	}

	tags := make([][4]byte, len(entries))
	for i, e := range entries {
		tags[i] = e.tag
	}
	return assembleSFNT(flavor, tags, tables)
}

// decompressWOFF2 inflates a WOFF2 container's brotli-compressed table
// data and reassembles an SFNT blob assuming the untransformed-table case
// (no glyf/loca reconstruction) — WOFF2's transform for those two tables
// is not implemented, so only fonts whose tables are stored untransformed
// decode correctly.
func decompressWOFF2(data []byte) ([]byte, error) {
	const woff2HeaderSize = 48
	if len(data) < woff2HeaderSize {
		return nil, fmt.Errorf("WOFF2 data too short")
	}
	numTables := binary.BigEndian.Uint16(data[12:14])
	flavor := data[4:8]

	type woff2Entry struct {
		tag              [4]byte
		origLen, transLen uint32
	}

	pos := woff2HeaderSize
	entries := make([]woff2Entry, 0, numTables)
	for i := 0; i < int(numTables); i++ {
		if pos+4 > len(data) {
			return nil, fmt.Errorf("WOFF2 table directory truncated")
		}
		var e woff2Entry
		flags := data[pos]
		pos++
		tag, n, err := woff2TableTag(flags, data[pos:])
		if err != nil {
			return nil, err
		}
		pos += n
		e.tag = tag
		origLen, n, err := readUvarint(data[pos:])
		if err != nil {
			return nil, err
		}
		pos += n
		e.origLen = origLen
		e.transLen = origLen
		entries = append(entries, e)
	}

	if pos > len(data) {
		return nil, fmt.Errorf("WOFF2 table directory overruns data")
	}
	compressed := data[pos:]

	br := brotli.NewReader(bytes.NewReader(compressed))
	decompressed, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("WOFF2 brotli decompress: %w", err)
	}

	tables := make(map[[4]byte][]byte, len(entries))
	off := 0
	for _, e := range entries {
		if off+int(e.origLen) > len(decompressed) {
			return nil, fmt.Errorf("WOFF2 decompressed stream shorter than table directory implies")
		}
		tables[e.tag] = decompressed[off : off+int(e.origLen)]
		off += int(e.origLen)
	}

	tags := make([][4]byte, len(entries))
	for i, e := range entries {
		tags[i] = e.tag
	}
	return assembleSFNT(flavor, tags, tables)
}

// known WOFF2 table tags for the 1-byte shorthand encoding (flags & 0x3f).
var woff2KnownTags = []string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post", "cvt ",
	"fpgm", "glyf", "loca", "prep", "CFF ", "VORG", "EBDT", "EBLC", "gasp",
	"hdmx", "kern", "LTSH", "PCLT", "VDMX", "vhea", "vmtx", "BASE", "GDEF",
	"GPOS", "GSUB", "EBSC", "JSTF", "MATH", "CBDT", "CBLC", "COLR", "CPAL",
	"SVG ", "sbix", "acnt", "avar", "bdat", "bloc", "bsln", "cvar", "fdsc",
	"feat", "fmtx", "fvar", "gvar", "hsty", "just", "lcar", "mort", "morx",
	"opbd", "prop", "trak", "Zapf", "Silf", "Glat", "Gloc", "Feat", "Sill",
}

func woff2TableTag(flags byte, rest []byte) ([4]byte, int, error) {
	idx := flags & 0x3f
	if idx != 0x3f {
		if int(idx) >= len(woff2KnownTags) {
			return [4]byte{}, 0, fmt.Errorf("WOFF2 unknown table tag index %d", idx)
		}
		var tag [4]byte
		copy(tag[:], woff2KnownTags[idx])
		return tag, 0, nil
	}
	if len(rest) < 4 {
		return [4]byte{}, 0, fmt.Errorf("WOFF2 arbitrary tag truncated")
	}
	var tag [4]byte
	copy(tag[:], rest[:4])
	return tag, 4, nil
}

func readUvarint(data []byte) (uint32, int, error) {
	var v uint32
	for i := 0; i < 5; i++ {
		if i >= len(data) {
			return 0, 0, fmt.Errorf("truncated UIntBase128")
		}
		b := data[i]
		v = (v << 7) | uint32(b&0x7f)
		if b&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("UIntBase128 too long")
}

// assembleSFNT writes a minimal valid SFNT wrapper (offset table + table
// directory + table data, each table padded to a 4-byte boundary) from a
// decompressed table set — the same layout WOFF itself unwraps to. Only the
// tag ordering is needed from the original directory; offsets are
// recomputed as each table is placed.
func assembleSFNT(flavor []byte, tags [][4]byte, tables map[[4]byte][]byte) ([]byte, error) {
	numTables := len(tags)
	var buf bytes.Buffer

	writeU16 := func(v uint16) { binary.Write(&buf, binary.BigEndian, v) }
	writeU32 := func(v uint32) { binary.Write(&buf, binary.BigEndian, v) }

	buf.Write(flavor)
	writeU16(uint16(numTables))
	// searchRange/entrySelector/rangeShift aren't consulted by any parser
	// we rely on; zero is accepted.
	writeU16(0)
	writeU16(0)
	writeU16(0)

	headerEnd := 12 + numTables*16
	offset := uint32(headerEnd)
	type placed struct {
		tag    [4]byte
		data   []byte
		offset uint32
	}
	placedTables := make([]placed, 0, numTables)
	for _, tag := range tags {
		data := tables[tag]
		placedTables = append(placedTables, placed{tag: tag, data: data, offset: offset})
		padded := (len(data) + 3) &^ 3
		offset += uint32(padded)
	}

	for _, p := range placedTables {
		buf.Write(p.tag[:])
		writeU32(0) // checksum, unused by downstream parser
		writeU32(p.offset)
		writeU32(uint32(len(p.data)))
	}
	for _, p := range placedTables {
		buf.Write(p.data)
		if pad := (4 - len(p.data)%4) % 4; pad != 0 {
			buf.Write(make([]byte, pad))
		}
	}

	return buf.Bytes(), nil
}
