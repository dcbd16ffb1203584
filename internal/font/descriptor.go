package font

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// DescriptorFile is the descriptor entry looked up in a font directory.
const DescriptorFile = "font.ini"

// Descriptor overrides how individual codes are resolved. Each section is
// named after a code in hexadecimal and may hold:
//
//	[0041]
//	Entry=letters/a.png  ; bundle entry, relative to the font directory
//	HOTX=0
//	HOTY=2
//	WIDTH=9
//	HEIGHT=14
//
//	[00C0]
//	LINK=0041            ; reuse the glyph of another code
type Descriptor struct {
	sections map[uint16]*ini.Section
}

// ParseDescriptor reads a descriptor. Section and key names are case
// insensitive; sections whose name is not a code are ignored.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	f, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse font descriptor")
	}

	d := &Descriptor{sections: make(map[uint16]*ini.Section)}
	for _, sec := range f.Sections() {
		code, err := parseCode(sec.Name())
		if err != nil {
			continue
		}
		d.sections[code] = sec
	}
	return d, nil
}

// Len returns the number of codes the descriptor mentions.
func (d *Descriptor) Len() int {
	return len(d.sections)
}

// Link returns the code a code is linked to.
func (d *Descriptor) Link(code uint16) (uint16, bool, error) {
	sec, ok := d.sections[code]
	if !ok || !sec.HasKey("LINK") {
		return 0, false, nil
	}
	target, err := parseCode(sec.Key("LINK").String())
	if err != nil {
		return 0, false, errors.Wrapf(err, "invalid LINK in section %04X", code)
	}
	return target, true, nil
}

// Entry returns the explicit bundle entry for a code, if any.
func (d *Descriptor) Entry(code uint16) string {
	sec, ok := d.sections[code]
	if !ok || !sec.HasKey("Entry") {
		return ""
	}
	return strings.TrimSpace(sec.Key("Entry").String())
}

// apply copies the metric overrides of a code onto g.
func (d *Descriptor) apply(g *Glyph) {
	sec, ok := d.sections[g.Code]
	if !ok {
		return
	}
	g.HotX = intKey(sec, "HOTX", g.HotX)
	g.HotY = intKey(sec, "HOTY", g.HotY)
	g.W = intKey(sec, "WIDTH", g.W)
	g.H = intKey(sec, "HEIGHT", g.H)
}

func intKey(sec *ini.Section, name string, def int) int {
	if !sec.HasKey(name) {
		return def
	}
	return sec.Key(name).MustInt(def)
}

// parseCode reads a hexadecimal code, with or without a "$" or "0x" prefix.
func parseCode(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid glyph code %q", s)
	}
	return uint16(v), nil
}
