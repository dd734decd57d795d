package nesrom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHeaderINES(t *testing.T) {
	b := [16]byte{0x4e, 0x45, 0x53, 0x1a, 0x02, 0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	h, err := parseHeader(b)
	assert.NoError(t, err)
	assert.Equal(t, ArchaicINES, h.Format) // bytes 12-15 are all zero
	assert.Equal(t, uint16(2), h.PRGROMSize)
	assert.Equal(t, uint16(1), h.CHRROMSize)
	assert.Equal(t, uint16(0), h.Mapper)
	assert.False(t, h.Vertical) // bit0 of byte6 is 1
}

func TestParseHeaderInvalidSignature(t *testing.T) {
	var b [16]byte
	copy(b[:], []byte("BOB\x1A"))
	_, err := parseHeader(b)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParseHeaderVersionDetection(t *testing.T) {
	cases := []struct {
		flags7 uint8
		trail  [4]byte
		want   Format
	}{
		{0x08, [4]byte{0, 0, 0, 0}, NES2},
		{0x00, [4]byte{0, 0, 0, 0}, ArchaicINES},
		{0x00, [4]byte{1, 0, 0, 0}, INES},
	}

	for i, tc := range cases {
		var b [16]byte
		copy(b[0:4], []byte("NES\x1A"))
		b[7] = tc.flags7
		copy(b[12:16], tc.trail[:])

		h, err := parseHeader(b)
		assert.NoError(t, err, "case %d", i)
		assert.Equal(t, tc.want, h.Format, "case %d", i)
	}
}

func TestParseHeaderMapperAndSubmapper(t *testing.T) {
	var b [16]byte
	copy(b[0:4], []byte("NES\x1A"))
	b[6] = 0xF0 // low nibble of mapper = 0xF
	b[7] = 0xE8 // high nibble of mapper = 0xE, NES2 marker set
	b[8] = 0x3A // bits 8-11 of mapper = 0xA, submapper = 0x3
	b[12] = 0

	h, err := parseHeader(b)
	assert.NoError(t, err)
	assert.Equal(t, NES2, h.Format)
	assert.Equal(t, uint16(0xAEF), h.Mapper)
	assert.Equal(t, uint8(0x3), h.Submapper)
}

func TestParseHeaderRAMSizeNibbles(t *testing.T) {
	var b [16]byte
	copy(b[0:4], []byte("NES\x1A"))
	b[7] = 0x08 // NES2
	b[10] = 0x21 // battery nibble=2 (64<<2=256), non-battery nibble=1 (64<<1=128)
	b[11] = 0x00

	h, err := parseHeader(b)
	assert.NoError(t, err)
	assert.Equal(t, uint32(256), h.PRGRAMSizeBattery)
	assert.Equal(t, uint32(128), h.PRGRAMSizeNonBattery)
	assert.Equal(t, uint32(0), h.CHRRAMSizeBattery)
}

func TestParseHeaderTVSystem(t *testing.T) {
	cases := []struct {
		nes2   bool
		byte9  uint8
		byte12 uint8
		want   TVSystem
	}{
		{false, 0x00, 0x00, TVNTSC},
		{false, 0x01, 0x00, TVPAL},
		{true, 0x00, 0x01, TVPAL},
		{true, 0x00, 0x02, TVDual},
		{true, 0x00, 0x00, TVNTSC},
	}

	for i, tc := range cases {
		var b [16]byte
		copy(b[0:4], []byte("NES\x1A"))
		if tc.nes2 {
			b[7] = 0x08
		} else {
			b[15] = 1 // force detection as INES, not ArchaicINES
		}
		b[9] = tc.byte9
		b[12] = tc.byte12

		h, err := parseHeader(b)
		assert.NoError(t, err, "case %d", i)
		assert.Equal(t, tc.want, h.TVSystem, "case %d", i)
	}
}

func TestMirroringMode(t *testing.T) {
	cases := []struct {
		vertical, fourScreen bool
		want                 Mirroring
	}{
		{false, false, MirrorHorizontal},
		{true, false, MirrorVertical},
		{false, true, MirrorFourScreen},
		{true, true, MirrorFourScreen},
	}

	for i, tc := range cases {
		h := &Header{Vertical: tc.vertical, FourScreen: tc.fourScreen}
		assert.Equal(t, tc.want, h.MirroringMode(), "case %d", i)
	}
}

func TestHeaderEncodeRoundTrip(t *testing.T) {
	var b [16]byte
	copy(b[0:4], []byte("NES\x1A"))
	b[4] = 2
	b[5] = 1
	b[6] = 0xF1 // mapper low nibble 0xF, bit 0 set -> Vertical=false
	b[7] = 0xE8 // mapper high nibble 0xE, NES2 marker
	b[8] = 0x3A
	b[9] = 0x00
	b[10] = 0x21
	b[11] = 0x00
	b[12] = 0x01

	h, err := parseHeader(b)
	assert.NoError(t, err)

	reencoded := h.Encode()
	h2, err := parseHeader(reencoded)
	assert.NoError(t, err)
	assert.Equal(t, h, h2)
}
