package rom

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// header builds a minimal 16-byte iNES header with the given bank
// counts and control bytes.
func header(prgBanks, chrBanks, flags6, flags7 uint8) []byte {
	h := make([]byte, headerSize)
	copy(h, magic[:])
	h[4] = prgBanks
	h[5] = chrBanks
	h[6] = flags6
	h[7] = flags7
	return h
}

func TestParseMinimalRom(t *testing.T) {
	data := header(1, 1, 0, 0)
	data = append(data, make([]byte, prgBankSize+chrBankSize)...)

	r, err := Parse(data)
	require.NoError(t, err)
	assert.Len(t, r.PRG, prgBankSize)
	assert.Len(t, r.CHR, chrBankSize)
	assert.Equal(t, Horizontal, r.Mirroring)
	assert.False(t, r.Battery)
	assert.False(t, r.HasTrainer)
}

func TestParseMapperNumberCombinesNibbles(t *testing.T) {
	// mapper 0x47: low nibble 0x7 from flags6 bits 4-7, high nibble 0x4
	// from flags7 bits 4-7.
	data := header(1, 1, 0x70, 0x40)
	data = append(data, make([]byte, prgBankSize+chrBankSize)...)

	r, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x47), r.Mapper)
}

func TestParseMirroringAndBatteryFlags(t *testing.T) {
	cases := []struct {
		name    string
		flags6  uint8
		want    Mirroring
		battery bool
	}{
		{"horizontal", 0x00, Horizontal, false},
		{"vertical", 0x01, Vertical, false},
		{"battery", 0x02, Horizontal, true},
		{"four-screen overrides mirroring bit", 0x09, FourScreen, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := header(1, 1, tc.flags6, 0)
			data = append(data, make([]byte, prgBankSize+chrBankSize)...)

			r, err := Parse(data)
			require.NoError(t, err)
			assert.Equal(t, tc.want, r.Mirroring)
			assert.Equal(t, tc.battery, r.Battery)
		})
	}
}

func TestParseTrainerIsSkippedBeforePRG(t *testing.T) {
	data := header(1, 0, flags6TrainerBit, 0)
	trainer := make([]byte, trainerSize)
	trainer[0] = 0xEE
	prg := make([]byte, prgBankSize)
	prg[0] = 0xAA
	data = append(data, trainer...)
	data = append(data, prg...)

	r, err := Parse(data)
	require.NoError(t, err)
	require.True(t, r.HasTrainer)
	assert.Equal(t, uint8(0xAA), r.PRG[0], "PRG must start after the trainer, not at it")
}

func TestParseHeaderNotFoundOnShortInput(t *testing.T) {
	_, err := Parse([]byte{0x4E, 0x45})
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, HeaderNotFound, pe.Kind)
}

func TestParseIncorrectHeaderOnBadMagic(t *testing.T) {
	data := header(1, 1, 0, 0)
	data[3] = 0x00 // corrupt the fourth magic byte
	data = append(data, make([]byte, prgBankSize+chrBankSize)...)

	_, err := Parse(data)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, IncorrectHeader, pe.Kind)
}

func TestParseTruncatedPayload(t *testing.T) {
	data := header(2, 1, 0, 0) // declares 2 PRG banks
	data = append(data, make([]byte, prgBankSize)...) // but only supplies 1

	_, err := Parse(data)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, TruncatedPayload, pe.Kind)
}

func TestParseOversizeInputRejected(t *testing.T) {
	data := make([]byte, maxInputSize+1)
	copy(data, magic[:])

	_, err := Parse(data)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, OversizeInput, pe.Kind)
}

func TestParseNES2Detection(t *testing.T) {
	data := header(1, 1, 0, 0x08) // bits 2-3 of flags7 == 0b10
	data = append(data, make([]byte, prgBankSize+chrBankSize)...)

	r, err := Parse(data)
	require.NoError(t, err)
	assert.True(t, r.NES2)
}

func TestParseRoundTrip(t *testing.T) {
	prg := make([]byte, prgBankSize)
	for i := range prg {
		prg[i] = uint8(i)
	}
	chr := make([]byte, chrBankSize)
	for i := range chr {
		chr[i] = uint8(i * 3)
	}
	data := header(1, 1, 0x01, 0)
	data = append(data, prg...)
	data = append(data, chr...)

	r, err := Parse(data)
	require.NoError(t, err)
	if diff := deep.Equal(r.PRG, prg); diff != nil {
		t.Errorf("PRG mismatch: %v", diff)
	}
	if diff := deep.Equal(r.CHR, chr); diff != nil {
		t.Errorf("CHR mismatch: %v", diff)
	}
}
