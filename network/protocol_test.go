package network

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	env := &Envelope{}
	env.Msg("hello")
	env.Pos(0, 9, 3, 4)
	env.Skill("Evasion", 2, 0.5, 0.1)
	env.Prompt("")

	entries, err := Decode(env.Bytes())
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, KindMsg, entries[0].Kind)
	size := binary.BigEndian.Uint16(entries[0].Payload[:2])
	assert.Equal(t, "hello", string(entries[0].Payload[2:2+size]))

	assert.Equal(t, KindPos, entries[1].Kind)
	assert.Equal(t, uint64(0), binary.BigEndian.Uint64(entries[1].Payload[:8]))
	assert.Equal(t, uint64(9), binary.BigEndian.Uint64(entries[1].Payload[8:16]))

	assert.Equal(t, KindSkill, entries[2].Kind)
	assert.Equal(t, KindPrompt, entries[3].Kind)
}

func TestEnvelopeChipFields(t *testing.T) {
	env := &Envelope{}
	env.Chip(3, 7, '≈', 0.58, 0.85, 0.85, 1.0)

	entries, err := Decode(env.Bytes())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	p := entries[0].Payload
	assert.Equal(t, byte(3), p[0])
	assert.Equal(t, uint64(7), binary.BigEndian.Uint64(p[1:9]))
	assert.Equal(t, uint32('≈'), binary.BigEndian.Uint32(p[9:13]))
}

func TestTileBodySizeEnforced(t *testing.T) {
	env := &Envelope{}
	assert.Error(t, env.Tile(1, 0, 0, make([]byte, 10)))
	assert.NoError(t, env.Tile(1, 0, 0, make([]byte, TileBytes)))
	assert.Equal(t, 1, env.Len())
}

func TestDecodeTruncatedPacket(t *testing.T) {
	env := &Envelope{}
	env.Msg("truncate me")
	packet := env.Bytes()

	_, err := Decode(packet[:len(packet)-3])
	assert.Error(t, err)
}

func TestEmptyEnvelope(t *testing.T) {
	env := &Envelope{}
	assert.Equal(t, 0, env.Len())

	entries, err := Decode(env.Bytes())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
