// Package network carries the binary server->client protocol and the
// websocket transport.
package network

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// EntryKind identifies the semantic meaning of an envelope entry.
type EntryKind uint8

const (
	KindMsg EntryKind = 0x01
	KindPos EntryKind = 0x02
	KindChip EntryKind = 0x03
	KindTile EntryKind = 0x04
	KindGlyph EntryKind = 0x05
	KindNoun EntryKind = 0x06
	KindHealth EntryKind = 0x07
	KindStance EntryKind = 0x08
	KindCondition EntryKind = 0x09
	KindSkill EntryKind = 0x0A
	KindDatetime EntryKind = 0x0B
	KindPrompt EntryKind = 0x0C
	KindGas EntryKind = 0x0D
)

// TileBytes is the wire size of one tile body.
const TileBytes = 256

// Envelope accumulates typed entries for one recipient's packet.
// Encoding is a length-prefixed record stream: each entry is
// [kind:1][len:2][payload], fields big-endian, strings u16-length
// prefixed UTF-8.
type Envelope struct {
	buf     bytes.Buffer
	scratch bytes.Buffer
	count   int
}

// Len reports accumulated entries.
func (e *Envelope) Len() int { return e.count }

// Bytes returns the encoded packet: [entry count:2] then the entries.
func (e *Envelope) Bytes() []byte {
	out := make([]byte, 0, 2+e.buf.Len())
	out = binary.BigEndian.AppendUint16(out, uint16(e.count))
	return append(out, e.buf.Bytes()...)
}

func (e *Envelope) begin() *bytes.Buffer {
	e.scratch.Reset()
	return &e.scratch
}

func (e *Envelope) commit(kind EntryKind) {
	e.buf.WriteByte(byte(kind))
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(e.scratch.Len()))
	e.buf.Write(lenBuf[:])
	e.buf.Write(e.scratch.Bytes())
	e.count++
}

func putString(b *bytes.Buffer, s string) {
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(s)))
	b.Write(lenBuf[:])
	b.WriteString(s)
}

func putU64(b *bytes.Buffer, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	b.Write(buf[:])
}

func putU32(b *bytes.Buffer, v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	b.Write(buf[:])
}

func putI32(b *bytes.Buffer, v int32) {
	putU32(b, uint32(v))
}

func putF32(b *bytes.Buffer, v float64) {
	putU32(b, math.Float32bits(float32(v)))
}

func putF64(b *bytes.Buffer, v float64) {
	putU64(b, math.Float64bits(v))
}

// Msg appends a plain text entry.
func (e *Envelope) Msg(text string) {
	b := e.begin()
	putString(b, text)
	e.commit(KindMsg)
}

// Pos appends an entity position. id 0 is the recipient.
func (e *Envelope) Pos(id, mapID uint64, x, y int) {
	b := e.begin()
	putU64(b, id)
	putU64(b, mapID)
	putI32(b, int32(x))
	putI32(b, int32(y))
	e.commit(KindPos)
}

// Chip appends one chipset row.
func (e *Envelope) Chip(id byte, mapID uint64, glyph rune, h, s, v, a float64) {
	b := e.begin()
	b.WriteByte(id)
	putU64(b, mapID)
	putU32(b, uint32(glyph))
	putF32(b, h)
	putF32(b, s)
	putF32(b, v)
	putF32(b, a)
	e.commit(KindChip)
}

// Tile appends a 16x16 tile body.
func (e *Envelope) Tile(mapID uint64, top, left int, data []byte) error {
	if len(data) != TileBytes {
		return errors.New("network: tile body must be 256 bytes")
	}
	b := e.begin()
	putU64(b, mapID)
	putI32(b, int32(top))
	putI32(b, int32(left))
	b.Write(data)
	e.commit(KindTile)
	return nil
}

// Glyph appends an entity glyph.
func (e *Envelope) Glyph(id uint64, glyph rune, h, s, v float64) {
	b := e.begin()
	putU64(b, id)
	putU32(b, uint32(glyph))
	putF32(b, h)
	putF32(b, s)
	putF32(b, v)
	e.commit(KindGlyph)
}

// Noun appends an entity display name.
func (e *Envelope) Noun(id uint64, text string) {
	b := e.begin()
	putU64(b, id)
	putString(b, text)
	e.commit(KindNoun)
}

// Health appends health percentages.
func (e *Envelope) Health(id uint64, pct, stressPct float64) {
	b := e.begin()
	putU64(b, id)
	putF32(b, pct)
	putF32(b, stressPct)
	e.commit(KindHealth)
}

// Stance appends a stance string.
func (e *Envelope) Stance(id uint64, text string) {
	b := e.begin()
	putU64(b, id)
	putString(b, text)
	e.commit(KindStance)
}

// Condition appends a condition string.
func (e *Envelope) Condition(id uint64, text string) {
	b := e.begin()
	putU64(b, id)
	putString(b, text)
	e.commit(KindCondition)
}

// Skill appends one skill row.
func (e *Envelope) Skill(name string, rank int, tnl, pending float64) {
	b := e.begin()
	putString(b, name)
	putI32(b, int32(rank))
	putF32(b, tnl)
	putF32(b, pending)
	e.commit(KindSkill)
}

// Datetime appends the in-game clock as epoch seconds.
func (e *Envelope) Datetime(seconds float64) {
	b := e.begin()
	putF64(b, seconds)
	e.commit(KindDatetime)
}

// Prompt appends a prompt; empty text clears a pending prompt.
func (e *Envelope) Prompt(text string) {
	b := e.begin()
	putString(b, text)
	e.commit(KindPrompt)
}

// Gas appends one gas cell.
func (e *Envelope) Gas(id, mapID uint64, x, y int, v float64) {
	b := e.begin()
	putU64(b, id)
	putU64(b, mapID)
	putI32(b, int32(x))
	putI32(b, int32(y))
	putF32(b, v)
	e.commit(KindGas)
}

// Entry is one decoded record; used by tests and tooling.
type Entry struct {
	Kind    EntryKind
	Payload []byte
}

// Decode splits a packet back into entries.
func Decode(packet []byte) ([]Entry, error) {
	r := bytes.NewReader(packet)
	var countBuf [2]byte
	if _, err := io.ReadFull(r, countBuf[:]); err != nil {
		return nil, err
	}
	count := int(binary.BigEndian.Uint16(countBuf[:]))

	entries := make([]Entry, 0, count)
	for i := 0; i < count; i++ {
		var head [3]byte
		if _, err := io.ReadFull(r, head[:]); err != nil {
			return nil, err
		}
		size := int(binary.BigEndian.Uint16(head[1:3]))
		payload := make([]byte, size)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Kind: EntryKind(head[0]), Payload: payload})
	}
	return entries, nil
}
