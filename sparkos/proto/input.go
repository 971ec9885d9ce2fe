package proto

import (
	"encoding/binary"

	"toybox/hal"
)

// KeyPayload encodes a MsgKey payload.
//
// Layout (little-endian):
//   - u16: hal.KeyCode
//   - u8: 1 = press, 0 = release
//   - i32: rune (0 when the key has no text)
func KeyPayload(ev hal.KeyEvent) []byte {
	buf := make([]byte, 7)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(ev.Code))
	if ev.Press {
		buf[2] = 1
	}
	binary.LittleEndian.PutUint32(buf[3:7], uint32(ev.Rune))
	return buf
}

// DecodeKeyPayload decodes a KeyPayload.
func DecodeKeyPayload(b []byte) (hal.KeyEvent, bool) {
	if len(b) != 7 || b[2] > 1 {
		return hal.KeyEvent{}, false
	}
	return hal.KeyEvent{
		Code:  hal.KeyCode(binary.LittleEndian.Uint16(b[0:2])),
		Press: b[2] == 1,
		Rune:  rune(int32(binary.LittleEndian.Uint32(b[3:7]))),
	}, true
}

// PointerPayload encodes a MsgPointer payload.
//
// Layout (little-endian):
//   - i16: x
//   - i16: y
//   - u8: 1 = press, 0 = release
func PointerPayload(ev hal.PointerEvent) []byte {
	buf := make([]byte, 5)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(int16(ev.X)))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(int16(ev.Y)))
	if ev.Press {
		buf[4] = 1
	}
	return buf
}

// DecodePointerPayload decodes a PointerPayload.
func DecodePointerPayload(b []byte) (hal.PointerEvent, bool) {
	if len(b) != 5 || b[4] > 1 {
		return hal.PointerEvent{}, false
	}
	return hal.PointerEvent{
		X:     int(int16(binary.LittleEndian.Uint16(b[0:2]))),
		Y:     int(int16(binary.LittleEndian.Uint16(b[2:4]))),
		Press: b[4] == 1,
	}, true
}
