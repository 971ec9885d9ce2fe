package proto

import (
	"testing"

	"toybox/hal"
)

func TestKeyPayload(t *testing.T) {
	cases := []hal.KeyEvent{
		{Code: hal.KeyUp, Press: true},
		{Code: hal.KeyEscape, Press: false},
		{Press: true, Rune: '7'},
		{Press: true, Rune: 'ж'},
	}
	for _, ev := range cases {
		got, ok := DecodeKeyPayload(KeyPayload(ev))
		if !ok || got != ev {
			t.Fatalf("DecodeKeyPayload(KeyPayload(%+v)) = %+v, %v", ev, got, ok)
		}
	}
}

func TestDecodeKeyPayloadRejectsMalformed(t *testing.T) {
	for _, b := range [][]byte{nil, {1, 0}, {1, 0, 2, 0, 0, 0, 0}} {
		if _, ok := DecodeKeyPayload(b); ok {
			t.Fatalf("DecodeKeyPayload(%v) ok = true", b)
		}
	}
}

func TestPointerPayload(t *testing.T) {
	cases := []hal.PointerEvent{
		{X: 0, Y: 0, Press: true},
		{X: 299, Y: 399, Press: false},
		{X: -3, Y: 12, Press: true},
	}
	for _, ev := range cases {
		got, ok := DecodePointerPayload(PointerPayload(ev))
		if !ok || got != ev {
			t.Fatalf("DecodePointerPayload(PointerPayload(%+v)) = %+v, %v", ev, got, ok)
		}
	}
	if _, ok := DecodePointerPayload([]byte{1}); ok {
		t.Fatal("expected short payload to fail")
	}
}

func TestKindString(t *testing.T) {
	if MsgKey.String() != "key" || Kind(999).String() != "unknown" {
		t.Fatalf("unexpected kind names: %s %s", MsgKey, Kind(999))
	}
}
