package codec

import (
	"errors"
	"testing"
	"time"
)

func TestDateTimeRoundTrip(t *testing.T) {
	orig := NewDateTime(time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC))

	data, err := Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded DateTime
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !decoded.Equal(orig) {
		t.Fatalf("round trip changed value: got %v want %v", decoded, orig)
	}
}

func TestDateTimeTruncatesToMilliseconds(t *testing.T) {
	fine := time.Date(2025, 3, 14, 9, 26, 53, 589_123_456, time.UTC)
	d := NewDateTime(fine)
	if d.UnixMilli() != fine.UnixMilli() {
		t.Fatalf("millisecond value changed: got %d want %d", d.UnixMilli(), fine.UnixMilli())
	}
	if d.Nanosecond()%int(time.Millisecond) != 0 {
		t.Fatalf("expected sub-millisecond precision dropped, got %dns", d.Nanosecond())
	}
}

func TestDateTimeDecodesIntoInterface(t *testing.T) {
	orig := Now()
	data, err := Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var v any
	if err := Unmarshal(data, &v); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	decoded, ok := v.(DateTime)
	if !ok {
		ptr, pok := v.(*DateTime)
		if !pok {
			t.Fatalf("expected DateTime from interface decode, got %T", v)
		}
		decoded = *ptr
	}
	if !decoded.Equal(orig) {
		t.Fatalf("round trip changed value: got %v want %v", decoded, orig)
	}
}

func TestDateTimeRejectsShortPayload(t *testing.T) {
	var d DateTime
	if err := d.UnmarshalMsgpack([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for truncated datetime payload")
	}
}

func TestObjectIDRoundTrip(t *testing.T) {
	orig, err := NewObjectID()
	if err != nil {
		t.Fatalf("NewObjectID failed: %v", err)
	}
	if len(orig.Hex()) != 24 {
		t.Fatalf("hex length = %d, want 24", len(orig.Hex()))
	}

	data, err := Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded ObjectID
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded != orig {
		t.Fatalf("round trip changed value: got %s want %s", decoded.Hex(), orig.Hex())
	}
}

func TestObjectIDFromHexRejectsBadInput(t *testing.T) {
	cases := []string{
		"",
		"abc",
		"zzzzzzzzzzzzzzzzzzzzzzzz",
		"0123456789abcdef0123456789abcdef", // 32 chars, too long
	}
	for _, in := range cases {
		if _, err := ObjectIDFromHex(in); !errors.Is(err, ErrMalformedIdentifier) {
			t.Fatalf("ObjectIDFromHex(%q) = %v, want ErrMalformedIdentifier", in, err)
		}
	}
}

func TestObjectIDUnmarshalRejectsBadPayload(t *testing.T) {
	var id ObjectID
	err := id.UnmarshalMsgpack([]byte("not-a-hex-identifier-----"))
	if !errors.Is(err, ErrMalformedIdentifier) {
		t.Fatalf("expected ErrMalformedIdentifier, got %v", err)
	}
}

func TestSetDeduplicates(t *testing.T) {
	s := NewStringSet("read", "write", "read")
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	s.Add("write")
	if s.Len() != 2 {
		t.Fatalf("Len after duplicate Add = %d, want 2", s.Len())
	}
	if !s.ContainsString("read") || !s.ContainsString("write") {
		t.Fatal("expected both elements present")
	}
	if s.ContainsString("admin") {
		t.Fatal("unexpected element present")
	}
}

func TestSetRoundTrip(t *testing.T) {
	id, err := NewObjectID()
	if err != nil {
		t.Fatalf("NewObjectID failed: %v", err)
	}
	orig := NewSet("alpha", id, NewDateTime(time.Unix(1700000000, 0)))

	data, err := Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	decoded := &Set{}
	if err := Unmarshal(data, decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !decoded.Equal(orig) {
		t.Fatalf("round trip changed set: got %v want %v", decoded.Elements(), orig.Elements())
	}
}

func TestNestedSetRoundTrip(t *testing.T) {
	inner := NewStringSet("a", "b")
	orig := NewSet("outer", inner)

	data, err := Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	decoded := &Set{}
	if err := Unmarshal(data, decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !decoded.Contains(inner) {
		t.Fatalf("nested set missing after round trip: %v", decoded.Elements())
	}
}

func TestSetDecodeDropsDuplicates(t *testing.T) {
	// Hand-build a wire payload whose element sequence repeats a value.
	payload, err := Marshal([]any{"x", "x", "y"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	s := &Set{}
	if err := s.UnmarshalMsgpack(payload); err != nil {
		t.Fatalf("UnmarshalMsgpack failed: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2 after duplicate discard", s.Len())
	}
}

func TestUnmarshalMalformedBuffer(t *testing.T) {
	var v map[string]any
	err := Unmarshal([]byte{0xc1, 0xff, 0x00}, &v)
	if !errors.Is(err, ErrMalformedSession) {
		t.Fatalf("expected ErrMalformedSession, got %v", err)
	}
}

func TestMarshalMapWithExtensionValues(t *testing.T) {
	id, err := NewObjectID()
	if err != nil {
		t.Fatalf("NewObjectID failed: %v", err)
	}
	orig := map[string]any{
		"id":      id,
		"created": Now(),
		"tags":    NewStringSet("one", "two"),
	}

	data, err := Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	gotID, ok := decoded["id"].(ObjectID)
	if !ok {
		ptr, pok := decoded["id"].(*ObjectID)
		if !pok {
			t.Fatalf("id round trip failed: %#v", decoded["id"])
		}
		gotID = *ptr
	}
	if gotID != id {
		t.Fatalf("id round trip changed value: %s", gotID.Hex())
	}
	switch decoded["created"].(type) {
	case DateTime, *DateTime:
	default:
		t.Fatalf("created round trip failed: %#v", decoded["created"])
	}
	tags, ok := decoded["tags"].(Set)
	if !ok {
		// Decoder may surface the pointer form.
		ptr, pok := decoded["tags"].(*Set)
		if !pok {
			t.Fatalf("tags round trip failed: %#v", decoded["tags"])
		}
		tags = *ptr
	}
	if !tags.ContainsString("one") || !tags.ContainsString("two") {
		t.Fatalf("tags lost elements: %v", tags.Elements())
	}
}
