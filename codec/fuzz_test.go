package codec

import (
	"testing"
	"time"
)

// FuzzUnmarshal feeds arbitrary bytes through the decoder: it must reject
// garbage with an error, never panic, and round-trip its own output.
func FuzzUnmarshal(f *testing.F) {
	seed := func(v any) {
		data, err := Marshal(v)
		if err != nil {
			f.Fatalf("seed marshal failed: %v", err)
		}
		f.Add(data)
	}

	seed(NewDateTime(time.Unix(1700000000, 500_000_000)))
	seed(map[string]any{"token": "abc", "tags": NewStringSet("a", "b")})
	seed([]any{int64(1), "two", Now()})
	f.Add([]byte{})
	f.Add([]byte{0xc1})
	f.Add([]byte{0xd7, 0x00, 0x01, 0x02})

	f.Fuzz(func(t *testing.T, data []byte) {
		var v any
		if err := Unmarshal(data, &v); err != nil {
			return
		}

		reencoded, err := Marshal(v)
		if err != nil {
			t.Fatalf("re-marshal of decoded value failed: %v", err)
		}
		var again any
		if err := Unmarshal(reencoded, &again); err != nil {
			t.Fatalf("decode of re-encoded value failed: %v", err)
		}
	})
}
