package cursor

import (
	"encoding/base64"
	"errors"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	for _, id := range []int64{1, 42, 100, 987654321} {
		token := Encode(EntityMinistry, id)

		decoded, err := Decode(EntityMinistry, token)
		if err != nil {
			t.Fatalf("Decode(Encode(%d)) returned error: %v", id, err)
		}
		if decoded != id {
			t.Errorf("Decode(Encode(%d)) = %d", id, decoded)
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	cases := map[string]string{
		"not base64":        "!!!not-base64!!!",
		"missing separator": base64.StdEncoding.EncodeToString([]byte("ministry42")),
		"wrong entity":      base64.StdEncoding.EncodeToString([]byte("donor:42")),
		"non-integer id":    base64.StdEncoding.EncodeToString([]byte("ministry:fortytwo")),
		"empty id":          base64.StdEncoding.EncodeToString([]byte("ministry:")),
		"empty token":       "",
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(EntityMinistry, token)
			if !errors.Is(err, ErrInvalidCursor) {
				t.Errorf("Decode(%q) error = %v, want ErrInvalidCursor", token, err)
			}
		})
	}
}

func TestDecodeChecksEntityPrefix(t *testing.T) {
	// A cursor minted for one entity type must not be accepted for another.
	token := Encode("donor", 7)
	if _, err := Decode(EntityMinistry, token); !errors.Is(err, ErrInvalidCursor) {
		t.Errorf("expected ErrInvalidCursor, got %v", err)
	}
}
