// Package cursor encodes opaque pagination tokens. A token is base64 over
// "<entity>:<id>"; the entity prefix keeps a cursor minted for one entity
// type from being accepted for another.
package cursor

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidCursor = errors.New("invalid cursor")

const EntityMinistry = "ministry"

func Encode(entity string, id int64) string {
	payload := fmt.Sprintf("%s:%d", entity, id)
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

// Decode reverses Encode. It fails with ErrInvalidCursor when the token is
// not valid base64, the entity prefix does not match, or the payload is not
// an integer.
func Decode(entity, token string) (int64, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidCursor, "malformed base64")
	}

	prefix, idPart, found := strings.Cut(string(raw), ":")
	if !found || prefix != entity {
		return 0, fmt.Errorf("%w: %s", ErrInvalidCursor, "unexpected entity prefix")
	}

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidCursor, "non-integer id")
	}

	return id, nil
}
