package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

var (
	requestIDSize  = 12
	nanoidAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// RequestID returns a short random identifier stamped on each request's
// log entries.
func RequestID() string {
	return gonanoid.MustGenerate(nanoidAlphabet, requestIDSize)
}
