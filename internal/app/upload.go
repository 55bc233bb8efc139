package app

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLimit is how much of an upload is buffered for content detection.
const sniffLimit = 3072

// sniff detects the content type of r from its first bytes and returns a
// reader that replays them ahead of the rest of the stream.
func sniff(r io.Reader) (string, io.Reader, error) {
	if r == nil {
		return "", nil, fmt.Errorf("empty upload")
	}
	head := make([]byte, sniffLimit)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]

	detected := mimetype.Detect(head).String()
	if i := strings.IndexByte(detected, ';'); i >= 0 {
		detected = detected[:i]
	}
	return detected, io.MultiReader(bytes.NewReader(head), r), nil
}
