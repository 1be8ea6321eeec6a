package upload

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
)

const hashChunkSize = 4096

// HashReader returns the SHA-256 hex digest of the whole stream. The cursor
// is at 0 before reading and is put back at 0 afterwards.
func HashReader(rs io.ReadSeeker) (string, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	h := sha256.New()
	buf := make([]byte, hashChunkSize)
	for {
		n, err := rs.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_, _ = rs.Seek(0, io.SeekStart)
			return "", err
		}
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
