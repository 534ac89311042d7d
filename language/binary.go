package language

import "bytes"

// sniffLength is how many leading bytes are inspected for NUL bytes.
const sniffLength = 512

// IsBinaryContent reports whether data looks binary: a NUL byte in its first 512 bytes.
func IsBinaryContent(data []byte) bool {
	if len(data) > sniffLength {
		data = data[:sniffLength]
	}
	return bytes.IndexByte(data, 0) >= 0
}
