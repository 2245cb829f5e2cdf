package bytes

import (
	"fmt"
	"math"
)

// CopyDataMode determines whether to copy data.
type CopyDataMode int

// A list of supported data copy mode.
const (
	DontCopyData CopyDataMode = iota
	CopyData
)

var validCopyDataModes = []CopyDataMode{
	DontCopyData,
	CopyData,
}

func (m CopyDataMode) String() string {
	switch m {
	case DontCopyData:
		return "dontCopy"
	case CopyData:
		return "copy"
	}
	return "unknown"
}

// UnmarshalYAML unmarshals a copy data mode from its string form.
func (m *CopyDataMode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}
	for _, valid := range validCopyDataModes {
		if valid.String() == str {
			*m = valid
			return nil
		}
	}
	return fmt.Errorf("invalid copy data mode %s, valid modes are %v", str, validCopyDataModes)
}

// EnsureBufferSize returns a buffer with at least the specified target size.
// If the specified buffer has enough size, it is returned as is. Otherwise,
// a new buffer is allocated with at least the specified target size.
func EnsureBufferSize(
	buf []byte,
	targetSize int,
	copyDataMode CopyDataMode,
) []byte {
	bufSize := len(buf)
	if bufSize >= targetSize {
		return buf
	}
	newSize := int(math.Max(float64(targetSize), float64(bufSize*2)))
	newBuf := make([]byte, newSize)
	if copyDataMode == CopyData {
		copy(newBuf, buf)
	}
	return newBuf
}

// Zero clears every byte of buf.
func Zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
