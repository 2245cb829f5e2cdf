package safe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToStringCopies(t *testing.T) {
	b := []byte("aaa🍺")
	s := ToString(b)
	for i := range b {
		b[i] = 0
	}
	require.Equal(t, "aaa🍺", s)
}
