//go:build darwin && cgo

package objc

import (
	"testing"

	"github.com/xichen2020/objcstr/foundation"

	"github.com/stretchr/testify/require"
)

func TestRuntimeRoundTrip(t *testing.T) {
	rt, err := NewRuntime(nil)
	require.NoError(t, err)

	for _, input := range []string{"", "aaa🍺", "aaaЫбbbb", "aaa\ue0b0bbb🍺Ыض", "a\x00b"} {
		s := foundation.NewString(rt, input)
		n := s.LengthOfBytes(foundation.UTF8StringEncoding)
		require.Equal(t, len(input), n)

		buf := make([]byte, n+1)
		require.True(t, s.GetCString(buf, n+1, foundation.UTF8StringEncoding))
		require.Equal(t, input, string(buf[:n]))
		require.Equal(t, byte(0), buf[n])

		foundation.WithAutoreleasePool(rt, func() {
			require.Equal(t, input, string(s.UTF8String()))
		})
		s.Release()
	}
}
