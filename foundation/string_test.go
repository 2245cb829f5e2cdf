package foundation

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestStringRetainRelease(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rt := NewMockRuntime(ctrl)
	gomock.InOrder(
		rt.EXPECT().NewString("aaa🍺").Return(ID(42)),
		rt.EXPECT().Retain(ID(42)),
		rt.EXPECT().Release(ID(42)),
		rt.EXPECT().Release(ID(42)),
	)

	s := NewString(rt, "aaa🍺")
	require.True(t, s.Valid())
	require.Equal(t, ID(42), s.ID())

	s.Retain()
	require.Equal(t, int32(2), s.RefCount())
	s.Release()
	require.True(t, s.Valid())
	s.Release()
	require.False(t, s.Valid())
}

func TestStringUseAfterReleasePanics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rt := NewMockRuntime(ctrl)
	rt.EXPECT().Release(ID(7))

	s := WrapString(rt, ID(7))
	s.Release()

	require.PanicsWithValue(t, ErrUseAfterRelease, func() { s.LengthOfBytes(UTF8StringEncoding) })
	require.PanicsWithValue(t, ErrUseAfterRelease, func() { s.UTF8String() })
	require.PanicsWithValue(t, ErrUseAfterRelease, func() { s.GetCString(make([]byte, 1), 1, UTF8StringEncoding) })
	require.PanicsWithValue(t, ErrUseAfterRelease, func() { s.Retain() })
	require.PanicsWithValue(t, ErrUseAfterRelease, func() { s.Release() })
}

func TestNewStringNilObjectPanics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rt := NewMockRuntime(ctrl)
	rt.EXPECT().NewString("").Return(Nil)

	require.Panics(t, func() { NewString(rt, "") })
}

func TestStringGetCStringMaxLengthExceedsBuffer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := WrapString(NewMockRuntime(ctrl), ID(1))
	require.Panics(t, func() { s.GetCString(make([]byte, 2), 3, UTF8StringEncoding) })
}

func TestStringDelegatesQueries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	buf := make([]byte, 8)
	rt := NewMockRuntime(ctrl)
	rt.EXPECT().LengthOfBytes(ID(3), UTF8StringEncoding).Return(7)
	rt.EXPECT().GetCString(ID(3), buf, 8, UTF8StringEncoding).Return(true)
	rt.EXPECT().UTF8String(ID(3)).Return([]byte("aaa🍺"))

	s := WrapString(rt, ID(3))
	require.Equal(t, 7, s.LengthOfBytes(UTF8StringEncoding))
	require.True(t, s.GetCString(buf, 8, UTF8StringEncoding))
	require.Equal(t, []byte("aaa🍺"), s.UTF8String())
}

func TestEncodingString(t *testing.T) {
	require.Equal(t, "utf8", UTF8StringEncoding.String())
	require.Equal(t, "ascii", ASCIIStringEncoding.String())
	require.Equal(t, "unknown", Encoding(99).String())
}
