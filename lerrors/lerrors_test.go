package lerrors_test

import (
	"testing"

	"github.com/litedb-go/litedb/lerrors"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCauseAndKind(t *testing.T) {
	cause := lerrors.New(lerrors.IO, "disk full")
	err := lerrors.Wrap(lerrors.Corrupt, cause, "decoding tuple")

	require.True(t, lerrors.Is(err, lerrors.Corrupt))
	require.Equal(t, lerrors.Corrupt, lerrors.KindOf(err))
	require.ErrorContains(t, err, "disk full")
}

func TestFatalKindsCaptureStack(t *testing.T) {
	err := lerrors.New(lerrors.Corrupt, "bad header")
	require.Contains(t, err.Error(), "lerrors_test.go")

	notFatal := lerrors.New(lerrors.Invalid, "bad attno")
	require.NotContains(t, notFatal.Error(), "lerrors_test.go")
}

func TestKindOfNonLerror(t *testing.T) {
	require.Equal(t, lerrors.Kind(0), lerrors.KindOf(nil))
}
