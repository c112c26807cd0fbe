package scankey_test

import (
	"testing"

	"github.com/litedb-go/litedb/oid"
	"github.com/litedb-go/litedb/scankey"
	"github.com/litedb-go/litedb/tuple"
	"github.com/stretchr/testify/require"
)

func TestSatisfiesSignConvention(t *testing.T) {
	arg := tuple.Int64Column(5).Data
	col := tuple.Int64Column(3).Data // column < argument

	less := scankey.New(1, scankey.Less, oid.INT8OID, arg)
	ok, err := less.Satisfies(col)
	require.NoError(t, err)
	require.True(t, ok, "3 < 5 so Less should be satisfied")

	greater := scankey.New(1, scankey.Greater, oid.INT8OID, arg)
	ok, err = greater.Satisfies(col)
	require.NoError(t, err)
	require.False(t, ok)

	eq := scankey.New(1, scankey.Equal, oid.INT8OID, arg)
	ok, err = eq.Satisfies(tuple.Int64Column(5).Data)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSatisfiesInvalidStrategy(t *testing.T) {
	k := scankey.New(1, scankey.Strategy(99), oid.INT8OID, tuple.Int64Column(1).Data)
	_, err := k.Satisfies(tuple.Int64Column(1).Data)
	require.Error(t, err)
}
