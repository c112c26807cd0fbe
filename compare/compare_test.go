package compare_test

import (
	"testing"

	"github.com/litedb-go/litedb/compare"
	"github.com/litedb-go/litedb/oid"
	"github.com/litedb-go/litedb/tuple"
	"github.com/stretchr/testify/require"
)

// Universal law 7: comparator totality — cmp(a,b) = -cmp(b,a), transitive.
func TestComparatorTotality(t *testing.T) {
	funcs := map[string]compare.Func{
		"int8":  compare.Int8Cmp,
		"int16": compare.Int16Cmp,
		"int32": compare.Int32Cmp,
		"int64": compare.Int64Cmp,
		"uint64": compare.Uint64Cmp,
		"name":  compare.NameCmp,
	}

	inputs := map[string][][]byte{
		"int8":   {{0x00}, {0xFF}, {0x7F}},
		"int16":  enc16(0, -1, 32767, -32768),
		"int32":  enc32(0, -1, 1<<30, -(1 << 30)),
		"int64":  enc64(0, -1, 1<<62, -(1 << 62)),
		"uint64": encU64(0, 1, ^uint64(0)),
		"name":   names("", "a", "aa", "zzz"),
	}

	for name, fn := range funcs {
		vals := inputs[name]
		for i := range vals {
			for j := range vals {
				got := fn(vals[i], vals[j])
				inverse := fn(vals[j], vals[i])
				require.Equal(t, sign(got), -sign(inverse), "%s: cmp(%d,%d)", name, i, j)
				if i == j {
					require.Equal(t, 0, got)
				}
			}
		}
		// transitivity over a sorted chain.
		for i := 0; i < len(vals)-2; i++ {
			require.True(t, sign(fn(vals[i], vals[i+1])) <= 0 || sign(fn(vals[i+1], vals[i+2])) > 0 ||
				sign(fn(vals[i], vals[i+2])) <= 0, "%s transitivity", name)
		}
	}
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

func enc16(vs ...int16) [][]byte {
	out := make([][]byte, len(vs))
	for i, v := range vs {
		out[i] = tuple.Int16Column(v).Data
	}
	return out
}

func enc32(vs ...int32) [][]byte {
	out := make([][]byte, len(vs))
	for i, v := range vs {
		out[i] = tuple.Int32Column(v).Data
	}
	return out
}

func enc64(vs ...int64) [][]byte {
	out := make([][]byte, len(vs))
	for i, v := range vs {
		out[i] = tuple.Int64Column(v).Data
	}
	return out
}

func encU64(vs ...uint64) [][]byte {
	out := make([][]byte, len(vs))
	for i, v := range vs {
		out[i] = tuple.Int64Column(int64(v)).Data
	}
	return out
}

func names(vs ...string) [][]byte {
	out := make([][]byte, len(vs))
	for i, v := range vs {
		c := tuple.NameColumn(v)
		out[i] = c.Data
	}
	return out
}

func TestCompositeShorterPrefixSortsFirst(t *testing.T) {
	short, err := tuple.Construct(0, []tuple.Column{tuple.Int64Column(5)})
	require.NoError(t, err)
	long, err := tuple.Construct(0, []tuple.Column{tuple.Int64Column(5), tuple.Int64Column(1)})
	require.NoError(t, err)

	require.Equal(t, -1, compare.Composite(short.Data(), long.Data()))
	require.Equal(t, 1, compare.Composite(long.Data(), short.Data()))
}

func TestCompositeColumnOrder(t *testing.T) {
	a, err := tuple.Construct(0, []tuple.Column{tuple.Int64Column(1), tuple.Int64Column(9)})
	require.NoError(t, err)
	b, err := tuple.Construct(0, []tuple.Column{tuple.Int64Column(2), tuple.Int64Column(0)})
	require.NoError(t, err)

	require.Equal(t, -1, compare.Composite(a.Data(), b.Data()))
}

func TestForTypeUnknown(t *testing.T) {
	require.Nil(t, compare.ForType(oid.TEXTOID))
}
