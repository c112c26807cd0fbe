// Package scankey implements predicate atoms over a single column: an
// attribute number, a comparison strategy, an argument type, and the
// argument bytes, combined by AND across a scan's key array.
package scankey

import (
	"github.com/litedb-go/litedb/compare"
	"github.com/litedb-go/litedb/lerrors"
	"github.com/litedb-go/litedb/oid"
)

// Strategy is one of the five comparison operators. Numbering matches the
// BTxxxStrategyNumber constants this core is modeled on, so that strategy
// values can be compared/ordered the same way.
type Strategy uint16

const (
	Less Strategy = iota + 1
	LessEqual
	Equal
	GreaterEqual
	Greater
)

func (s Strategy) String() string {
	switch s {
	case Less:
		return "<"
	case LessEqual:
		return "<="
	case Equal:
		return "="
	case GreaterEqual:
		return ">="
	case Greater:
		return ">"
	default:
		return "?"
	}
}

// Key is a single predicate atom: attno 0 denotes the synthetic rowid.
type Key struct {
	Attno    int16
	Strategy Strategy
	Type     oid.Type
	Argument []byte
}

// New builds a Key, mirroring ScanKey::Init.
func New(attno int16, strategy Strategy, typ oid.Type, argument []byte) Key {
	return Key{Attno: attno, Strategy: strategy, Type: typ, Argument: argument}
}

// Compare runs the typed comparator as cmp(argument, column).
func (k Key) Compare(column []byte) (int, error) {
	cmp := compare.ForType(k.Type)
	if cmp == nil {
		return 0, lerrors.New(lerrors.Invalid, "scankey: no comparator for type %v", k.Type)
	}
	return cmp(k.Argument, column), nil
}

// Satisfies interprets Compare's sign per Strategy. Because Compare is
// cmp(argument, column), "<" is satisfied when Compare > 0 (the column is
// less than the argument), and so on — this sign convention is
// load-bearing and must not be "simplified".
func (k Key) Satisfies(column []byte) (bool, error) {
	ret, err := k.Compare(column)
	if err != nil {
		return false, err
	}
	switch k.Strategy {
	case Less:
		return ret > 0, nil
	case LessEqual:
		return ret >= 0, nil
	case Equal:
		return ret == 0, nil
	case GreaterEqual:
		return ret <= 0, nil
	case Greater:
		return ret < 0, nil
	default:
		return false, lerrors.New(lerrors.Invalid, "scankey: invalid strategy %d", k.Strategy)
	}
}
