package syntax

import (
	"fmt"
	"io"
	"reflect"

	"github.com/sanity-io/litter"
)

var (
	posType      = reflect.TypeOf(Pos{})
	embeddedBase = map[reflect.Type]bool{
		reflect.TypeOf(node{}): true,
		reflect.TypeOf(expr{}): true,
		reflect.TypeOf(stmt{}): true,
		reflect.TypeOf(decl{}): true,
	}
)

// dumpOptions renders nodes as Go-like literals. Positions are collapsed
// to their "file:line:col" form and the embedded node bases to their
// position, which keeps dumps of equal trees byte-identical.
var dumpOptions = litter.Options{
	StripPackageNames:         true,
	HideZeroValues:            true,
	DisablePointerReplacement: true,
	Separator:                 " ",
	DumpFunc:                  dumpPos,
}

func dumpPos(v reflect.Value, w io.Writer) bool {
	if !embeddedBase[v.Type()] && v.Type() != posType {
		return false
	}
	for v.Type() != posType {
		v = v.Field(0)
	}
	fmt.Fprintf(w, "(%q)", posString(v))
	return true
}

// posString formats a reflected Pos without calling its methods, which
// reflect forbids on values reached through unexported fields.
func posString(v reflect.Value) string {
	p := NewPosOffset(v.Field(0).String(), uint32(v.Field(1).Uint()), uint32(v.Field(2).Uint()), int(v.Field(3).Int()))
	return p.String()
}

// Fdump writes a reflection dump of node to w.
func Fdump(w io.Writer, node Node) {
	io.WriteString(w, dumpOptions.Sdump(node))
	io.WriteString(w, "\n")
}

// Sdump returns the reflection dump of node as a string.
func Sdump(node Node) string {
	return dumpOptions.Sdump(node)
}
