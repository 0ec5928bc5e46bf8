package maths

import (
	"strconv"
	"strings"
)

// node is a node in the expression tree. Trees are shallow: a sequence holds
// one flat infix run, and only call arguments nest.
type node struct {
	kind nodeKind

	num  float64
	name string
	op   Operator

	// list is the elements of a sequence or the arguments of a call. Each
	// argument is itself a sequence.
	list []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // push num
	nodeVar  // push lookup(name)
	nodeOp   // operator or bracket sentinel
	nodeCall // call name with args in list
	nodeSeq  // infix run in list
)

var nodeNames = [...]string{
	nodeNone: "None",
	nodeNum:  "Num",
	nodeVar:  "Var",
	nodeOp:   "Op",
	nodeCall: "Call",
	nodeSeq:  "Seq",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeNames[k]
}

// operand returns whether the node evaluates to a value.
func (n *node) operand() bool {
	switch n.kind {
	case nodeNum, nodeVar, nodeCall, nodeSeq:
		return true
	default:
		return false
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNum:
		b.WriteString(strconv.FormatFloat(n.num, 'f', -1, 64))
	case nodeVar:
		b.WriteString(n.name)
	case nodeOp:
		b.WriteString(n.op.String())
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		for i, arg := range n.list {
			if i > 0 {
				b.WriteString(", ")
			}
			arg.fmt(b)
		}
		b.WriteByte(')')
	case nodeSeq:
		for i, e := range n.list {
			if i > 0 {
				b.WriteByte(' ')
			}
			e.fmt(b)
		}
	default:
		// Invalid nodes use invalid characters.
		b.WriteString("$" + n.kind.String() + "$")
	}
}

// vars adds the names of all variables referenced under n to names.
func (n *node) vars(names map[string]bool) {
	if n.kind == nodeVar {
		names[n.name] = true
	}
	for _, e := range n.list {
		e.vars(names)
	}
}
