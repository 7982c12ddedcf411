package syntax

import (
	"github.com/projectdiscovery/lexgen/machine"
)

// Expr is an immutable regular expression node. Every node knows how to
// append its Thompson fragment to an NFA builder: Emit allocates fresh node
// ids from alloc and returns the fragment's entry and exit nodes.
type Expr interface {
	Emit(b *machine.NFABuilder, alloc *int64) (entry, exit int64)
	String() string
}

func nextNode(alloc *int64) int64 {
	id := *alloc
	*alloc++
	return id
}

// CharSetExpr consumes exactly one byte matching Set.
type CharSetExpr struct {
	Set CharSet
}

// LiteralExpr consumes the byte sequence Value. Escapes are resolved during
// parsing; Value holds raw bytes.
type LiteralExpr struct {
	Value []byte
}

// ConcatExpr matches Left followed by Right.
type ConcatExpr struct {
	Left, Right Expr
}

// AltExpr matches either Left or Right.
type AltExpr struct {
	Left, Right Expr
}

// StarExpr matches zero or more repetitions of Inner.
type StarExpr struct {
	Inner Expr
}

// PlusExpr matches one or more repetitions of Inner.
type PlusExpr struct {
	Inner Expr
}

// OptionalExpr matches Inner or the empty string.
type OptionalExpr struct {
	Inner Expr
}

// Chars returns an expression matching one byte of set.
func Chars(set CharSet) Expr {
	return &CharSetExpr{Set: set}
}

// Char returns an expression matching the single byte ch.
func Char(ch byte) Expr {
	return &CharSetExpr{Set: Singleton(ch)}
}

// Literal returns an expression matching s byte for byte.
func Literal(s string) Expr {
	return &LiteralExpr{Value: []byte(s)}
}

// Concat returns an expression matching left followed by right.
func Concat(left, right Expr) Expr {
	return &ConcatExpr{Left: left, Right: right}
}

// Alt returns an expression matching either operand.
func Alt(left, right Expr) Expr {
	return &AltExpr{Left: left, Right: right}
}

// Star returns the Kleene closure of inner.
func Star(inner Expr) Expr {
	return &StarExpr{Inner: inner}
}

// Plus returns an expression matching one or more repetitions of inner.
func Plus(inner Expr) Expr {
	return &PlusExpr{Inner: inner}
}

// Optional returns an expression matching inner or nothing.
func Optional(inner Expr) Expr {
	return &OptionalExpr{Inner: inner}
}

// Dot returns the wildcard: any byte, newline included.
func Dot() Expr {
	return &CharSetExpr{Set: AnyByte()}
}

func (e *CharSetExpr) Emit(b *machine.NFABuilder, alloc *int64) (int64, int64) {
	start := nextNode(alloc)
	end := nextNode(alloc)
	b.TransitionSet(start, end, e.Set.Bytes())
	return start, end
}

func (e *LiteralExpr) Emit(b *machine.NFABuilder, alloc *int64) (int64, int64) {
	start := nextNode(alloc)
	curr := start
	for _, ch := range e.Value {
		next := nextNode(alloc)
		b.Transition(curr, next, ch)
		curr = next
	}
	return start, curr
}

func (e *ConcatExpr) Emit(b *machine.NFABuilder, alloc *int64) (int64, int64) {
	leftStart, leftEnd := e.Left.Emit(b, alloc)
	rightStart, rightEnd := e.Right.Emit(b, alloc)
	b.Epsilon(leftEnd, rightStart)
	return leftStart, rightEnd
}

func (e *AltExpr) Emit(b *machine.NFABuilder, alloc *int64) (int64, int64) {
	start := nextNode(alloc)
	end := nextNode(alloc)
	leftStart, leftEnd := e.Left.Emit(b, alloc)
	rightStart, rightEnd := e.Right.Emit(b, alloc)
	b.Epsilon(start, leftStart)
	b.Epsilon(start, rightStart)
	b.Epsilon(leftEnd, end)
	b.Epsilon(rightEnd, end)
	return start, end
}

func (e *StarExpr) Emit(b *machine.NFABuilder, alloc *int64) (int64, int64) {
	start := nextNode(alloc)
	end := nextNode(alloc)
	innerStart, innerEnd := e.Inner.Emit(b, alloc)
	b.Epsilon(innerStart, innerEnd)
	b.Epsilon(innerEnd, innerStart)
	b.Epsilon(start, innerStart)
	b.Epsilon(innerEnd, end)
	return start, end
}

// Plus desugars to inner followed by inner*.
func (e *PlusExpr) Emit(b *machine.NFABuilder, alloc *int64) (int64, int64) {
	return Concat(e.Inner, Star(e.Inner)).Emit(b, alloc)
}

func (e *OptionalExpr) Emit(b *machine.NFABuilder, alloc *int64) (int64, int64) {
	start := nextNode(alloc)
	end := nextNode(alloc)
	innerStart, innerEnd := e.Inner.Emit(b, alloc)
	b.Epsilon(start, end)
	b.Epsilon(start, innerStart)
	b.Epsilon(innerEnd, end)
	return start, end
}
