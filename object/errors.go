package object

import (
	"errors"
	"fmt"

	"climb/token"
)

// ErrorKind はパーサーと評価器が返すエラーの種類。
type ErrorKind int

const (
	Unknown ErrorKind = iota
	InvalidAtom
	UnexpectedToken
	VariableNotInit
	FuncNotDef
	MainNotDef
	TypeMismatch
	DivisionByZero
	NegativeExponent
	Overflow
	StackOverflow
)

var kindNames = map[ErrorKind]string{
	Unknown:          "unknown error",
	InvalidAtom:      "invalid atom",
	UnexpectedToken:  "unexpected token",
	VariableNotInit:  "variable not initialised",
	FuncNotDef:       "function not defined",
	MainNotDef:       "main not defined",
	TypeMismatch:     "type mismatch",
	DivisionByZero:   "division by zero",
	NegativeExponent: "negative exponent",
	Overflow:         "integer overflow",
	StackOverflow:    "stack overflow",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error はパースまたは評価の失敗を表す。
// Pos はわかる場合だけ設定される。
type Error struct {
	Kind    ErrorKind
	Message string
	Pos     token.Position
}

// NewError は位置情報なしのエラーを生成する。
func NewError(kind ErrorKind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// NewErrorAt は位置情報付きのエラーを生成する。
func NewErrorAt(pos token.Position, kind ErrorKind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...), Pos: pos}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + msg
	}
	return msg
}

// Is は種類が同じ *Error を等しいとみなす。
// errors.Is(err, &object.Error{Kind: object.Overflow}) のように使う。
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf は err の連鎖から *Error を探し、その種類を返す。
// 見つからなければ Unknown。
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
