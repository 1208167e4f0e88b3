package repl

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"climb/object"
)

// Formatter は評価結果を表示用の文字列にする。
// ロケールを指定すると整数に桁区切りを入れる（en: 1,234,567 / de: 1.234.567）。
type Formatter struct {
	p *message.Printer
}

// NewFormatter は locale 用の Formatter を返す。locale が空なら桁区切りなし。
func NewFormatter(locale string) (*Formatter, error) {
	if locale == "" {
		return &Formatter{}, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Formatter{p: message.NewPrinter(tag)}, nil
}

// Format は obj を文字列にする。
func (f *Formatter) Format(obj object.Object) string {
	if i, ok := obj.(*object.Integer); ok && f.p != nil {
		return f.p.Sprintf("%v", number.Decimal(i.Value))
	}
	return obj.Inspect()
}
