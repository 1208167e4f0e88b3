// parser_tracing.go はパーサーのデバッグ用トレーシング機能を提供する。
// WithTrace(true) で生成したパーサーは、各解析関数の入口と出口で
// verbose レベルのログを出力する。
package parser

import (
	"strings"

	"fortio.org/log"
)

const traceIdentPlaceholder string = "\t"

func (p *Parser) tracePrint(fs string) {
	log.LogVf("%s%s (%s %q)", strings.Repeat(traceIdentPlaceholder, p.traceLevel-1), fs,
		p.curToken.Type, p.curToken.Literal)
}

// trace は解析関数の入口で呼ぶ。"BEGIN <msg>" を出力してインデントを増やす。
func (p *Parser) trace(msg string) string {
	if !p.tracing {
		return msg
	}
	p.traceLevel++
	p.tracePrint("BEGIN " + msg)
	return msg
}

// untrace は解析関数の出口で呼ぶ。"END <msg>" を出力してインデントを減らす。
func (p *Parser) untrace(msg string) {
	if !p.tracing {
		return
	}
	p.tracePrint("END " + msg)
	p.traceLevel--
}
