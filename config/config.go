// Package config はインタプリタの設定ファイル（YAML）を読み込む。
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"fortio.org/log"
	"gopkg.in/yaml.v3"

	"climb/evaluator"
)

// Config はインタプリタの実行時設定。
// 設定ファイルに書かれていない項目は Default の値のまま残る。
type Config struct {
	// MaxCallDepth は関数呼び出しのネストの上限。
	MaxCallDepth int `yaml:"max_call_depth"`
	// TraceParser はパーサーのトレースを verbose ログに出すかどうか。
	TraceParser bool `yaml:"trace_parser"`
	// LogLevel は debug, verbose, info, warning, error のいずれか。
	LogLevel string `yaml:"log_level"`
	// Locale は結果の数値を表示するときの言語タグ（例: "en", "de-CH"）。
	// 空なら桁区切りなしで表示する。
	Locale string `yaml:"locale"`
	// CheckRecursion が true なら実行前に再帰している関数を警告する。
	CheckRecursion bool `yaml:"check_recursion"`
}

var levels = map[string]log.Level{
	"debug":   log.Debug,
	"verbose": log.Verbose,
	"info":    log.Info,
	"warning": log.Warning,
	"error":   log.Error,
}

// Default は設定ファイルがないときの設定を返す。
func Default() *Config {
	return &Config{
		MaxCallDepth: evaluator.DefaultMaxCallDepth,
		LogLevel:     "info",
	}
}

// Load は path の YAML を読み込み、検証済みの設定を返す。
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse は r から YAML を読み、Default に上書きする。
// 知らないキーはエラーにする。空の入力は Default と同じ。
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は値の範囲を確かめる。
func (c *Config) Validate() error {
	var issues []string
	if c.MaxCallDepth <= 0 {
		issues = append(issues, fmt.Sprintf("max_call_depth must be positive, got %d", c.MaxCallDepth))
	}
	if _, ok := levels[strings.ToLower(c.LogLevel)]; !ok {
		issues = append(issues, fmt.Sprintf("unknown log_level %q (want one of %s)",
			c.LogLevel, strings.Join(levelNames(), ", ")))
	}
	if len(issues) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(issues, "; "))
	}
	return nil
}

// Level は LogLevel を fortio.org/log のレベルに変換する。
// 不明な名前なら log.Info。
func (c *Config) Level() log.Level {
	if lvl, ok := levels[strings.ToLower(c.LogLevel)]; ok {
		return lvl
	}
	return log.Info
}

// EvaluatorOptions は設定を評価器のオプションに変換する。
func (c *Config) EvaluatorOptions() []evaluator.Option {
	return []evaluator.Option{evaluator.WithMaxCallDepth(c.MaxCallDepth)}
}

func levelNames() []string {
	names := make([]string, 0, len(levels))
	for name := range levels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
