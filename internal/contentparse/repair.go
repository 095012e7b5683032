package contentparse

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"

	"civic-quiz/internal/domain"
)

// Strategy names, in the order the chain tries them.
const (
	StrategyDirect        = "direct"
	StrategyCleanup       = "cleanup"
	StrategyStructural    = "structural"
	StrategyRepairLibrary = "repair-library"
	StrategyReconstruct   = "reconstruct"
	StrategyFallback      = "fallback-extract"
)

var (
	errEmptyInput   = errors.New("input is empty")
	errNotStructure = errors.New("parsed value is not an object or array")
	errNoCandidate  = errors.New("no JSON-like span found")
)

// Repairer is a general-purpose JSON normalizer used as a late fallback.
type Repairer interface {
	Repair(text string) (string, error)
}

// RepairFunc adapts a plain function to Repairer.
type RepairFunc func(text string) (string, error)

func (f RepairFunc) Repair(text string) (string, error) {
	return f(text)
}

// LibraryRepairer delegates to github.com/kaptinlin/jsonrepair.
var LibraryRepairer Repairer = RepairFunc(jsonrepair.JSONRepair)

// Parser runs the progressive repair chain. A Parser holds no mutable state
// and may be shared between goroutines.
type Parser struct {
	repairer Repairer
	logger   *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithRepairer replaces the repair library used by the late strategies.
func WithRepairer(r Repairer) Option {
	return func(p *Parser) {
		if r != nil {
			p.repairer = r
		}
	}
}

// WithLogger makes the parser log each strategy at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewParser returns a Parser backed by the jsonrepair library.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		repairer: LibraryRepairer,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse runs the chain with the default parser.
func Parse(raw string) domain.ParsedContent {
	return defaultParser.Parse(raw)
}

type strategy struct {
	name string
	run  func(p *Parser, raw string) (interface{}, error)
}

var chain = []strategy{
	{StrategyDirect, func(p *Parser, raw string) (interface{}, error) { return parseStructured(raw) }},
	{StrategyCleanup, (*Parser).cleanupParse},
	{StrategyStructural, (*Parser).structuralParse},
	{StrategyRepairLibrary, (*Parser).libraryParse},
	{StrategyReconstruct, (*Parser).reconstructParse},
	{StrategyFallback, (*Parser).fallbackParse},
}

// Parse tries each strategy in turn until one yields an object or array.
// Every attempt leaves a diagnostic in Errors whatever its outcome.
// Repaired is set when a strategy other than the direct parse succeeded.
// Parse never panics; exhausting the chain yields IsValid false and a nil
// Content.
func (p *Parser) Parse(raw string) (result domain.ParsedContent) {
	result.Errors = []string{}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Content parser panicked", zap.Any("panic", r))
			result.IsValid = false
			result.Content = nil
			result.Repaired = false
			result.Strategy = ""
			result.Errors = append(result.Errors, fmt.Sprintf("internal: parser panic: %v", r))
		}
	}()

	for _, s := range chain {
		value, err := s.run(p, raw)
		attempt := domain.ParseAttempt{Strategy: s.name, Succeeded: err == nil, Value: value}
		if err != nil {
			attempt.Diagnostics = []string{err.Error()}
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", s.name, err))
			p.logger.Debug("Parse strategy failed", zap.String("strategy", s.name), zap.Error(err))
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: succeeded", s.name))
			p.logger.Debug("Parse strategy succeeded", zap.String("strategy", s.name))
		}
		result.Attempts = append(result.Attempts, attempt)
		if err == nil {
			result.IsValid = true
			result.Content = value
			result.Strategy = s.name
			result.Repaired = s.name != StrategyDirect
			return result
		}
	}
	p.logger.Debug("All parse strategies exhausted", zap.Int("input_length", len(raw)))
	return result
}

// parseStructured decodes text and accepts only objects and arrays.
func parseStructured(text string) (interface{}, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errEmptyInput
	}
	var v interface{}
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return v, nil
	default:
		return nil, errNotStructure
	}
}

var (
	fencePattern = regexp.MustCompile("```[A-Za-z]*[ \t]*\r?\n?")
	// Conversational lead-ins models put before the payload.
	prosePattern = regexp.MustCompile(`(?im)^[ \t]*(?:here(?:'s| is| are)|below is|sure|certainly|of course|okay|ok)\b[^\n{\[]*:?[ \t]*\r?\n?`)
)

// stripWrapping removes markdown fences and conversational lead-ins outside
// string literals. Backticks inside values are content.
func stripWrapping(raw string) string {
	s := mapStructural(raw, func(seg string) string {
		seg = fencePattern.ReplaceAllString(seg, "")
		return prosePattern.ReplaceAllString(seg, "")
	})
	return strings.TrimSpace(s)
}

// payloadCandidates returns the text from the first opener to the end, and
// the text from the first opener to the last matching closer. Both are
// completed with Complete.
func payloadCandidates(raw string) []string {
	s := stripWrapping(raw)
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return nil
	}
	closer := "}"
	if s[start] == '[' {
		closer = "]"
	}
	candidates := []string{Complete(s[start:])}
	if end := strings.LastIndex(s, closer); end > start && end+1 < len(s) {
		trimmed := Complete(s[start : end+1])
		if trimmed != candidates[0] {
			candidates = append(candidates, trimmed)
		}
	}
	return candidates
}

func (p *Parser) cleanupParse(raw string) (interface{}, error) {
	candidates := payloadCandidates(raw)
	if len(candidates) == 0 {
		return nil, errNoCandidate
	}
	var lastErr error
	for _, c := range candidates {
		v, err := parseStructured(c)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (p *Parser) structuralParse(raw string) (interface{}, error) {
	candidates := payloadCandidates(raw)
	if len(candidates) == 0 {
		return nil, errNoCandidate
	}
	var lastErr error
	for _, c := range candidates {
		v, err := parseStructured(Complete(structuralRepair(c)))
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (p *Parser) libraryParse(raw string) (interface{}, error) {
	// Without an opener the library turns plain prose into an array of strings.
	candidates := payloadCandidates(raw)
	if len(candidates) == 0 {
		return nil, errNoCandidate
	}
	var lastErr error
	for _, c := range candidates {
		v, err := p.repairAndParse(c)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (p *Parser) reconstructParse(raw string) (interface{}, error) {
	v := p.Reconstruct(raw)
	if v == nil {
		return nil, errors.New("no recoverable structure")
	}
	return v, nil
}

var (
	objectSpanPattern = regexp.MustCompile(`\{[\s\S]*\}`)
	arraySpanPattern  = regexp.MustCompile(`\[[\s\S]*\]`)
)

func (p *Parser) fallbackParse(raw string) (interface{}, error) {
	for _, re := range []*regexp.Regexp{objectSpanPattern, arraySpanPattern} {
		if m := re.FindString(raw); m != "" {
			if v, err := parseStructured(m); err == nil {
				return v, nil
			}
			if v, err := p.repairAndParse(m); err == nil {
				return v, nil
			}
		}
	}
	if !strings.ContainsAny(raw, "{[") {
		return nil, errNoCandidate
	}
	return p.repairAndParse(raw)
}

// repairAndParse runs the repair library and parses its output. A panic in
// the library is reported as an error.
func (p *Parser) repairAndParse(text string) (v interface{}, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, errEmptyInput
	}
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fmt.Errorf("repair library panic: %v", r)
		}
	}()
	repaired, err := p.repairer.Repair(text)
	if err != nil {
		return nil, fmt.Errorf("repair library: %w", err)
	}
	return parseStructured(repaired)
}
