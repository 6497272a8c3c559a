// Package annotation parses the curation notes attached to bibliography
// entries: a readable tooltip plus pragma directives that steer the
// citation graph.
package annotation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matsen/citegraph/internal/reference"
)

// DefaultPrefix marks a notes line as a directive.
const DefaultPrefix = "#pragma"

// Directive commands.
const (
	CommandSet           = "set"
	CommandFalsePositive = "falsepositive"
	CommandReplaces      = "replaces"
)

// KeyNodeColor is the only key accepted by the set command.
const KeyNodeColor = "nodecolor"

// Parse errors. All are fatal for the run.
var (
	ErrUnknownDirective   = errors.New("unknown directive")
	ErrUnknownSetKey      = errors.New("unknown set key")
	ErrMalformedDirective = errors.New("malformed directive")
)

// Directive is one parsed pragma line. The concrete types are
// SetDirective, FalsePositiveDirective and ReplacesDirective.
type Directive interface {
	Apply(p *reference.Paper)
	String() string
	directive()
}

// SetDirective overrides a display property.
type SetDirective struct {
	Key   string
	Value string
}

// FalsePositiveDirective suppresses matching against a candidate.
type FalsePositiveDirective struct {
	CiteID string
}

// ReplacesDirective marks the annotated paper as superseding another.
type ReplacesDirective struct {
	CiteID string
}

func (SetDirective) directive()           {}
func (FalsePositiveDirective) directive() {}
func (ReplacesDirective) directive()      {}

// Apply sets the property on p. Only KeyNodeColor exists; the parser
// rejects anything else.
func (d SetDirective) Apply(p *reference.Paper) {
	if d.Key == KeyNodeColor {
		p.NodeColor = d.Value
	}
}

func (d FalsePositiveDirective) Apply(p *reference.Paper) { p.AddSkip(d.CiteID) }
func (d ReplacesDirective) Apply(p *reference.Paper)      { p.AddReplaces(d.CiteID) }

func (d SetDirective) String() string {
	return fmt.Sprintf("%s %s=%s", CommandSet, d.Key, d.Value)
}

func (d FalsePositiveDirective) String() string {
	return CommandFalsePositive + " " + d.CiteID
}

func (d ReplacesDirective) String() string {
	return CommandReplaces + " " + d.CiteID
}

// ParseDirective parses the text following the pragma prefix,
// "<command> <param>".
func ParseDirective(s string) (Directive, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty directive", ErrMalformedDirective)
	}

	command := fields[0]
	switch command {
	case CommandSet, CommandFalsePositive, CommandReplaces:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDirective, command)
	}

	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: %q takes exactly one parameter, got %q", ErrMalformedDirective, command, s)
	}
	param := fields[1]

	switch command {
	case CommandSet:
		key, value, ok := strings.Cut(param, "=")
		if !ok || value == "" {
			return nil, fmt.Errorf("%w: set expects key=value, got %q", ErrMalformedDirective, param)
		}
		if key != KeyNodeColor {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSetKey, key)
		}
		return SetDirective{Key: key, Value: value}, nil
	case CommandFalsePositive:
		return FalsePositiveDirective{CiteID: param}, nil
	default:
		return ReplacesDirective{CiteID: param}, nil
	}
}

// ApplyAll applies directives to p in order, so a later set overrides an earlier one.
func ApplyAll(p *reference.Paper, directives []Directive) {
	for _, d := range directives {
		d.Apply(p)
	}
}
