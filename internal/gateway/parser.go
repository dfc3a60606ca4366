package gateway

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// DedupPolicy decides what happens to an accepted record once a later
// section produces the same fingerprint.
type DedupPolicy string

const (
	// KeepFirst rejects the later section and keeps the accepted one.
	KeepFirst DedupPolicy = "keep-first"
	// DropAll rejects both, and every later section with that fingerprint.
	DropAll DedupPolicy = "drop-all"
)

var DedupPolicies = []string{string(KeepFirst), string(DropAll)}

func ParseDedupPolicy(s string) (DedupPolicy, error) {
	switch DedupPolicy(s) {
	case "":
		return KeepFirst, nil
	case KeepFirst, DropAll:
		return DedupPolicy(s), nil
	}
	return "", fmt.Errorf("unknown dedup policy %q", s)
}

type Options struct {
	FlagStrategy FlagStrategy
	Dedup        DedupPolicy
	// AllowedOptions extends the set of recognized option names. Their values
	// are kept on the record and never influence the report.
	AllowedOptions []string
	// Logger receives a debug trail of rejected sections. Nil disables it.
	Logger *log.Logger
}

type extraction struct {
	book     AddressBook
	strategy FlagStrategy
	dedup    DedupPolicy
	logger   *log.Logger

	accepted []*Record
	banned   map[string]bool
}

// Extract parses gateway configuration text and returns the finalized
// records in section order, without invalid and duplicate ones.
func Extract(text string, book AddressBook, opts Options) ([]*Record, error) {
	strategy, err := ParseFlagStrategy(string(opts.FlagStrategy))
	if err != nil {
		return nil, err
	}
	dedup, err := ParseDedupPolicy(string(opts.Dedup))
	if err != nil {
		return nil, err
	}
	e := &extraction{
		book:     book,
		strategy: strategy,
		dedup:    dedup,
		logger:   opts.Logger,
		banned:   make(map[string]bool),
	}
	options := newDispatcher(opts.AllowedOptions)

	var current *builder
	for i, line := range splitLines(text) {
		lineNo := i + 1
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' || line[len(line)-1] == '=' {
			continue
		}

		if line[0] == '[' {
			title := line[1:]
			if index := strings.IndexByte(title, ']'); index != -1 {
				title = title[:index]
			}
			if title = strings.TrimSpace(title); title == "" {
				return nil, &MalformedLineError{Line: lineNo, Text: line, Reason: "empty section title"}
			}
			if current != nil {
				e.commit(current)
			}
			current = newBuilder(title)
			continue
		}

		if strings.Count(line, "=") != 1 {
			return nil, &MalformedLineError{Line: lineNo, Text: line, Reason: "expected exactly one '='"}
		}
		if current == nil {
			return nil, &MalformedLineError{Line: lineNo, Text: line, Reason: "option outside of a section"}
		}
		index := strings.IndexByte(line, '=')
		option, value := strings.TrimSpace(line[:index]), strings.TrimSpace(line[index+1:])
		set, ok := options[option]
		if !ok {
			return nil, &UnrecognizedOptionError{Line: lineNo, Option: option}
		}
		if reason := set(current, value); reason != "" {
			return nil, &MalformedLineError{Line: lineNo, Text: line, Reason: reason}
		}
	}
	if current != nil {
		e.commit(current)
	}
	return e.accepted, nil
}

func (e *extraction) commit(b *builder) {
	r := b.finalize(e.book, e.strategy)
	if !r.valid() {
		e.debug("dropped gateway without known addresses", "title", r.title)
		return
	}
	if e.banned[r.fingerprint] {
		e.debug("dropped duplicate gateway", "title", r.title)
		return
	}
	for i, other := range e.accepted {
		if other.fingerprint != r.fingerprint {
			continue
		}
		e.debug("dropped duplicate gateway", "title", r.title, "duplicate_of", other.title)
		if e.dedup == DropAll {
			e.accepted = append(e.accepted[:i], e.accepted[i+1:]...)
			e.banned[r.fingerprint] = true
			e.debug("dropped duplicated gateway", "title", other.title)
		}
		return
	}
	e.accepted = append(e.accepted, r)
}

func (e *extraction) debug(msg string, keyvals ...interface{}) {
	if e.logger != nil {
		e.logger.Debug(msg, keyvals...)
	}
}
