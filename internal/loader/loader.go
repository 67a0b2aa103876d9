// Package loader reads workload files into processes ready for admission.
//
// Two formats are understood. The text format is a sequence of blocks:
//
//	proceso <name> <priority>
//	<instruction>
//	...
//	fin proceso
//
// The YAML format is a document with a top-level "processes" list whose
// entries carry name, priority and instructions. In both formats the
// instruction "e/s" is an I/O wait and any other token is one unit of compute.
package loader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/me/procsim/internal/bst"
	"github.com/me/procsim/internal/queue"
	"github.com/me/procsim/pkg/model"
)

const (
	headerKeyword = "proceso"
	footerLine    = "fin proceso"
)

// Format selects the workload syntax.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "text", "yaml" and "yml"; empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text", "txt":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown workload format %q", s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatText
}

// ParseError reports a malformed workload. Nothing from a failed load is kept.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return e.Reason
}

// Parser converts workload files into processes.
type Parser struct {
	logger *slog.Logger
}

// New creates a Parser with the given logger.
func New(logger *slog.Logger) *Parser {
	return &Parser{logger: logger.With("component", "loader")}
}

// LoadFile reads path and parses it in the format implied by its extension.
func (p *Parser) LoadFile(path string) ([]model.Process, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workload: %w", err)
	}
	procs, err := p.Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return procs, nil
}

// Parse dispatches on format.
func (p *Parser) Parse(data []byte, format Format) ([]model.Process, error) {
	if format == FormatYAML {
		return p.ParseYAML(data)
	}
	return p.ParseText(bytes.NewReader(data))
}

// ParseText parses the block text format. Processes are returned in file order.
func (p *Parser) ParseText(r io.Reader) ([]model.Process, error) {
	var (
		procs  []model.Process
		open   *model.Process
		lineNo int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if line == footerLine {
			if open == nil {
				return nil, &ParseError{Line: lineNo, Reason: "\"fin proceso\" without an open block"}
			}
			procs = append(procs, *open)
			open = nil
			continue
		}

		fields := strings.Fields(line)
		if fields[0] == headerKeyword {
			if open != nil {
				return nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("block for %q is not terminated", open.Name())}
			}
			proc, err := parseHeader(fields)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Reason: err.Error()}
			}
			open = &proc
			continue
		}

		if open == nil {
			return nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("instruction %q outside a process block", line)}
		}
		open.AddInstruction(line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan workload: %w", err)
	}
	if open != nil {
		return nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("block for %q is not terminated", open.Name())}
	}

	p.logger.Debug("workload parsed", "format", FormatText, "processes", len(procs))
	p.warnDuplicates(procs)
	return procs, nil
}

func parseHeader(fields []string) (model.Process, error) {
	switch {
	case len(fields) < 2:
		return model.Process{}, fmt.Errorf("process header is missing a name")
	case len(fields) < 3:
		return model.Process{}, fmt.Errorf("process %q is missing a priority", fields[1])
	case len(fields) > 3:
		return model.Process{}, fmt.Errorf("process %q header has unexpected fields %q", fields[1], fields[3:])
	}
	prio, err := strconv.Atoi(fields[2])
	if err != nil {
		return model.Process{}, fmt.Errorf("process %q has invalid priority %q", fields[1], fields[2])
	}
	return model.NewProcess(fields[1], prio), nil
}

type yamlWorkload struct {
	Processes []yaml.Node `yaml:"processes"`
}

type yamlProcess struct {
	Name         string   `yaml:"name"`
	Priority     *int     `yaml:"priority"`
	Instructions []string `yaml:"instructions"`
}

// ParseYAML parses the YAML workload format.
func (p *Parser) ParseYAML(data []byte) ([]model.Process, error) {
	var doc yamlWorkload
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("YAML parse error: %v", err)}
	}

	procs := make([]model.Process, 0, len(doc.Processes))
	for i := range doc.Processes {
		node := &doc.Processes[i]
		var yp yamlProcess
		if err := node.Decode(&yp); err != nil {
			return nil, &ParseError{Line: node.Line, Reason: err.Error()}
		}
		if yp.Name == "" {
			return nil, &ParseError{Line: node.Line, Reason: fmt.Sprintf("process %d has no name", i+1)}
		}
		if yp.Priority == nil {
			return nil, &ParseError{Line: node.Line, Reason: fmt.Sprintf("process %q is missing a priority", yp.Name)}
		}
		procs = append(procs, model.NewProcess(yp.Name, *yp.Priority, yp.Instructions...))
	}

	p.logger.Debug("workload parsed", "format", FormatYAML, "processes", len(procs))
	p.warnDuplicates(procs)
	return procs, nil
}

// DuplicateNames returns, in ascending order, every name carried by more than
// one process. Duplicates are legal; the scheduler tells them apart.
func DuplicateNames(procs []model.Process) []string {
	seen := bst.NewOrdered[string]()
	dups := queue.NewOrdered[string]()
	for i := range procs {
		name := procs[i].Name()
		if _, ok := seen.Search(name); !ok {
			seen.Insert(name)
			continue
		}
		if _, ok := dups.Search(name); !ok {
			dups.InsertOrdered(name)
		}
	}
	return dups.Values()
}

func (p *Parser) warnDuplicates(procs []model.Process) {
	for _, name := range DuplicateNames(procs) {
		p.logger.Warn("duplicate process name", "process", name)
	}
}
