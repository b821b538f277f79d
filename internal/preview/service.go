package preview

import (
	"context"
	"errors"
	"fmt"

	"github.com/aescanero/dago-node-preview/internal/eval/cel"
	"github.com/aescanero/dago-node-preview/internal/eval/template"
	"github.com/aescanero/dago-node-preview/internal/substitute"
	"github.com/aescanero/dago-node-preview/internal/variables"
	"go.uber.org/zap"
)

// DefaultMaxTemplateBytes caps template size when Options leaves it unset
const DefaultMaxTemplateBytes = 1 << 20

// ErrTemplateTooLarge is returned for templates over the configured limit
var ErrTemplateTooLarge = errors.New("template exceeds maximum size")

// Options configures a Service
type Options struct {
	// Gate is the CEL render gate; empty selects cel.DefaultGate.
	Gate string
	// MaxTemplateBytes caps template size; zero selects DefaultMaxTemplateBytes.
	MaxTemplateBytes int
	// PatternCacheSize bounds the substitution pattern cache.
	PatternCacheSize int
}

// Request is a single preview request
type Request struct {
	ID         string          `json:"id,omitempty"`
	Template   string          `json:"template"`
	Rows       []variables.Row `json:"rows"`
	Shell      bool            `json:"shell,omitempty"`
	Background string          `json:"background,omitempty"`
}

// Result is the outcome of a preview request
type Result struct {
	ID         string           `json:"id,omitempty"`
	Rendered   bool             `json:"rendered"`
	Output     string           `json:"output,omitempty"`
	Document   string           `json:"document,omitempty"`
	Unresolved []string         `json:"unresolved,omitempty"`
	Variables  *variables.Map   `json:"variables,omitempty"`
	Report     variables.Report `json:"report"`
	Reason     string           `json:"reason,omitempty"`
}

// Service renders previews
type Service struct {
	gate     *cel.Gate
	renderer *substitute.Renderer
	shell    *template.Engine
	maxBytes int
	logger   *zap.Logger
}

// NewService creates a preview service
func NewService(opts Options, logger *zap.Logger) (*Service, error) {
	gate, err := cel.NewGate(cel.NewEvaluator(), opts.Gate)
	if err != nil {
		return nil, err
	}

	maxBytes := opts.MaxTemplateBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxTemplateBytes
	}

	return &Service{
		gate:     gate,
		renderer: substitute.NewRenderer(opts.PatternCacheSize),
		shell:    template.NewEngine(),
		maxBytes: maxBytes,
		logger:   logger,
	}, nil
}

// Validate judges the rows of a request
func (s *Service) Validate(rows []variables.Row) variables.Report {
	return variables.Check(rows)
}

// Render substitutes the request rows into its template without consulting
// the gate. Rows with empty, malformed or duplicated keys are left out.
func (s *Service) Render(req *Request) (*Result, error) {
	if err := s.checkSize(req); err != nil {
		return nil, err
	}

	result := &Result{
		ID:     req.ID,
		Report: variables.Check(req.Rows),
	}
	if err := s.render(req, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Preview validates the rows, evaluates the render gate and renders when the
// gate is open. A closed gate is not an error; the result carries the report.
func (s *Service) Preview(ctx context.Context, req *Request) (*Result, error) {
	if err := s.checkSize(req); err != nil {
		return nil, err
	}

	result := &Result{
		ID:     req.ID,
		Report: variables.Check(req.Rows),
	}

	allowed, err := s.gate.Allow(ctx, result.Report)
	if err != nil {
		s.logger.Warn("render gate evaluation failed",
			zap.String("gate", s.gate.Expression()),
			zap.Error(err),
		)
		result.Reason = fmt.Sprintf("render gate failed: %v", err)
		return result, nil
	}

	if !allowed {
		s.logger.Debug("render gate closed",
			zap.String("request_id", req.ID),
			zap.Int("invalid", result.Report.InvalidCount),
			zap.Strings("duplicates", result.Report.Duplicates),
		)
		result.Reason = "variable rows are not valid"
		return result, nil
	}

	if err := s.render(req, result); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) render(req *Request, result *Result) error {
	vars := variables.BuildMap(req.Rows)

	result.Output = s.renderer.Render(req.Template, vars)
	result.Unresolved = substitute.Unresolved(req.Template, vars)
	result.Variables = vars
	result.Rendered = true

	if req.Shell {
		doc, err := s.shell.Shell(result.Output, template.NormalizeBackground(req.Background))
		if err != nil {
			return fmt.Errorf("failed to build preview document: %w", err)
		}
		result.Document = doc
	}

	s.logger.Debug("rendered preview",
		zap.String("request_id", req.ID),
		zap.Int("variables", vars.Len()),
		zap.Int("template_bytes", len(req.Template)),
		zap.Int("unresolved", len(result.Unresolved)),
	)

	return nil
}

func (s *Service) checkSize(req *Request) error {
	if req == nil {
		return fmt.Errorf("request is required")
	}
	if len(req.Template) > s.maxBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrTemplateTooLarge, len(req.Template), s.maxBytes)
	}
	return nil
}
