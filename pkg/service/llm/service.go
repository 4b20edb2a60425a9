package llm

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"text/template"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/msp-lab/deskhawk/pkg/domain/model"
)

// Error tags for categorization
var (
	ErrTagInvalidJSON     = goerr.NewTag("invalid_json")
	ErrTagMissingField    = goerr.NewTag("missing_field")
	ErrTagEmptyResponse   = goerr.NewTag("empty_response")
	ErrTagTemplateFailure = goerr.NewTag("template_failure")
)

//go:embed templates/*.md
var templateFS embed.FS

// defaultTimeout bounds a single narrative request. There is no retry; a
// timeout is treated as the documented failure case and the caller degrades
// to "no narrative".
const defaultTimeout = 30 * time.Second

// Service produces natural-language narratives for repeat-pattern
// candidates by delegating to an external text-generation service through
// gollem.
type Service struct {
	llmClient gollem.LLMClient
	timeout   time.Duration
}

// Option is a functional option for configuring Service
type Option func(*Service)

// WithTimeout overrides the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewService creates a narrative Service instance
func NewService(llmClient gollem.LLMClient, opts ...Option) *Service {
	s := &Service{
		llmClient: llmClient,
		timeout:   defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// templateTicket is the reduced ticket view sent to the external service.
// Only id, summary and creation timestamp cross the network boundary; long
// descriptions never do, which bounds the payload size.
type templateTicket struct {
	ID        string
	Summary   string
	CreatedAt string
}

type templateData struct {
	User         string
	LookbackDays int
	Tickets      []templateTicket
}

// SummarizeUserPattern asks the text-generation service for a structured
// verdict on one user's recent ticket subset. The response must be a JSON
// object with has_pattern, issue_type, significance and user_impact;
// malformed responses are rejected with tagged errors rather than guessed
// at.
func (s *Service) SummarizeUserPattern(ctx context.Context, user string, tickets []model.Ticket, lookbackDays int) (*model.Narrative, error) {
	if len(tickets) == 0 {
		return nil, goerr.New("no tickets provided for narrative analysis")
	}

	prompt, err := s.renderUserPatternTemplate(user, tickets, lookbackDays)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render narrative template",
			goerr.T(ErrTagTemplateFailure))
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	session, err := s.llmClient.NewSession(ctx, gollem.WithSessionContentType(gollem.ContentTypeJSON))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	response, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate narrative response")
	}

	if len(response.Texts) == 0 || response.Texts[0] == "" {
		return nil, goerr.New("empty response from LLM",
			goerr.T(ErrTagEmptyResponse))
	}

	var narrative model.Narrative
	if err := json.Unmarshal([]byte(response.Texts[0]), &narrative); err != nil {
		return nil, goerr.Wrap(err, "failed to parse narrative response as JSON",
			goerr.V("response", response.Texts[0]),
			goerr.T(ErrTagInvalidJSON))
	}

	if err := narrative.Validate(); err != nil {
		return nil, goerr.Wrap(err, "narrative response violates structured contract",
			goerr.T(ErrTagMissingField),
			goerr.V("response", response.Texts[0]))
	}

	return &narrative, nil
}

// renderUserPatternTemplate renders the embedded analysis prompt
func (s *Service) renderUserPatternTemplate(user string, tickets []model.Ticket, lookbackDays int) (string, error) {
	content, err := templateFS.ReadFile("templates/user_pattern.md")
	if err != nil {
		return "", goerr.Wrap(err, "failed to read narrative template")
	}

	tmpl, err := template.New("user_pattern").Parse(string(content))
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse narrative template")
	}

	data := templateData{
		User:         user,
		LookbackDays: lookbackDays,
		Tickets:      make([]templateTicket, 0, len(tickets)),
	}
	for _, t := range tickets {
		created := "unknown"
		if t.HasCreatedAt() {
			created = t.CreatedAt.Format(time.RFC3339)
		}
		data.Tickets = append(data.Tickets, templateTicket{
			ID:        t.ID.String(),
			Summary:   t.Summary,
			CreatedAt: created,
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute narrative template")
	}

	return buf.String(), nil
}
