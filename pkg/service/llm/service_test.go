package llm_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/mock"
	"github.com/m-mizutani/gt"
	"github.com/msp-lab/deskhawk/pkg/domain/model"
	"github.com/msp-lab/deskhawk/pkg/domain/types"
	"github.com/msp-lab/deskhawk/pkg/service/llm"
)

func testTickets() []model.Ticket {
	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	return []model.Ticket{
		{
			ID:          101,
			Summary:     "Printer jam in accounting",
			Description: "The big printer on floor 2 keeps jamming, very long internal notes here",
			CreatedAt:   base,
			User:        "Jane Doe",
		},
		{
			ID:          102,
			Summary:     "Printer out of toner again",
			Description: "Second toner replacement this week",
			CreatedAt:   base.Add(24 * time.Hour),
			User:        "Jane Doe",
		},
	}
}

func mockClientReturning(text string) *mock.LLMClientMock {
	return &mock.LLMClientMock{
		NewSessionFunc: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			mockSession := &mock.SessionMock{
				GenerateContentFunc: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return &gollem.Response{Texts: []string{text}}, nil
				},
			}
			return mockSession, nil
		},
	}
}

func TestSummarizeUserPattern_Success(t *testing.T) {
	ctx := context.Background()

	mockClient := mockClientReturning(`{
		"has_pattern": true,
		"issue_type": "Recurring printer hardware failure",
		"significance": "high",
		"user_impact": "User cannot print invoices and loses time daily"
	}`)
	service := llm.NewService(mockClient)

	narrative, err := service.SummarizeUserPattern(ctx, "Jane Doe", testTickets(), 7)

	gt.NoError(t, err)
	gt.NotNil(t, narrative)
	gt.B(t, narrative.HasPattern).True()
	gt.Equal(t, narrative.IssueType, "Recurring printer hardware failure")
	gt.Equal(t, narrative.Significance, types.AlertHigh)
	gt.Equal(t, narrative.UserImpact, "User cannot print invoices and loses time daily")
}

func TestSummarizeUserPattern_PromptContent(t *testing.T) {
	ctx := context.Background()

	var captured string
	mockClient := &mock.LLMClientMock{
		NewSessionFunc: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			mockSession := &mock.SessionMock{
				GenerateContentFunc: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					for _, in := range input {
						if text, ok := in.(gollem.Text); ok {
							captured = string(text)
						}
					}
					return &gollem.Response{
						Texts: []string{`{"has_pattern": false, "issue_type": "none", "significance": "low", "user_impact": "none"}`},
					}, nil
				},
			}
			return mockSession, nil
		},
	}
	service := llm.NewService(mockClient)

	_, err := service.SummarizeUserPattern(ctx, "Jane Doe", testTickets(), 7)
	gt.NoError(t, err)

	gt.B(t, strings.Contains(captured, "Jane Doe")).True()
	gt.B(t, strings.Contains(captured, "101")).True()
	gt.B(t, strings.Contains(captured, "Printer jam in accounting")).True()

	// Descriptions never cross the boundary
	gt.B(t, strings.Contains(captured, "very long internal notes")).False()
}

func TestSummarizeUserPattern_InvalidJSON(t *testing.T) {
	ctx := context.Background()

	service := llm.NewService(mockClientReturning("the user clearly has a printer problem"))

	narrative, err := service.SummarizeUserPattern(ctx, "Jane Doe", testTickets(), 7)

	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, llm.ErrTagInvalidJSON)).True()
	gt.Nil(t, narrative)
}

func TestSummarizeUserPattern_MissingIssueType(t *testing.T) {
	ctx := context.Background()

	service := llm.NewService(mockClientReturning(`{
		"has_pattern": true,
		"significance": "medium",
		"user_impact": "some impact"
	}`))

	narrative, err := service.SummarizeUserPattern(ctx, "Jane Doe", testTickets(), 7)

	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, llm.ErrTagMissingField)).True()
	gt.Nil(t, narrative)
}

func TestSummarizeUserPattern_InvalidSignificance(t *testing.T) {
	ctx := context.Background()

	service := llm.NewService(mockClientReturning(`{
		"has_pattern": true,
		"issue_type": "printer",
		"significance": "catastrophic",
		"user_impact": "bad"
	}`))

	narrative, err := service.SummarizeUserPattern(ctx, "Jane Doe", testTickets(), 7)

	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, llm.ErrTagMissingField)).True()
	gt.Nil(t, narrative)
}

func TestSummarizeUserPattern_EmptyResponse(t *testing.T) {
	ctx := context.Background()

	mockClient := &mock.LLMClientMock{
		NewSessionFunc: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			mockSession := &mock.SessionMock{
				GenerateContentFunc: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return &gollem.Response{Texts: []string{}}, nil
				},
			}
			return mockSession, nil
		},
	}
	service := llm.NewService(mockClient)

	narrative, err := service.SummarizeUserPattern(ctx, "Jane Doe", testTickets(), 7)

	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, llm.ErrTagEmptyResponse)).True()
	gt.Nil(t, narrative)
}

func TestSummarizeUserPattern_NoTickets(t *testing.T) {
	ctx := context.Background()

	service := llm.NewService(mockClientReturning("{}"))

	narrative, err := service.SummarizeUserPattern(ctx, "Jane Doe", nil, 7)

	gt.Error(t, err)
	gt.Nil(t, narrative)
}

func TestSummarizeUserPattern_SessionUsesJSONContentType(t *testing.T) {
	ctx := context.Background()

	var gotOptions []gollem.SessionOption
	mockClient := &mock.LLMClientMock{
		NewSessionFunc: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			gotOptions = options
			mockSession := &mock.SessionMock{
				GenerateContentFunc: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return &gollem.Response{
						Texts: []string{`{"has_pattern": false, "issue_type": "none", "significance": "low", "user_impact": "none"}`},
					}, nil
				},
			}
			return mockSession, nil
		},
	}
	service := llm.NewService(mockClient)

	_, err := service.SummarizeUserPattern(ctx, "Jane Doe", testTickets(), 7)
	gt.NoError(t, err)
	gt.A(t, gotOptions).Longer(0)
}
