package http_test

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/msp-lab/deskhawk/pkg/analysis"
	httpctrl "github.com/msp-lab/deskhawk/pkg/controller/http"
	"github.com/msp-lab/deskhawk/pkg/domain/model"
	"github.com/msp-lab/deskhawk/pkg/domain/types"
	"github.com/msp-lab/deskhawk/pkg/usecase"
)

type stubSource struct {
	tickets []model.Ticket
	err     error
}

func (s *stubSource) FetchTickets(ctx context.Context, start, end time.Time) ([]model.Ticket, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tickets, nil
}

func (s *stubSource) FetchMemberTickets(ctx context.Context, member types.MemberID, lookbackDays int) ([]model.Ticket, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tickets, nil
}

func newTestServer(t *testing.T, source *stubSource) *httptest.Server {
	t.Helper()

	analyzer, err := analysis.New(nil, analysis.DefaultConfig())
	gt.NoError(t, err)
	monitor, err := usecase.NewMonitor(source, analyzer)
	gt.NoError(t, err)

	server := httpctrl.NewServer(context.Background(), "localhost:0", monitor)
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, ts *httptest.Server, path string, out any) int {
	t.Helper()

	resp, err := nethttp.Get(ts.URL + path)
	gt.NoError(t, err)
	defer resp.Body.Close()

	gt.Equal(t, resp.Header.Get("Content-Type"), "application/json")
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func repeatTickets() []model.Ticket {
	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	return []model.Ticket{
		{ID: 1, Summary: "Printer jam", User: "Jane Doe", Company: "Acme", CreatedAt: base},
		{ID: 2, Summary: "Printer broken", User: "Jane Doe", Company: "Acme", CreatedAt: base.Add(time.Hour)},
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, &stubSource{})

	var body map[string]string
	status := getJSON(t, ts, "/health", &body)

	gt.Equal(t, status, nethttp.StatusOK)
	gt.Equal(t, body["status"], "healthy")
	gt.Equal(t, body["service"], "deskhawk")
}

func TestUserPatternsEndpoint(t *testing.T) {
	ts := newTestServer(t, &stubSource{tickets: repeatTickets()})

	var body struct {
		Timestamp time.Time        `json:"timestamp"`
		Patterns  []map[string]any `json:"patterns"`
	}
	status := getJSON(t, ts, "/api/patterns/user", &body)

	gt.Equal(t, status, nethttp.StatusOK)
	gt.B(t, body.Timestamp.IsZero()).False()
	gt.Equal(t, len(body.Patterns), 1)
	gt.Equal(t, body.Patterns[0]["kind"], "user_repeat")
	gt.Equal(t, body.Patterns[0]["value"], "Jane Doe")
}

func TestUserPatternsEmptyIsArrayNotNull(t *testing.T) {
	ts := newTestServer(t, &stubSource{})

	resp, err := nethttp.Get(ts.URL + "/api/patterns/user")
	gt.NoError(t, err)
	defer resp.Body.Close()

	var raw map[string]json.RawMessage
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	gt.Equal(t, strings.TrimSpace(string(raw["patterns"])), "[]")
}

func TestLivePatternsEndpoint(t *testing.T) {
	ts := newTestServer(t, &stubSource{tickets: repeatTickets()})

	var body struct {
		TicketCount *int             `json:"ticket_count"`
		Patterns    []map[string]any `json:"patterns"`
	}
	status := getJSON(t, ts, "/api/patterns/live", &body)

	gt.Equal(t, status, nethttp.StatusOK)
	gt.NotNil(t, body.TicketCount)
	gt.Equal(t, *body.TicketCount, 2)
	gt.Equal(t, len(body.Patterns), 1)
}

func TestMemberPatternsEndpoint(t *testing.T) {
	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	ts := newTestServer(t, &stubSource{
		tickets: []model.Ticket{
			{ID: 1, Summary: "VPN not connecting", CreatedAt: base},
			{ID: 2, Summary: "VPN not connecting", CreatedAt: base.Add(time.Hour)},
			{ID: 3, Summary: "VPN not connecting", CreatedAt: base.Add(2 * time.Hour)},
		},
	})

	var body struct {
		Patterns []map[string]any `json:"patterns"`
	}
	status := getJSON(t, ts, "/api/patterns/member/jdoe", &body)

	gt.Equal(t, status, nethttp.StatusOK)
	gt.Equal(t, len(body.Patterns), 1)
	gt.Equal(t, body.Patterns[0]["kind"], "dimension_threshold")
	gt.Equal(t, body.Patterns[0]["dimension"], "summary")
}

func TestStatsEndpoint(t *testing.T) {
	ts := newTestServer(t, &stubSource{tickets: repeatTickets()})

	var body struct {
		TotalTickets int    `json:"total_tickets"`
		TimePeriod   string `json:"time_period"`
		ActiveUsers  int    `json:"active_users"`
		Companies    int    `json:"companies"`
	}
	status := getJSON(t, ts, "/api/stats", &body)

	gt.Equal(t, status, nethttp.StatusOK)
	gt.Equal(t, body.TotalTickets, 2)
	gt.Equal(t, body.TimePeriod, "7 Days")
	gt.Equal(t, body.ActiveUsers, 1)
	gt.Equal(t, body.Companies, 1)
}

func TestSourceFailureMapsToServerError(t *testing.T) {
	ts := newTestServer(t, &stubSource{
		err: goerr.Wrap(model.ErrSourceUnavailable, "api down"),
	})

	for _, path := range []string{
		"/api/patterns/user",
		"/api/patterns/live",
		"/api/patterns/member/jdoe",
		"/api/stats",
	} {
		var body map[string]string
		status := getJSON(t, ts, path, &body)

		gt.Equal(t, status, nethttp.StatusInternalServerError)
		gt.Equal(t, body["error"], "internal server error")
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	ts := newTestServer(t, &stubSource{})

	resp, err := nethttp.Get(ts.URL + "/api/nope")
	gt.NoError(t, err)
	defer resp.Body.Close()

	gt.Equal(t, resp.StatusCode, nethttp.StatusNotFound)
}
