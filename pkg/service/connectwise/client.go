package connectwise

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/msp-lab/deskhawk/pkg/domain/interfaces"
	"github.com/msp-lab/deskhawk/pkg/domain/model"
	"github.com/msp-lab/deskhawk/pkg/domain/types"
)

const defaultPageSize = 1000

// Client is a ConnectWise Manage service-ticket API client. It implements
// interfaces.TicketSource over the REST endpoint using the ConnectWise
// basic-auth scheme (company+publicKey:privateKey) plus a clientId header.
type Client struct {
	baseURL    string
	clientID   string
	authHeader string
	httpClient *http.Client
	pageSize   int
}

// Option is a functional option for configuring Client
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPageSize overrides the page size used for ticket queries
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// New creates a ConnectWise API client
func New(baseURL, companyID, publicKey, privateKey, clientID string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.New("ConnectWise base URL is required")
	}
	if companyID == "" || publicKey == "" || privateKey == "" {
		return nil, goerr.New("ConnectWise credentials are incomplete",
			goerr.V("has_company_id", companyID != ""),
			goerr.V("has_public_key", publicKey != ""),
			goerr.V("has_private_key", privateKey != ""))
	}
	if clientID == "" {
		return nil, goerr.New("ConnectWise client ID is required")
	}

	credentials := fmt.Sprintf("%s+%s:%s", companyID, publicKey, privateKey)
	encoded := base64.StdEncoding.EncodeToString([]byte(credentials))

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		clientID:   clientID,
		authHeader: "Basic " + encoded,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		pageSize:   defaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// FetchTickets returns tickets created within the date range (inclusive
// bounds). Results are paged through until a short page is returned.
func (c *Client) FetchTickets(ctx context.Context, start, end time.Time) ([]model.Ticket, error) {
	conditions := fmt.Sprintf("dateEntered >= [%s] AND dateEntered <= [%s]",
		start.Format("2006-01-02"), end.Format("2006-01-02"))

	var tickets []model.Ticket
	for page := 1; ; page++ {
		batch, err := c.fetchPage(ctx, conditions, page)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, batch...)
		if len(batch) < c.pageSize {
			break
		}
	}

	return tickets, nil
}

// FetchMemberTickets returns tickets entered by the given member within the
// trailing lookback window. The API has no server-side member filter on this
// endpoint, so the window is fetched and filtered client-side.
func (c *Client) FetchMemberTickets(ctx context.Context, member types.MemberID, lookbackDays int) ([]model.Ticket, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -lookbackDays)

	tickets, err := c.FetchTickets(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var filtered []model.Ticket
	for _, t := range tickets {
		if t.User == member.String() {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (c *Client) fetchPage(ctx context.Context, conditions string, page int) ([]model.Ticket, error) {
	endpoint := c.baseURL + "/service/tickets"

	query := url.Values{}
	query.Set("conditions", conditions)
	query.Set("pageSize", strconv.Itoa(c.pageSize))
	query.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build ticket request")
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("clientId", c.clientID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(model.ErrSourceUnavailable, "ticket fetch failed",
			goerr.V("cause", err.Error()))
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			ctxlog.From(ctx).Warn("Failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, goerr.Wrap(model.ErrSourceUnavailable, "unexpected status from ticket API",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)))
	}

	var wire []wireTicket
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, goerr.Wrap(err, "failed to decode ticket response")
	}

	tickets := make([]model.Ticket, 0, len(wire))
	for _, w := range wire {
		tickets = append(tickets, w.toModel(ctx))
	}
	return tickets, nil
}

// wireTicket mirrors the upstream JSON shape, where user, company, type and
// priority arrive as optional nested objects with a name field.
type wireTicket struct {
	ID                 int       `json:"id"`
	Summary            string    `json:"summary"`
	InitialDescription string    `json:"initialDescription"`
	DateEntered        string    `json:"dateEntered"`
	EnteredBy          string    `json:"enteredBy"`
	Contact            *wireName `json:"contact"`
	Company            *wireName `json:"company"`
	Type               *wireName `json:"type"`
	Priority           *wireName `json:"priority"`
}

type wireName struct {
	Name string `json:"name"`
}

// toModel converts a wire ticket into the domain record. Missing fields
// default to empty values and an unparseable timestamp becomes the zero
// time; a malformed record never aborts the batch.
func (w wireTicket) toModel(ctx context.Context) model.Ticket {
	t := model.Ticket{
		ID:          types.TicketID(w.ID),
		Summary:     w.Summary,
		Description: w.InitialDescription,
	}

	if w.DateEntered != "" {
		created, err := parseDateEntered(w.DateEntered)
		if err != nil {
			ctxlog.From(ctx).Warn("Ticket has unparseable dateEntered, excluded from clustering",
				"ticketID", w.ID,
				"dateEntered", w.DateEntered,
			)
		} else {
			t.CreatedAt = created
		}
	}

	if w.Contact != nil {
		t.User = w.Contact.Name
	}
	if t.User == "" {
		t.User = w.EnteredBy
	}
	if w.Company != nil {
		t.Company = w.Company.Name
	}
	if w.Type != nil {
		t.Type = w.Type.Name
	}
	if w.Priority != nil {
		t.Priority = w.Priority.Name
	}

	return t
}

func parseDateEntered(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, goerr.New("unsupported timestamp format", goerr.V("value", s))
}

var _ interfaces.TicketSource = (*Client)(nil)
