package bookingclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"clinic-booking/pkg/calendar"

	"github.com/sirupsen/logrus"
)

const defaultTimeout = 10 * time.Second

// Appointment is one booking of the current user as the server returned it.
type Appointment struct {
	ID          int64              `json:"id"`
	UserID      int64              `json:"userId,omitempty"`
	Date        calendar.Date      `json:"date"`
	Time        calendar.TimeOfDay `json:"time"`
	CreatedAt   time.Time          `json:"createdAt"`
	BookingCode string             `json:"bookingCode,omitempty"`
}

// Confirmation is what a successful Submit hands back to the page.
type Confirmation struct {
	Message string
	Booking Appointment
}

// ScheduleEntry is one row of the doctor's schedule. Date is zero for the
// single-day view, which omits it.
type ScheduleEntry struct {
	ID     int64              `json:"id"`
	UserID int64              `json:"userId,omitempty"`
	Date   calendar.Date      `json:"date"`
	Time   calendar.TimeOfDay `json:"time"`
	Name   string             `json:"name"`
	Reason string             `json:"reason"`
	Age    string             `json:"age"`
	Notes  string             `json:"notes"`
}

type bookRequest struct {
	UserID int64  `json:"userId"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

type bookResponse struct {
	Message string       `json:"message"`
	Booking *Appointment `json:"booking"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(log *logrus.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithToken sends the access token as a Bearer header on every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// Client submits bookings to the clinic server and keeps the current user's
// appointments, most recent first. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
	token      string

	mu           sync.Mutex
	appointments []Appointment
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit books the selected slot for userID. An incomplete selection or a
// missing user fails before any request is sent. On success the booking is
// added to the front of the local appointment list.
func (c *Client) Submit(ctx context.Context, sel calendar.Selection, userID int64) (*Confirmation, error) {
	if !sel.Complete() {
		return nil, &Error{Kind: KindValidation, Message: msgSelectionIncomplete}
	}
	if !sel.Date.Valid() {
		return nil, &Error{Kind: KindValidation, Message: msgDateInvalid}
	}
	if userID <= 0 {
		return nil, &Error{Kind: KindAuthenticationRequired, Message: msgLoginRequired}
	}

	body, err := json.Marshal(bookRequest{
		UserID: userID,
		Date:   sel.Date.String(),
		Time:   sel.Time.String(),
	})
	if err != nil {
		return nil, &Error{Kind: KindInternal, Message: msgInternal, Err: err}
	}

	var resp bookResponse
	if err := c.do(ctx, http.MethodPost, "/book", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	if resp.Booking == nil || resp.Booking.ID == 0 {
		return nil, &Error{Kind: KindInternal, Message: "booking server returned no booking"}
	}

	booking := *resp.Booking
	c.mu.Lock()
	c.appointments = append([]Appointment{booking}, c.appointments...)
	c.mu.Unlock()

	c.log.Debugf("Booked %s %s: id=%d", booking.Date, booking.Time, booking.ID)
	return &Confirmation{Message: resp.Message, Booking: booking}, nil
}

// LoadAppointments replaces the local list with the server's view of userID's bookings.
func (c *Client) LoadAppointments(ctx context.Context, userID int64) ([]Appointment, error) {
	if userID <= 0 {
		return nil, &Error{Kind: KindAuthenticationRequired, Message: msgLoginRequired}
	}

	var list []Appointment
	path := "/appointments/" + strconv.FormatInt(userID, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []Appointment{}
	}

	c.mu.Lock()
	c.appointments = list
	c.mu.Unlock()

	return c.Appointments(), nil
}

// Appointments returns a copy of the local list.
func (c *Client) Appointments() []Appointment {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Appointment, len(c.appointments))
	copy(out, c.appointments)
	return out
}

// Schedule returns the appointments on a single day.
func (c *Client) Schedule(ctx context.Context, date calendar.Date) ([]ScheduleEntry, error) {
	q := url.Values{}
	q.Set("date", date.String())

	var entries []ScheduleEntry
	if err := c.do(ctx, http.MethodGet, "/appointments?"+q.Encode(), nil, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []ScheduleEntry{}
	}
	return entries, nil
}

// Upcoming returns every booking from today on.
func (c *Client) Upcoming(ctx context.Context) ([]ScheduleEntry, error) {
	var entries []ScheduleEntry
	if err := c.do(ctx, http.MethodGet, "/bookings", nil, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []ScheduleEntry{}
	}
	return entries, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Kind: KindInternal, Message: msgInternal, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warnf("Request %s %s failed: %+v", method, path, err)
		return &Error{Kind: KindNetwork, Message: msgNetwork, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Status: resp.StatusCode, Message: msgNetwork, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{
			Kind:    KindInternal,
			Status:  resp.StatusCode,
			Message: "malformed response from booking server",
			Err:     err,
		}
	}
	return nil
}

func statusError(status int, raw []byte) *Error {
	var body errorResponse
	_ = json.Unmarshal(raw, &body)

	e := &Error{Status: status, Message: body.Message}
	switch status {
	case http.StatusBadRequest:
		e.Kind = KindValidation
	case http.StatusUnauthorized:
		e.Kind = KindAuthenticationRequired
		if e.Message == "" {
			e.Message = msgLoginRequired
		}
	default:
		e.Kind = KindInternal
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("%s: %s", msgInternal, http.StatusText(status))
	}
	return e
}
