package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contest status constants
const (
	StatusActive = "active"
	StatusEnded  = "ended"
)

func init() {
	// Stored records and API clients expect votePrice as a JSON number.
	decimal.MarshalJSONWithoutQuotes = true
}

// Request types

type CreateContestRequest struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	IsPaid        bool            `json:"isPaid"`
	VotePrice     decimal.Decimal `json:"votePrice"`
	PaymentLink   string          `json:"paymentLink"`
	Customization Customization   `json:"customization"`
}

type AddContestantRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MediaURLs   []string `json:"mediaUrls"`
}

type VoteRequest struct {
	ContestantID string `json:"contestantId"`
}

// Response types

type ContestsResponse struct {
	Contests []Contest `json:"contests"`
}

type ContestResponse struct {
	Contest Contest `json:"contest"`
}

type ContestWithContestants struct {
	Contest     Contest      `json:"contest"`
	Contestants []Contestant `json:"contestants"`
}

type ContestantResponse struct {
	Contestant Contestant `json:"contestant"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type VoteResponse struct {
	Success bool `json:"success"`
	Votes   int  `json:"votes"`
}

type VoteLogResponse struct {
	Votes []VoteEvent `json:"votes"`
}

type CSVResponse struct {
	CSV string `json:"csv"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

// Domain types

// Customization is the styling bag (colors, font) chosen by the creator.
// Its shape is owned by the front-end.
type Customization map[string]any

type Contest struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	URLSlug       string          `json:"urlSlug"`
	Status        string          `json:"status"`
	IsPaid        bool            `json:"isPaid"`
	VotePrice     decimal.Decimal `json:"votePrice"`
	PaymentLink   string          `json:"paymentLink"`
	Customization Customization   `json:"customization"`
	TotalVotes    int             `json:"totalVotes"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type Contestant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MediaURLs   []string  `json:"mediaUrls"` // display order
	Votes       int       `json:"votes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// VoteEvent is one entry of a contest's append-only vote log.
type VoteEvent struct {
	ContestantID string    `json:"contestantId"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
