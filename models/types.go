// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"strings"
	"time"
)

// Phase constants
type Phase string

const (
	PhaseMenstruation Phase = "Menstruation"
	PhaseFollicular   Phase = "Follicular"
	PhaseOvulation    Phase = "Ovulation"
	PhaseLuteal       Phase = "Luteal"
	PhaseUnknown      Phase = "Unknown"
)

// Phases lists the classifiable phases in tie-break order.
var Phases = []Phase{PhaseMenstruation, PhaseLuteal, PhaseOvulation, PhaseFollicular}

// ParsePhase matches a phase name case-insensitively, Unknown included.
func ParsePhase(s string) (Phase, bool) {
	for _, p := range Phases {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	if strings.EqualFold(s, string(PhaseUnknown)) {
		return PhaseUnknown, true
	}
	return "", false
}

// Delivery status constants
const (
	DeliverySent    = "sent"
	DeliverySkipped = "skipped"
	DeliveryFailed  = "failed"
)

// Delivery channel constants
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
	ChannelLog   = "log"
)

// Question keys
const (
	KeyBleeding = "q1"
	KeyMucus    = "q2"
	KeyLibido   = "q3"
	KeyMood     = "q4"
	KeySymptoms = "q5"
	KeyEnergy   = "q6"
)

// RequiredKeys are the answers every submission must carry.
var RequiredKeys = []string{KeyBleeding, KeyMucus, KeyLibido, KeyMood, KeySymptoms, KeyEnergy}

// Ingestion types

// RawSubmission is one undecoded questionnaire record as received.
// A nil map means the batch element was not a JSON object.
type RawSubmission map[string]any

// Domain types

// Symptoms is the q5 answer: checkbox symptoms plus an optional comment.
type Symptoms struct {
	List       []string `json:"symptoms"`
	Additional string   `json:"additional,omitempty"`
}

// Empty reports whether neither symptoms nor a comment were given.
func (s Symptoms) Empty() bool {
	return len(s.List) == 0 && s.Additional == ""
}

// AnswerSet holds the six questionnaire answers.
// Nil numeric fields mean the answer was absent.
type AnswerSet struct {
	Bleeding *int     `json:"q1,omitempty"` // 0-4
	Mucus    *int     `json:"q2,omitempty"` // 0-4
	Libido   *int     `json:"q3,omitempty"` // 1-5
	Mood     *int     `json:"q4,omitempty"` // 1-5, not scored
	Symptoms Symptoms `json:"q5"`
	Energy   *int     `json:"q6,omitempty"` // 1-5
}

// IsEmpty reports whether no answer at all is present.
func (a AnswerSet) IsEmpty() bool {
	return a.Bleeding == nil && a.Mucus == nil && a.Libido == nil &&
		a.Mood == nil && a.Energy == nil && a.Symptoms.Empty()
}

// Submission is a validated, normalized questionnaire record.
type Submission struct {
	UserID      string    `json:"user_id"`
	Timestamp   string    `json:"timestamp"` // MMDDYYHHMMSS
	SubmittedAt time.Time `json:"submitted_at"`
	TimeElapsed float64   `json:"time_elapsed"`
	Answers     AnswerSet `json:"responses"`
}

// ScoreVector accumulates heuristic points per phase.
type ScoreVector struct {
	Menstruation int `json:"menstruation"`
	Luteal       int `json:"luteal"`
	Ovulation    int `json:"ovulation"`
	Follicular   int `json:"follicular"`
}

// Get returns the score of a phase; Unknown and unrecognized phases score 0.
func (s ScoreVector) Get(p Phase) int {
	switch p {
	case PhaseMenstruation:
		return s.Menstruation
	case PhaseLuteal:
		return s.Luteal
	case PhaseOvulation:
		return s.Ovulation
	case PhaseFollicular:
		return s.Follicular
	}
	return 0
}

// Degenerate reports whether no heuristic signal fired.
func (s ScoreVector) Degenerate() bool {
	return s == ScoreVector{}
}

// Delivery records the outcome of a notification attempt.
type Delivery struct {
	Channel string `json:"channel,omitempty"`
	Status  string `json:"status"`
	Detail  string `json:"detail,omitempty"`
}

// Result is the persisted outcome for one submission.
type Result struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	Timestamp       string      `json:"timestamp"`
	SubmittedAt     time.Time   `json:"submitted_at"`
	TimeElapsed     float64     `json:"time_elapsed"`
	Answers         AnswerSet   `json:"responses"`
	Phase           Phase       `json:"phase"`
	Scores          ScoreVector `json:"scores"`
	Degenerate      bool        `json:"degenerate"`
	Recommendations []string    `json:"recommendations"`
	Delivery        Delivery    `json:"delivery"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Rejection explains why a batch element was dropped.
type Rejection struct {
	Index   int      `json:"index"`
	UserID  string   `json:"user_id,omitempty"`
	Reasons []string `json:"reasons"`
}

// Request types

type ClassifyRequest struct {
	Responses map[string]any `json:"responses"`
}

// Response types

type ProcessBatchResponse struct {
	Received      int         `json:"received"`
	Processed     int         `json:"processed"`
	Skipped       int         `json:"skipped"`
	Delivered     int         `json:"delivered"`
	StoreFailures int         `json:"store_failures"`
	Rejections    []Rejection `json:"rejections"`
	Results       []Result    `json:"results"`
}

type ClassifyResponse struct {
	Phase           Phase       `json:"phase"`
	Scores          ScoreVector `json:"scores"`
	Degenerate      bool        `json:"degenerate"`
	Recommendations []string    `json:"recommendations"`
}

type RecommendationsResponse struct {
	Phase           Phase    `json:"phase"`
	Recommendations []string `json:"recommendations"`
}

type ListResultsResponse struct {
	UserID  string   `json:"user_id"`
	Results []Result `json:"results"`
}

// Error response

type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Reasons []string `json:"reasons,omitempty"`
}
