// Package domain holds the report submission types and their validation
package domain

import (
	"encoding/json"
	"strconv"
	"strings"

	perr "bukatsu/internal/platform/errors"
	"bukatsu/internal/platform/net/http/bind"

	activities "bukatsu/internal/services/api/activities/domain"
)

// Count is a participant count that accepts both a JSON number and a numeric
// string, since the value arrives as a form field on multipart submissions.
// Decoding never errors; an unparseable value just stays unset
type Count struct {
	n  int
	ok bool
}

// ParseCount reads a count from a raw form value
func ParseCount(s string) Count {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Count{}
	}
	return Count{n: n, ok: true}
}

// Value returns the count and whether one was provided
func (c Count) Value() (int, bool) { return c.n, c.ok }

// UnmarshalJSON implements json.Unmarshaler
func (c *Count) UnmarshalJSON(b []byte) error {
	s := string(b)
	if strings.HasPrefix(s, `"`) {
		var q string
		if err := json.Unmarshal(b, &q); err != nil {
			return nil
		}
		*c = ParseCount(q)
		return nil
	}
	*c = ParseCount(s)
	return nil
}

// MarshalJSON implements json.Marshaler
func (c Count) MarshalJSON() ([]byte, error) {
	if !c.ok {
		return []byte("null"), nil
	}
	return json.Marshal(c.n)
}

// SubmitInput is one report submission, from either JSON or multipart form
type SubmitInput struct {
	ActivityID         string `json:"activityId"`
	CustomActivityName string `json:"customActivityName,omitempty"`
	Date               string `json:"date"`
	TimeStart          string `json:"timeStart"`
	TimeEnd            string `json:"timeEnd"`
	Participants       Count  `json:"participants"`
	Content            string `json:"content,omitempty"`
	XPostURL           string `json:"xPostUrl,omitempty"`
}

// Validate checks the submission in a fixed order and returns the resolved
// activity. The messages are part of the API contract
func (in SubmitInput) Validate() (activities.Activity, error) {
	act, ok := activities.ByID(in.ActivityID)
	if !ok {
		return act, perr.Validationf("Valid activity is required")
	}
	if act.IsCustom && strings.TrimSpace(in.CustomActivityName) == "" {
		return act, perr.Validationf("Custom activity name is required")
	}

	v := bind.Get().Validator
	if err := v.Var(in.Date, "required,ymd"); err != nil {
		return act, perr.Validationf("Date is required")
	}
	if err := v.Var(in.TimeStart, "required,hhmm"); err != nil {
		return act, perr.Validationf("Start time is required")
	}
	if err := v.Var(in.TimeEnd, "required,hhmm"); err != nil {
		return act, perr.Validationf("End time is required")
	}

	if n, ok := in.Participants.Value(); !ok || n < 0 {
		return act, perr.Validationf("Valid participant count is required")
	}
	return act, nil
}
