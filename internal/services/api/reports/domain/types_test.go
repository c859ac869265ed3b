package domain_test

import (
	"encoding/json"
	"testing"

	"bukatsu/internal/services/api/reports/domain"
)

func valid() domain.SubmitInput {
	return domain.SubmitInput{
		ActivityID:   "muscle",
		Date:         "2024-01-15",
		TimeStart:    "14:30",
		TimeEnd:      "16:00",
		Participants: domain.ParseCount("10"),
	}
}

func TestValidateOK(t *testing.T) {
	act, err := valid().Validate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if act.ID != "muscle" {
		t.Fatalf("wrong activity resolved: %+v", act)
	}
}

func TestValidateOrderAndMessages(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*domain.SubmitInput)
		want string
	}{
		{"missing activity", func(in *domain.SubmitInput) { in.ActivityID = "" }, "Valid activity is required"},
		{"unknown activity", func(in *domain.SubmitInput) { in.ActivityID = "karaoke" }, "Valid activity is required"},
		{"custom without name", func(in *domain.SubmitInput) { in.ActivityID = "other"; in.CustomActivityName = "  " },
			"Custom activity name is required"},
		{"missing date", func(in *domain.SubmitInput) { in.Date = "" }, "Date is required"},
		{"malformed date", func(in *domain.SubmitInput) { in.Date = "15/01/2024" }, "Date is required"},
		{"missing start", func(in *domain.SubmitInput) { in.TimeStart = "" }, "Start time is required"},
		{"malformed start", func(in *domain.SubmitInput) { in.TimeStart = "25:00" }, "Start time is required"},
		{"missing end", func(in *domain.SubmitInput) { in.TimeEnd = "" }, "End time is required"},
		{"missing participants", func(in *domain.SubmitInput) { in.Participants = domain.Count{} },
			"Valid participant count is required"},
		{"negative participants", func(in *domain.SubmitInput) { in.Participants = domain.ParseCount("-1") },
			"Valid participant count is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid()
			tc.mut(&in)
			_, err := in.Validate()
			if err == nil || err.Error() != tc.want {
				t.Fatalf("want %q, got %v", tc.want, err)
			}
		})
	}
}

func TestValidateFirstViolationWins(t *testing.T) {
	in := domain.SubmitInput{ActivityID: "other"}
	if _, err := in.Validate(); err == nil || err.Error() != "Custom activity name is required" {
		t.Fatalf("want the custom-name message first, got %v", err)
	}
}

func TestCountAcceptsNumberAndString(t *testing.T) {
	var in domain.SubmitInput
	if err := json.Unmarshal([]byte(`{"activityId":"muscle","participants":12}`), &in); err != nil {
		t.Fatalf("number: %v", err)
	}
	if n, ok := in.Participants.Value(); !ok || n != 12 {
		t.Fatalf("number: got %d ok=%v", n, ok)
	}

	in = domain.SubmitInput{}
	if err := json.Unmarshal([]byte(`{"activityId":"muscle","participants":"7"}`), &in); err != nil {
		t.Fatalf("string: %v", err)
	}
	if n, ok := in.Participants.Value(); !ok || n != 7 {
		t.Fatalf("string: got %d ok=%v", n, ok)
	}
}

func TestCountInvalidStaysUnsetWithoutError(t *testing.T) {
	for _, raw := range []string{`"abc"`, `null`, `1.5`, `""`} {
		var c domain.Count
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			t.Fatalf("%s: decode must not fail: %v", raw, err)
		}
		if _, ok := c.Value(); ok {
			t.Fatalf("%s: want unset", raw)
		}
	}
}

func TestCountMarshal(t *testing.T) {
	b, err := json.Marshal(domain.ParseCount("3"))
	if err != nil || string(b) != "3" {
		t.Fatalf("got %s err=%v", b, err)
	}
	b, err = json.Marshal(domain.Count{})
	if err != nil || string(b) != "null" {
		t.Fatalf("unset: got %s err=%v", b, err)
	}
}
