package commands

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sandeepkv93/enjaz/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent", TypeAdd},
		{"/plan Run a marathon", TypePlan},
		{"done f-1", TypeToggle},
		{"/delete y1 --cascade", TypeDelete},
		{"/buy 4", TypeBuy},
		{"/reward Cinema night", TypeReward},
		{"/unreward abc", TypeRemoveReward},
		{"/spend 12.50 lunch", TypeSpend},
		{"/refund e-1", TypeRefund},
		{"/ADVISE", TypeAdvise},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddTimeFrame(t *testing.T) {
	cmd, err := Parse("/add weekly clean the garage")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.TimeFrame != model.TimeFrameWeekly || cmd.Add.Title != "clean the garage" {
		t.Fatalf("unexpected add args: %+v", cmd.Add)
	}

	cmd, err = Parse("/add read")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.TimeFrame != model.TimeFrameDaily || cmd.Add.Title != "read" {
		t.Fatalf("expected daily default: %+v", cmd.Add)
	}
}

func TestParseSpendAndDelete(t *testing.T) {
	cmd, err := Parse("/spend 7.25 taxi home")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !cmd.Spend.Amount.Equal(decimal.RequireFromString("7.25")) || cmd.Spend.Description != "taxi home" {
		t.Fatalf("unexpected spend args: %+v", cmd.Spend)
	}

	cmd, err = Parse("/delete -r y1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Delete.GoalID != "y1" || !cmd.Delete.Cascade {
		t.Fatalf("unexpected delete args: %+v", cmd.Delete)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{
		"/add",
		"/add monthly",
		"/plan   ",
		"/buy",
		"/buy 1 2",
		"/spend",
		"/spend ten coffee",
		"/spend -3 refund",
		"/delete",
		"/delete a b",
		"/reward",
		"/advise now",
	} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestParseUnknownAndEmpty(t *testing.T) {
	_, err := Parse("/unknown do x")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}

	_, err = Parse("  /  ")
	if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/buy 4")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Buy: func(a TargetArgs) (Result, error) {
			called = true
			if a.ID != "4" {
				t.Fatalf("unexpected id: %q", a.ID)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	for _, in := range []string{"/advise", "/done f-1", "/spend 3"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		_, err = Execute(cmd, Handlers{})
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
			t.Fatalf("%s: expected missing handler error, got %v", in, err)
		}
	}
}

func TestUsageCoversEveryCommand(t *testing.T) {
	if got := len(Usage()); got != 10 {
		t.Fatalf("expected 10 usage lines, got %d", got)
	}
}
