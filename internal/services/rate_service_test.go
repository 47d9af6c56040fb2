package services

import (
	"context"
	"errors"
	"testing"
)

func TestRateService_StaysWithinFluctuationBounds(t *testing.T) {
	svc := NewRateService(0, testLogger())
	ctx := context.Background()

	lo := BaseRate * 0.98
	hi := BaseRate * 1.02
	for i := 0; i < 200; i++ {
		rate := svc.Refresh(ctx)
		if rate < lo || rate > hi {
			t.Fatalf("rate %.2f outside ±2%% of %.0f", rate, BaseRate)
		}
	}
}

func TestRateService_InitialRateIsBase(t *testing.T) {
	svc := NewRateService(0, testLogger())
	if got := svc.Current(); got != BaseRate {
		t.Fatalf("initial rate = %.2f, want %.0f", got, BaseRate)
	}
}

func TestRateService_FailedFetchKeepsPreviousRate(t *testing.T) {
	svc := NewRateService(0, testLogger())
	ctx := context.Background()

	before := svc.Refresh(ctx)
	svc.fetch = func(context.Context) (float64, error) {
		return 0, errors.New("simulated outage")
	}
	after := svc.Refresh(ctx)
	if after != before {
		t.Fatalf("failed fetch changed the rate: %.2f -> %.2f", before, after)
	}
	if svc.Current() != before {
		t.Fatalf("current rate drifted after failure")
	}
}
