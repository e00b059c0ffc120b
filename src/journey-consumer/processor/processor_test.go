package processor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/inference"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/journeys"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/network"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
	"go.uber.org/zap"
)

type fakeStore struct {
	statuses []types.BatchStatusResponse
	saved    map[string][]types.JourneyRecord
	dropped  []string
	saveErr  error
}

func (f *fakeStore) SetBatchStatus(_ context.Context, status types.BatchStatusResponse) error {
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *fakeStore) SaveBatch(_ context.Context, batchID string, _ types.ExportFormat, records []types.JourneyRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.saved == nil {
		f.saved = map[string][]types.JourneyRecord{}
	}
	f.saved[batchID] = records
	return nil
}

func (f *fakeStore) DropSummary(_ context.Context, batchID string) error {
	f.dropped = append(f.dropped, batchID)
	return nil
}

func (f *fakeStore) last() types.BatchStatusResponse {
	return f.statuses[len(f.statuses)-1]
}

func testProcessor(t *testing.T, store Store) *Processor {
	t.Helper()
	n, err := network.New(types.NetworkDocument{
		Stations: map[string][]string{"Euston": {"Victoria"}, "Oxford Circus": {"Victoria"}},
		Lines:    map[string]types.LineEntry{"Victoria": {Stations: []string{"Euston", "Oxford Circus"}}},
	})
	if err != nil {
		t.Fatalf("failed to build network: %v", err)
	}
	return New(journeys.NewPipeline(inference.NewEngine(n)), store, zap.NewNop().Sugar())
}

func TestProcess_Success(t *testing.T) {
	store := &fakeStore{}
	p := testProcessor(t, store)

	body := "Date,Journey,Charge (GBP),Time\n03/01/2024,Euston to Oxford Circus,-2.80,08:00 - 08:15\n"
	if err := p.Process(context.Background(), "b1", []byte(body), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.statuses[0].Status != types.BatchProcessing {
		t.Errorf("expected processing first, got %s", store.statuses[0].Status)
	}
	expected := types.BatchStatusResponse{BatchID: "b1", Status: types.BatchDone, Format: types.FormatContactless, JourneyCount: 1}
	if store.last() != expected {
		t.Errorf("expected %+v, got %+v", expected, store.last())
	}
	if got := store.saved["b1"]; len(got) != 1 || got[0].InferredLine != "Victoria" {
		t.Errorf("unexpected saved records %+v", got)
	}
	if len(store.dropped) != 1 {
		t.Error("stale summary should be dropped after saving")
	}
}

func TestProcess_BadExport(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty file", ""},
		{"no journeys", "Date,Journey,Charge (GBP),Time\n,,,\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			p := testProcessor(t, store)

			if err := p.Process(context.Background(), "b1", []byte(tt.body), false); err != nil {
				t.Fatalf("bad exports should not be retried, got %v", err)
			}
			last := store.last()
			if last.Status != types.BatchFailed || last.Message == "" {
				t.Errorf("expected failed status with a message, got %+v", last)
			}
			if len(store.saved) != 0 {
				t.Error("nothing should be saved for a bad export")
			}
		})
	}
}

func TestProcess_StoreFailure(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("connection refused")}
	p := testProcessor(t, store)

	body := "Date,Journey,Charge (GBP),Time\n03/01/2024,Euston to Oxford Circus,-2.80,08:00 - 08:15\n"
	err := p.Process(context.Background(), "b1", []byte(body), false)
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("expected store error to be returned, got %v", err)
	}
	if store.last().Status != types.BatchProcessing {
		t.Errorf("status should stay processing for a retry, got %s", store.last().Status)
	}
}

func TestProcess_MissingBatchID(t *testing.T) {
	store := &fakeStore{}
	if err := testProcessor(t, store).Process(context.Background(), "", []byte("x"), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.statuses) != 0 {
		t.Error("no status should be written without a batch id")
	}
}

func TestProcess_StoreFailureOnFinalAttempt(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("connection refused")}
	p := testProcessor(t, store)

	body := "Date,Journey,Charge (GBP),Time\n03/01/2024,Euston to Oxford Circus,-2.80,08:00 - 08:15\n"
	if err := p.Process(context.Background(), "b1", []byte(body), true); err == nil {
		t.Fatal("expected store error to be returned")
	}

	last := store.last()
	if last.Status != types.BatchFailed {
		t.Fatalf("last status should be failed, got %s", last.Status)
	}
	if !strings.Contains(last.Message, "connection refused") {
		t.Errorf("failed status should carry the error, got %q", last.Message)
	}
}
