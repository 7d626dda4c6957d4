package model

import (
    "testing"
    "time"
)

func TestApplyStatusAppends(t *testing.T) {
    var b Booking
    at := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

    b.ApplyStatus(StatusPending, "booking created", at)
    b.ApplyStatus(StatusConfirmed, "table ready", at.Add(time.Hour))
    b.ApplyStatus(StatusCancelled, "guest called", at.Add(2*time.Hour))

    if b.Status != StatusCancelled {
        t.Errorf("status = %q, want cancelled", b.Status)
    }
    if len(b.History) != 3 {
        t.Fatalf("history = %d entries, want 3", len(b.History))
    }
    if b.History[0].Status != StatusPending || b.History[0].Label != "awaiting confirmation" {
        t.Errorf("first entry = %+v", b.History[0])
    }
    if b.History[1].Time != "2026-09-01T11:00:00Z" {
        t.Errorf("second entry time = %q", b.History[1].Time)
    }
    // The current status always equals the last timeline entry.
    if b.History[len(b.History)-1].Status != b.Status {
        t.Error("status diverged from timeline tail")
    }
}

func TestHistoryEncodeDecode(t *testing.T) {
    entries := []StatusEntry{
        {Status: StatusPending, Label: "awaiting confirmation", Note: "booking created", Time: "2026-09-01T10:00:00Z"},
        {Status: StatusConfirmed, Label: "confirmed", Note: "", Time: "2026-09-01T11:00:00Z"},
    }
    raw, err := EncodeHistory(entries)
    if err != nil {
        t.Fatalf("EncodeHistory: %v", err)
    }
    got, err := DecodeHistory(raw)
    if err != nil {
        t.Fatalf("DecodeHistory: %v", err)
    }
    if len(got) != 2 || got[0] != entries[0] || got[1] != entries[1] {
        t.Errorf("round trip = %+v", got)
    }
}

func TestDecodeHistoryEmpty(t *testing.T) {
    got, err := DecodeHistory("")
    if err != nil {
        t.Fatalf("DecodeHistory(\"\"): %v", err)
    }
    if len(got) != 0 {
        t.Errorf("empty blob decoded to %d entries", len(got))
    }
    if _, err := DecodeHistory("{broken"); err == nil {
        t.Error("malformed blob accepted")
    }
}

func TestStatusLabels(t *testing.T) {
    cases := map[string]string{
        StatusPending:   "awaiting confirmation",
        StatusConfirmed: "confirmed",
        StatusCompleted: "completed",
        StatusCancelled: "cancelled",
        "bogus":         "bogus",
    }
    for status, want := range cases {
        if got := StatusLabel(status); got != want {
            t.Errorf("StatusLabel(%q) = %q, want %q", status, got, want)
        }
    }
    for _, s := range BookingStatuses {
        if !ValidStatus(s) {
            t.Errorf("ValidStatus(%q) = false", s)
        }
    }
    if ValidStatus("shipped") {
        t.Error("ValidStatus accepted unknown status")
    }
}
