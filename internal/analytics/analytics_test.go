package analytics

import (
	"strings"
	"testing"
	"time"

	"smartcart/internal/storage"
)

func TestAnalyzeDailyLogs(t *testing.T) {
	testDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	events := []storage.Event{
		{Timestamp: testDate.Add(2 * time.Hour), UserID: 123, Input: "add 2 apples", Action: "add", Item: "apples", Quantity: 2},
		{Timestamp: testDate.Add(3 * time.Hour), UserID: 123, Input: "add milk", Action: "add", Item: "milk", Quantity: 1},
		{Timestamp: testDate.Add(4 * time.Hour), UserID: 456, Input: "remove milk", Action: "remove", Item: "milk"},
		{Timestamp: testDate.Add(5 * time.Hour), UserID: 456, Input: "banana", Action: "unrecognized"},
		// next day, must be ignored
		{Timestamp: testDate.AddDate(0, 0, 1), UserID: 789, Input: "add bread", Action: "add", Item: "bread"},
	}

	stats := AnalyzeDailyLogs(events, testDate)

	if stats.Date != "2024-01-15" {
		t.Fatalf("unexpected date: %s", stats.Date)
	}
	if stats.TotalCommands != 4 {
		t.Fatalf("expected 4 commands, got %d", stats.TotalCommands)
	}
	if stats.Adds != 2 || stats.Removes != 1 || stats.Unrecognized != 1 {
		t.Fatalf("unexpected breakdown: %+v", stats)
	}
	if stats.UniqueUsers != 2 {
		t.Fatalf("expected 2 unique users, got %d", stats.UniqueUsers)
	}
	if stats.ItemAdds["apples"] != 1 || stats.ItemAdds["milk"] != 1 {
		t.Fatalf("unexpected item adds: %v", stats.ItemAdds)
	}
	if us := stats.UserStats[123]; us.Commands != 2 || us.Adds != 2 {
		t.Fatalf("unexpected user stats: %+v", us)
	}
}

func TestFormatReport(t *testing.T) {
	stats := &DailyStats{
		Date:          "2024-01-15",
		TotalCommands: 3,
		Adds:          2,
		Removes:       1,
		UniqueUsers:   1,
		ItemAdds:      map[string]int{"milk": 2, "bread": 1},
	}
	report := FormatReport(stats)
	if !strings.Contains(report, "2024-01-15") || !strings.Contains(report, "milk(2)") {
		t.Fatalf("unexpected report: %q", report)
	}
}
