package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"smartcart/internal/storage"
)

// DailyStats aggregates the command events of a single day.
type DailyStats struct {
	Date          string              `json:"date"`
	TotalCommands int                 `json:"total_commands"`
	Adds          int                 `json:"adds"`
	Removes       int                 `json:"removes"`
	Unrecognized  int                 `json:"unrecognized"`
	ItemAdds      map[string]int      `json:"item_adds"`
	UniqueUsers   int                 `json:"unique_users"`
	UserStats     map[int64]UserStats `json:"user_stats"`
}

// UserStats aggregates per-user command counts.
type UserStats struct {
	UserID   int64 `json:"user_id"`
	Commands int   `json:"commands"`
	Adds     int   `json:"adds"`
	Removes  int   `json:"removes"`
}

// AnalyzeDailyLogs folds the recorded events of the target date into stats.
func AnalyzeDailyLogs(events []storage.Event, targetDate time.Time) *DailyStats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	stats := &DailyStats{
		Date:      startOfDay.Format("2006-01-02"),
		ItemAdds:  make(map[string]int),
		UserStats: make(map[int64]UserStats),
	}
	uniqueUsers := make(map[int64]bool)

	for _, event := range events {
		if event.Timestamp.Before(startOfDay) || !event.Timestamp.Before(endOfDay) {
			continue
		}
		stats.TotalCommands++
		uniqueUsers[event.UserID] = true

		us := stats.UserStats[event.UserID]
		us.UserID = event.UserID
		us.Commands++

		switch event.Action {
		case "add":
			stats.Adds++
			us.Adds++
			stats.ItemAdds[strings.ToLower(event.Item)]++
		case "remove":
			stats.Removes++
			us.Removes++
		default:
			stats.Unrecognized++
		}
		stats.UserStats[event.UserID] = us
	}

	stats.UniqueUsers = len(uniqueUsers)
	return stats
}

// FormatReport renders stats as a short human-readable report.
func FormatReport(stats *DailyStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Shopping report for %s\n", stats.Date)
	fmt.Fprintf(&sb, "Commands: %d (add %d, remove %d, unrecognized %d)\n",
		stats.TotalCommands, stats.Adds, stats.Removes, stats.Unrecognized)
	fmt.Fprintf(&sb, "Users: %d\n", stats.UniqueUsers)

	if len(stats.ItemAdds) > 0 {
		type itemCount struct {
			name  string
			count int
		}
		items := make([]itemCount, 0, len(stats.ItemAdds))
		for name, count := range stats.ItemAdds {
			items = append(items, itemCount{name, count})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].count != items[j].count {
				return items[i].count > items[j].count
			}
			return items[i].name < items[j].name
		})
		if len(items) > 5 {
			items = items[:5]
		}
		sb.WriteString("Top items:")
		for _, it := range items {
			fmt.Fprintf(&sb, " %s(%d)", it.name, it.count)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
