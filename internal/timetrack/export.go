package timetrack

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quentinproust/teamwork-cli/internal/teamwork"
)

// ExportEntry is one logged entry in a timesheet.
type ExportEntry struct {
	Description string
	Hours       decimal.Decimal
}

// ExportTaskGroup groups a day's entries under a task with a subtotal.
type ExportTaskGroup struct {
	Project string
	Task    string
	Entries []ExportEntry
	Total   decimal.Decimal
}

// ExportDay holds all task groups for a single day.
type ExportDay struct {
	Date   time.Time
	Groups []ExportTaskGroup
	Total  decimal.Decimal
}

// ExportData is a timesheet over a range of days.
type ExportData struct {
	Title string
	From  time.Time
	To    time.Time
	Days  []ExportDay
	Total decimal.Decimal
}

// BuildExportData groups remote entries by day, then by project and task.
// Days are in date order and groups are sorted by project then task.
func BuildExportData(entries []teamwork.TimeEntry, title string) ExportData {
	type key struct{ project, task string }
	byDay := make(map[time.Time]map[key]*ExportTaskGroup)

	for _, e := range entries {
		d, err := e.Day()
		if err != nil {
			continue
		}
		if byDay[d] == nil {
			byDay[d] = make(map[key]*ExportTaskGroup)
		}
		k := key{e.ProjectName, e.TaskName}
		g := byDay[d][k]
		if g == nil {
			g = &ExportTaskGroup{Project: e.ProjectName, Task: e.TaskName}
			byDay[d][k] = g
		}
		g.Entries = append(g.Entries, ExportEntry{Description: e.Description, Hours: e.Duration()})
		g.Total = g.Total.Add(e.Duration())
	}

	dates := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	data := ExportData{Title: title, Total: decimal.Zero}
	for _, d := range dates {
		day := ExportDay{Date: d, Total: decimal.Zero}
		for _, g := range byDay[d] {
			day.Groups = append(day.Groups, *g)
			day.Total = day.Total.Add(g.Total)
		}
		sort.Slice(day.Groups, func(i, j int) bool {
			if day.Groups[i].Project != day.Groups[j].Project {
				return day.Groups[i].Project < day.Groups[j].Project
			}
			return day.Groups[i].Task < day.Groups[j].Task
		})
		data.Days = append(data.Days, day)
		data.Total = data.Total.Add(day.Total)
	}

	if len(dates) > 0 {
		data.From, data.To = dates[0], dates[len(dates)-1]
	}
	return data
}
