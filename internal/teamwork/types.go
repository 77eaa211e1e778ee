package teamwork

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quentinproust/teamwork-cli/internal/schedule"
)

// ID is an identifier the API sends either as a JSON string or a number.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Person is the authenticated user.
type Person struct {
	ID        ID     `json:"id"`
	FirstName string `json:"first-name"`
	LastName  string `json:"last-name"`
}

type Project struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

type TaskList struct {
	ID               ID     `json:"id"`
	Name             string `json:"name"`
	UncompletedCount int    `json:"uncompleted-count"`
}

// Task is a todo item, possibly holding nested sub tasks.
type Task struct {
	ID       ID     `json:"id"`
	Name     string `json:"content"`
	SubTasks []Task `json:"subTasks"`
}

// FlatTask is a task with its nesting depth.
type FlatTask struct {
	Task
	Depth int
}

// Flatten lists tasks depth first, sub tasks right after their parent.
func Flatten(tasks []Task) []FlatTask {
	var out []FlatTask
	var walk func([]Task, int)
	walk = func(ts []Task, depth int) {
		for _, t := range ts {
			out = append(out, FlatTask{Task: t, Depth: depth})
			walk(t.SubTasks, depth+1)
		}
	}
	walk(tasks, 0)
	return out
}

// TimeEntry is a time log already recorded in Teamwork.
type TimeEntry struct {
	ID           ID     `json:"id"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	Hours        ID     `json:"hours"`
	Minutes      ID     `json:"minutes"`
	ProjectID    ID     `json:"project-id"`
	ProjectName  string `json:"project-name"`
	TaskListName string `json:"todo-list-name"`
	TaskID       ID     `json:"todo-item-id"`
	TaskName     string `json:"todo-item-name"`
}

// Day returns the calendar day of the entry.
func (e TimeEntry) Day() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, e.Date)
	if err != nil {
		t, err = time.Parse(schedule.DateLayout, e.Date)
		if err != nil {
			return time.Time{}, fmt.Errorf("time entry %s: bad date %q", e.ID, e.Date)
		}
	}
	return schedule.Day(t), nil
}

// Duration returns hours plus minutes as a decimal hour count.
// Unparsable parts count as zero.
func (e TimeEntry) Duration() decimal.Decimal {
	h, err := decimal.NewFromString(string(e.Hours))
	if err != nil {
		h = decimal.Zero
	}
	m, err := decimal.NewFromString(string(e.Minutes))
	if err != nil {
		m = decimal.Zero
	}
	return h.Add(m.Div(decimal.NewFromInt(60)))
}

// Task returns the task the entry was logged on.
func (e TimeEntry) Task() Task {
	return Task{ID: e.TaskID, Name: e.TaskName}
}

// TimeEntryInput is the body of a create-time-entry request.
type TimeEntryInput struct {
	Description string `json:"description"`
	PersonID    string `json:"person-id"`
	Date        string `json:"date"` // YYYYMMDD
	Time        string `json:"time"` // HH:MM
	Hours       string `json:"hours"`
	Minutes     string `json:"minutes"`
	IsBillable  string `json:"isbillable"`
}

// Created is the response to a create-time-entry request.
type Created struct {
	ID     ID     `json:"timeLogId"`
	Status string `json:"STATUS"`
}
