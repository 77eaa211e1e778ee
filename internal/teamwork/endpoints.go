package teamwork

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Me returns the person owning the API token. It is the cheapest way to
// check credentials.
func (c *Client) Me(ctx context.Context) (Person, error) {
	var resp struct {
		Person Person `json:"person"`
	}
	if err := c.get(ctx, "/me.json", nil, &resp); err != nil {
		return Person{}, err
	}
	if resp.Person.ID == "" {
		return Person{}, fmt.Errorf("me.json: response has no person id")
	}
	return resp.Person, nil
}

// Projects lists projects, filtered by search when non-empty.
func (c *Client) Projects(ctx context.Context, search string) ([]Project, error) {
	params := url.Values{}
	if search != "" {
		params.Set("searchTerm", search)
	}
	var resp struct {
		Projects []Project `json:"projects"`
	}
	if err := c.get(ctx, "/projects.json", params, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

// TaskLists lists the task lists of a project.
func (c *Client) TaskLists(ctx context.Context, projectID string) ([]TaskList, error) {
	var resp struct {
		TaskLists []TaskList `json:"tasklists"`
	}
	path := fmt.Sprintf("/projects/%s/tasklists.json", url.PathEscape(projectID))
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.TaskLists, nil
}

// Tasks lists the tasks of a task list with sub tasks nested.
func (c *Client) Tasks(ctx context.Context, taskListID string) ([]Task, error) {
	var resp struct {
		Tasks []Task `json:"todo-items"`
	}
	path := fmt.Sprintf("/tasklists/%s/tasks.json", url.PathEscape(taskListID))
	if err := c.get(ctx, path, url.Values{"nestSubTasks": {"yes"}}, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// maxPages bounds AllTimeEntries.
const maxPages = 200

// TimeEntryQuery selects a person's time entries, newest first.
type TimeEntryQuery struct {
	PersonID string
	PageSize int
	Page     int       // 1-based; zero means the first page
	From     time.Time // zero means no lower bound
}

// TimeEntries lists time entries matching q.
func (c *Client) TimeEntries(ctx context.Context, q TimeEntryQuery) ([]TimeEntry, error) {
	if q.PageSize <= 0 {
		q.PageSize = 10
	}
	params := url.Values{
		"userId":    {q.PersonID},
		"pageSize":  {strconv.Itoa(q.PageSize)},
		"sortby":    {"date"},
		"sortorder": {"DESC"},
	}
	if q.Page > 1 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if !q.From.IsZero() {
		params.Set("fromdate", q.From.Format("20060102"))
	}

	var resp struct {
		TimeEntries []TimeEntry `json:"time-entries"`
	}
	if err := c.get(ctx, "/time_entries.json", params, &resp); err != nil {
		return nil, err
	}
	return resp.TimeEntries, nil
}

// AllTimeEntries reads every page matching q, stopping at the first page
// shorter than q.PageSize.
func (c *Client) AllTimeEntries(ctx context.Context, q TimeEntryQuery) ([]TimeEntry, error) {
	if q.PageSize <= 0 {
		q.PageSize = 500
	}

	var all []TimeEntry
	for page := 1; page <= maxPages; page++ {
		q.Page = page
		entries, err := c.TimeEntries(ctx, q)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
		if len(entries) < q.PageSize {
			return all, nil
		}
	}
	return nil, fmt.Errorf("time entries: more than %d pages of %d", maxPages, q.PageSize)
}

// RecentTasks returns the distinct tasks of the person's last n time
// entries, most recently used first.
func (c *Client) RecentTasks(ctx context.Context, personID string, n int) ([]Task, error) {
	entries, err := c.TimeEntries(ctx, TimeEntryQuery{PersonID: personID, PageSize: n})
	if err != nil {
		return nil, err
	}

	seen := make(map[ID]bool)
	var tasks []Task
	for _, e := range entries {
		if e.TaskID == "" || seen[e.TaskID] {
			continue
		}
		seen[e.TaskID] = true
		tasks = append(tasks, e.Task())
	}
	return tasks, nil
}

// CreateTimeEntry logs time on a task.
func (c *Client) CreateTimeEntry(ctx context.Context, taskID string, in TimeEntryInput) (Created, error) {
	body := map[string]TimeEntryInput{"time-entry": in}
	path := fmt.Sprintf("/tasks/%s/time_entries.json", url.PathEscape(taskID))

	var created Created
	if err := c.post(ctx, path, body, &created); err != nil {
		return Created{}, err
	}
	if created.Status != "" && created.Status != "OK" {
		return created, fmt.Errorf("create time entry on task %s: status %s", taskID, created.Status)
	}
	return created, nil
}
