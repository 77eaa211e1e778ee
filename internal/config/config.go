package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quentinproust/teamwork-cli/internal/entry"
	"github.com/quentinproust/teamwork-cli/internal/schedule"
	"github.com/quentinproust/teamwork-cli/internal/stringutil"
)

// DefaultHoursPerDay is the length of a full working day.
var DefaultHoursPerDay = decimal.NewFromInt(8)

// Keys accepted by Set, in display order.
var Keys = []string{"hours-per-day", "workdays", "start-time", "region"}

// TimeOff is a recorded absence. Hours at or above the working day length
// make the whole day unavailable.
type TimeOff struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Hours int    `json:"hours" validate:"gte=1,lte=24"`
}

// ProjectAlias is a short name for a Teamwork project id.
type ProjectAlias struct {
	ProjectID string `json:"project_id" validate:"required"`
	Alias     string `json:"alias" validate:"required"`
}

// Config is the persisted state in ~/.teamwork/config.json.
type Config struct {
	Credentials Credentials     `json:"credentials" validate:"-"`
	HoursPerDay decimal.Decimal `json:"hours_per_day"`
	Workdays    string          `json:"workdays,omitempty"`
	StartTime   string          `json:"start_time,omitempty"`
	Region      string          `json:"region,omitempty" validate:"omitempty,oneof=us eu"`
	Aliases     []ProjectAlias  `json:"aliases,omitempty" validate:"dive"`
	TimesOff    []TimeOff       `json:"times_off,omitempty" validate:"dive"`
	BaseURL     string          `json:"-"`
	HTTPTimeout time.Duration   `json:"-"`
}

// Dir returns the global teamwork config directory.
func Dir(homeDir string) string {
	return filepath.Join(homeDir, ".teamwork")
}

// Path returns the path to config.json.
func Path(homeDir string) string {
	return filepath.Join(Dir(homeDir), "config.json")
}

// Default returns a config with no credentials and default settings.
func Default() *Config {
	return &Config{
		HoursPerDay: DefaultHoursPerDay,
		Workdays:    schedule.DefaultWorkdays,
		StartTime:   schedule.DefaultStartTime.String(),
	}
}

// Read loads the config file. Returns defaults if the file does not exist.
func Read(homeDir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(homeDir))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", Path(homeDir), err)
	}
	if !cfg.HoursPerDay.IsPositive() {
		cfg.HoursPerDay = DefaultHoursPerDay
	}
	if cfg.Workdays == "" {
		cfg.Workdays = schedule.DefaultWorkdays
	}
	if cfg.StartTime == "" {
		cfg.StartTime = schedule.DefaultStartTime.String()
	}
	return cfg, nil
}

// Write saves the config file, creating the directory if needed. The file
// holds the API token so it is only readable by its owner.
func Write(homeDir string, cfg *Config) error {
	if err := validateStruct(cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(Dir(homeDir), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(Path(homeDir), data, 0600)
}

// Set updates one setting from its command-line form.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case "hours-per-day":
		h, err := decimal.NewFromString(value)
		if err != nil || !h.IsPositive() || h.GreaterThan(decimal.NewFromInt(24)) {
			return fmt.Errorf("hours-per-day must be a number between 0 and 24, got %q", value)
		}
		m := entry.MinutesOf(h)
		if m < 1 {
			return fmt.Errorf("hours-per-day must be at least one minute, got %q", value)
		}
		c.HoursPerDay = entry.HoursOf(m)
	case "workdays":
		rule, err := schedule.NormalizeWorkdays(value)
		if err != nil {
			return err
		}
		c.Workdays = rule
	case "start-time":
		t, err := schedule.ParseTimeOfDay(value)
		if err != nil {
			return err
		}
		c.StartTime = t.String()
	case "region":
		value = strings.ToLower(value)
		if value != "us" && value != "eu" {
			return fmt.Errorf("region must be one of: us eu, got %q", value)
		}
		c.Region = value
	default:
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// Get returns the display value of a setting.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "hours-per-day":
		return c.HoursPerDay.Round(4).String(), nil
	case "workdays":
		return c.Workdays, nil
	case "start-time":
		return c.StartTime, nil
	case "region":
		if c.Region == "" {
			return "us", nil
		}
		return c.Region, nil
	}
	return "", fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys, ", "))
}

// Start returns the configured start time of submitted entries.
func (c *Config) Start() schedule.TimeOfDay {
	t, err := schedule.ParseTimeOfDay(c.StartTime)
	if err != nil {
		return schedule.DefaultStartTime
	}
	return t
}

// SetAlias names a project. The alias is slugified; an existing alias with
// the same name is repointed.
func (c *Config) SetAlias(projectID, alias string) (ProjectAlias, error) {
	slug := stringutil.Slugify(alias)
	if slug == "" {
		return ProjectAlias{}, fmt.Errorf("alias %q has no usable characters", alias)
	}
	if strings.TrimSpace(projectID) == "" {
		return ProjectAlias{}, fmt.Errorf("project id is required")
	}

	a := ProjectAlias{ProjectID: strings.TrimSpace(projectID), Alias: slug}
	for i := range c.Aliases {
		if c.Aliases[i].Alias == slug {
			c.Aliases[i] = a
			return a, nil
		}
	}
	c.Aliases = append(c.Aliases, a)
	return a, nil
}

// ResolveProject returns the project id for an alias, or ref itself when it
// is not a known alias.
func (c *Config) ResolveProject(ref string) string {
	slug := stringutil.Slugify(ref)
	for _, a := range c.Aliases {
		if a.Alias == slug {
			return a.ProjectID
		}
	}
	return strings.TrimSpace(ref)
}

// AliasFor returns the alias of a project id, if any.
func (c *Config) AliasFor(projectID string) string {
	for _, a := range c.Aliases {
		if a.ProjectID == projectID {
			return a.Alias
		}
	}
	return ""
}

// AddTimeOff records an absence, replacing any previous one on that date.
// The list is kept sorted by date.
func (c *Config) AddTimeOff(d time.Time, hours int) (TimeOff, error) {
	t := TimeOff{Date: schedule.Key(d), Hours: hours}
	if err := validateStruct(t); err != nil {
		return TimeOff{}, err
	}

	replaced := false
	for i := range c.TimesOff {
		if c.TimesOff[i].Date == t.Date {
			c.TimesOff[i] = t
			replaced = true
		}
	}
	if !replaced {
		c.TimesOff = append(c.TimesOff, t)
	}
	sort.Slice(c.TimesOff, func(i, j int) bool {
		return c.TimesOff[i].Date < c.TimesOff[j].Date
	})
	return t, nil
}

// TimesOffIn returns recorded absences in a year, or a single month of it
// when month is non-zero.
func (c *Config) TimesOffIn(year int, month time.Month) []TimeOff {
	prefix := fmt.Sprintf("%04d-", year)
	if month != 0 {
		prefix = fmt.Sprintf("%04d-%02d-", year, int(month))
	}

	var out []TimeOff
	for _, t := range c.TimesOff {
		if strings.HasPrefix(t.Date, prefix) {
			out = append(out, t)
		}
	}
	return out
}

// Absences splits recorded time off into days that are fully unavailable
// and hours already used on partially available days.
func (c *Config) Absences(hoursPerDay decimal.Decimal) (full []time.Time, partial map[string]decimal.Decimal) {
	partial = make(map[string]decimal.Decimal)
	for _, t := range c.TimesOff {
		d, err := time.Parse(schedule.DateLayout, t.Date)
		if err != nil {
			continue
		}
		h := decimal.NewFromInt(int64(t.Hours))
		if h.GreaterThanOrEqual(hoursPerDay) {
			full = append(full, d)
			continue
		}
		partial[t.Date] = h
	}
	return full, partial
}
