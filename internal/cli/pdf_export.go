package cli

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/quentinproust/teamwork-cli/internal/entry"
	"github.com/quentinproust/teamwork-cli/internal/schedule"
	"github.com/quentinproust/teamwork-cli/internal/timetrack"
)

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
)

// writeTimesheetPDF renders a timesheet of data and saves it to path.
func writeTimesheetPDF(data timetrack.ExportData, path string) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, data.Title, props.Text{Style: fontstyle.Bold, Size: 16, Color: &pdfHeaderColor}),
	)
	if len(data.Days) > 0 {
		period := fmt.Sprintf("%s to %s", schedule.Key(data.From), schedule.Key(data.To))
		m.AddRow(8, text.NewCol(12, period, props.Text{Size: 12, Color: &pdfMutedColor}))
	}
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(4)

	for _, day := range data.Days {
		label := fmt.Sprintf("%s, %s", day.Date.Weekday(), day.Date.Format("January 2"))
		m.AddRow(8,
			text.NewCol(9, label, props.Text{Style: fontstyle.Bold, Size: 10, Color: &pdfHeaderColor}),
			text.NewCol(3, entry.FormatHours(day.Total), props.Text{
				Style: fontstyle.Bold,
				Size:  10,
				Align: align.Right,
				Color: &pdfHeaderColor,
			}),
		)

		for _, group := range day.Groups {
			m.AddRow(6,
				text.NewCol(9, "  "+group.Project+" / "+group.Task, props.Text{Style: fontstyle.Bold, Size: 9}),
				text.NewCol(3, entry.FormatHours(group.Total), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
			)
			for _, e := range group.Entries {
				desc := e.Description
				if desc == "" {
					desc = "(no description)"
				}
				m.AddRow(5,
					text.NewCol(9, "    "+desc, props.Text{Size: 8, Color: &pdfMutedColor}),
					text.NewCol(3, entry.FormatHours(e.Hours), props.Text{Size: 8, Align: align.Right, Color: &pdfMutedColor}),
				)
			}
		}
		m.AddRow(4)
	}

	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(10,
		text.NewCol(9, "Total", props.Text{Style: fontstyle.Bold, Size: 12, Color: &pdfHeaderColor}),
		text.NewCol(3, entry.FormatHours(data.Total), props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Align: align.Right,
			Color: &pdfHeaderColor,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}
	return doc.Save(path)
}
