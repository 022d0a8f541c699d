package report

import (
	"fmt"
	"sort"

	"github.com/elrathor/casting-api-go/pkg/casting"
	"github.com/xuri/excelize/v2"
)

// ExportXLSX builds a workbook with an Assignments sheet (one row per player,
// sorted by received rank) and a Summary sheet, returned as bytes ready for
// download or writing to disk.
func ExportXLSX(res *casting.Result, rep *casting.Report, policy casting.Policy) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Assignments"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	f.SetCellValue(sheet, "A1", "Player")
	f.SetCellValue(sheet, "B1", "Character")
	f.SetCellValue(sheet, "C1", "Rank")
	f.SetCellValue(sheet, "D1", "Points")

	headerStyleID, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Font:      &excelize.Font{Bold: true},
	})
	if err == nil {
		_ = f.SetCellStyle(sheet, "A1", "D1", headerStyleID)
	}

	details := append([]casting.Detail(nil), res.Details...)
	sort.SliceStable(details, func(i, j int) bool {
		ri, rj := details[i].Rank, details[j].Rank
		if ri == casting.Unranked {
			return false
		}
		if rj == casting.Unranked {
			return true
		}
		return ri < rj
	})

	for i, d := range details {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), d.Player)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), d.Character)
		if d.Rank == casting.Unranked {
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), "unranked")
		} else {
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), d.Rank)
		}
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), d.Points)
	}
	_ = f.SetColWidth(sheet, "A", "B", 24)

	const summary = "Summary"
	if _, err := f.NewSheet(summary); err != nil {
		return nil, err
	}

	rows := [][2]any{
		{"Scoring System", policy.String()},
		{"Total Satisfaction Score", rep.TotalScore},
		{"Average Score per Player", rep.MeanScore},
		{"First Choice Assignments", rep.FirstChoice},
		{"Top 3 Choice Assignments", rep.TopThree},
		{fmt.Sprintf("All Within Top %d", rep.Threshold), rep.AllWithinThreshold},
	}
	ranks := make([]int, 0, len(rep.RankCounts))
	for r := range rep.RankCounts {
		if r != casting.Unranked {
			ranks = append(ranks, r)
		}
	}
	sort.Ints(ranks)
	for _, r := range ranks {
		rows = append(rows, [2]any{fmt.Sprintf("Players at Rank #%d", r), rep.RankCounts[r]})
	}
	if n := rep.RankCounts[casting.Unranked]; n > 0 {
		rows = append(rows, [2]any{"Players Unranked", n})
	}

	for i, kv := range rows {
		f.SetCellValue(summary, fmt.Sprintf("A%d", i+1), kv[0])
		f.SetCellValue(summary, fmt.Sprintf("B%d", i+1), kv[1])
	}
	_ = f.SetColWidth(summary, "A", "A", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
