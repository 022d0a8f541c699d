// Package report renders solved assignments for humans: a plain-text report
// for the CLI and an XLSX workbook for download.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/elrathor/casting-api-go/pkg/casting"
)

// Render formats a solved assignment as a readable text report: the
// per-player table sorted by received rank, then the rank distribution and
// satisfaction counts.
func Render(res *casting.Result, rep *casting.Report, policy casting.Policy) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "OPTIMAL CHARACTER ASSIGNMENT")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Scoring System: %s\n", policy)
	fmt.Fprintf(&b, "Total Satisfaction Score: %d\n", rep.TotalScore)
	fmt.Fprintf(&b, "Average Score per Player: %.1f\n\n", rep.MeanScore)

	fmt.Fprintf(&b, "%-20s %-20s %-6s %s\n", "Player", "Character", "Rank", "Points")
	fmt.Fprintln(&b, strings.Repeat("-", 54))

	details := append([]casting.Detail(nil), res.Details...)
	sort.SliceStable(details, func(i, j int) bool {
		// Unranked sorts last.
		ri, rj := details[i].Rank, details[j].Rank
		if ri == casting.Unranked {
			return false
		}
		if rj == casting.Unranked {
			return true
		}
		return ri < rj
	})
	for _, d := range details {
		rank := "-"
		if d.Rank != casting.Unranked {
			rank = fmt.Sprintf("#%d", d.Rank)
		}
		fmt.Fprintf(&b, "%-20s %-20s %-6s %d\n", d.Player, d.Character, rank, d.Points)
	}

	fmt.Fprintln(&b, "\nRank Distribution:")
	ranks := make([]int, 0, len(rep.RankCounts))
	for r := range rep.RankCounts {
		if r != casting.Unranked {
			ranks = append(ranks, r)
		}
	}
	sort.Ints(ranks)
	for _, r := range ranks {
		fmt.Fprintf(&b, "  Rank #%d: %d players\n", r, rep.RankCounts[r])
	}
	if n := rep.RankCounts[casting.Unranked]; n > 0 {
		fmt.Fprintf(&b, "  Unranked: %d players\n", n)
	}

	fmt.Fprintf(&b, "\nFirst choice assignments: %d\n", rep.FirstChoice)
	fmt.Fprintf(&b, "Top 3 choice assignments: %d\n", rep.TopThree)

	if rep.AllWithinThreshold {
		fmt.Fprintf(&b, "\nAll players got a top-%d choice.\n", rep.Threshold)
	} else {
		fmt.Fprintf(&b, "\nSome players got lower choices:\n")
		for _, msg := range rep.Unsatisfied {
			fmt.Fprintf(&b, "  - %s\n", msg)
		}
	}

	return b.String()
}
