// Package analyze computes statistics and insights over a user collection.
package analyze

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/mcp-tg/sever-template/internal/userstore"
)

// Analyzer derives statistics, insights, and reports from user records. It is
// stateless; every call operates on the collection passed in.
type Analyzer struct{}

// New creates an Analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Summary holds the statistics served by the data://users/stats resource.
type Summary struct {
	Total             int            `json:"total"`
	UniqueNames       int            `json:"unique_names"`
	Domains           map[string]int `json:"domains"`
	MostCommonDomain  string         `json:"most_common_domain,omitempty"`
	DomainCount       int            `json:"domain_count"`
	AverageNameLength float64        `json:"average_name_length"`
}

// NameAnalysis holds name pattern statistics for the full report.
type NameAnalysis struct {
	TotalNames        int     `json:"total_names"`
	UniqueNames       int     `json:"unique_names"`
	AverageNameLength float64 `json:"avg_name_length"`
	LongestName       string  `json:"longest_name"`
	ShortestName      string  `json:"shortest_name"`
}

// DataQuality summarizes how much of the collection passes the email check.
type DataQuality struct {
	ValidityPercentage float64 `json:"validity_percentage"`
	IssuesFound        int     `json:"issues_found"`
}

// ReportSummary is the header block of a Report.
type ReportSummary struct {
	TotalUsers   int `json:"total_users"`
	ValidUsers   int `json:"valid_users"`
	InvalidUsers int `json:"invalid_users"`
}

// Report is the comprehensive analysis served by data://users/report.
type Report struct {
	Summary        ReportSummary  `json:"summary"`
	DomainAnalysis map[string]int `json:"domain_analysis"`
	NameAnalysis   NameAnalysis   `json:"name_analysis"`
	DataQuality    DataQuality    `json:"data_quality"`
}

// Domains returns the email-domain frequency map. Records whose email lacks
// "@" are skipped.
func (a *Analyzer) Domains(records []userstore.Record) map[string]int {
	domains := make(map[string]int)
	for _, r := range records {
		if _, domain, ok := strings.Cut(r.Email, "@"); ok {
			domains[domain]++
		}
	}
	return domains
}

// Summarize computes the stats-resource summary.
func (a *Analyzer) Summarize(records []userstore.Record) Summary {
	domains := a.Domains(records)

	names := make(map[string]struct{}, len(records))
	for _, r := range records {
		names[r.Name] = struct{}{}
	}

	return Summary{
		Total:             len(records),
		UniqueNames:       len(names),
		Domains:           domains,
		MostCommonDomain:  mostCommonDomain(domains),
		DomainCount:       len(domains),
		AverageNameLength: round2(averageNameLength(records)),
	}
}

// Insights generates the rule-based findings for the analyze_users tool.
func (a *Analyzer) Insights(records []userstore.Record) []string {
	insights := []string{}
	domains := a.Domains(records)

	if len(domains) > 0 {
		top := mostCommonDomain(domains)
		insights = append(insights,
			fmt.Sprintf("Found %d unique email domains", len(domains)),
			fmt.Sprintf("Most common domain: %s (%d users)", top, domains[top]),
		)
		switch {
		case len(domains) > 3:
			insights = append(insights, "Good diversity in email domains")
		case len(domains) == 1:
			insights = append(insights, "All users from single domain - consider expanding reach")
		}
	}

	if len(records) > 0 {
		avg := averageNameLength(records)
		insights = append(insights, fmt.Sprintf("Average name length: %.1f characters", avg))
		switch {
		case avg > 15:
			insights = append(insights, "Users tend to have longer names")
		case avg < 8:
			insights = append(insights, "Users tend to have shorter names")
		}
	}

	invalid := countInvalidEmails(records)
	if invalid > 0 {
		insights = append(insights, fmt.Sprintf("Data quality issue: %d users with invalid emails", invalid))
	} else if len(records) > 0 {
		insights = append(insights, "All users have valid email format")
	}

	return insights
}

// Report builds the comprehensive report. The domain and name halves are
// independent, so they run concurrently.
func (a *Analyzer) Report(records []userstore.Record) (*Report, error) {
	report := &Report{}

	var g errgroup.Group
	g.Go(func() error {
		report.DomainAnalysis = a.Domains(records)
		return nil
	})
	g.Go(func() error {
		report.NameAnalysis = analyzeNames(records)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	invalid := countInvalidEmails(records)
	valid := len(records) - invalid
	report.Summary = ReportSummary{
		TotalUsers:   len(records),
		ValidUsers:   valid,
		InvalidUsers: invalid,
	}

	validity := 0.0
	if len(records) > 0 {
		validity = round2(float64(valid) / float64(len(records)) * 100)
	}
	report.DataQuality = DataQuality{
		ValidityPercentage: validity,
		IssuesFound:        invalid,
	}

	return report, nil
}

func analyzeNames(records []userstore.Record) NameAnalysis {
	na := NameAnalysis{TotalNames: len(records)}
	if len(records) == 0 {
		return na
	}

	unique := make(map[string]struct{}, len(records))
	longest, shortest := records[0].Name, records[0].Name
	for _, r := range records {
		unique[r.Name] = struct{}{}
		if utf8.RuneCountInString(r.Name) > utf8.RuneCountInString(longest) {
			longest = r.Name
		}
		if utf8.RuneCountInString(r.Name) < utf8.RuneCountInString(shortest) {
			shortest = r.Name
		}
	}

	na.UniqueNames = len(unique)
	na.AverageNameLength = round2(averageNameLength(records))
	na.LongestName = longest
	na.ShortestName = shortest
	return na
}

// mostCommonDomain picks the highest-frequency domain, breaking ties
// lexicographically so results are deterministic.
func mostCommonDomain(domains map[string]int) string {
	keys := make([]string, 0, len(domains))
	for d := range domains {
		keys = append(keys, d)
	}
	sort.Strings(keys)

	best := ""
	for _, d := range keys {
		if best == "" || domains[d] > domains[best] {
			best = d
		}
	}
	return best
}

// averageNameLength averages name lengths in characters, not bytes, over the
// records that have a name at all.
func averageNameLength(records []userstore.Record) float64 {
	total, counted := 0, 0
	for _, r := range records {
		if r.Name == "" {
			continue
		}
		total += utf8.RuneCountInString(r.Name)
		counted++
	}
	if counted == 0 {
		return 0
	}
	return float64(total) / float64(counted)
}

func countInvalidEmails(records []userstore.Record) int {
	n := 0
	for _, r := range records {
		if !strings.Contains(r.Email, "@") {
			n++
		}
	}
	return n
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
