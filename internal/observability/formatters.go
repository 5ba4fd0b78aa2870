// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-mentor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted console output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs the stored profile.
func (p *Printer) PrintProfile(profile types.UserProfile) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("User:       %s\n", profile.ID))
	sb.WriteString(fmt.Sprintf("Background: %s\n", orDash(profile.Background)))
	sb.WriteString(fmt.Sprintf("Goals:      %s\n", orDash(profile.Goals)))
	sb.WriteString("\n")
	if len(profile.Skills) == 0 {
		sb.WriteString("Skills: none recorded")
	} else {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(profile.Skills)))
		for _, line := range wrap(strings.Join(profile.Skills, ", "), boxWidth-6) {
			sb.WriteString(fmt.Sprintf("  %s\n", line))
		}
	}

	p.printBox("USER PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the ranked roles with their match percent.
func (p *Printer) PrintRecommendations(matches []types.RoleMatch) {
	if len(matches) == 0 {
		p.printBox("RECOMMENDED ROLES", "No strong matches found. Try adding more skills.")
		return
	}

	var sb strings.Builder
	for i, m := range matches {
		sb.WriteString(fmt.Sprintf("#%d  %-36s %6.2f%%\n", i+1, truncate(m.Role, 36), m.MatchPercent))
	}
	p.printBox("RECOMMENDED ROLES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGap outputs the matched and missing skills for a role.
func (p *Printer) PrintGap(gap types.SkillGap) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role: %s\n\n", gap.Role))
	if gap.Complete() {
		sb.WriteString("You already have all the required skills!")
	} else {
		sb.WriteString(fmt.Sprintf("Missing (%d):\n", len(gap.Missing)))
		for _, s := range gap.Missing {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
		if len(gap.Matched) > 0 {
			sb.WriteString(fmt.Sprintf("\nMatched (%d):\n", len(gap.Matched)))
			for _, s := range gap.Matched {
				sb.WriteString(fmt.Sprintf("  • %s\n", s))
			}
		}
	}
	p.printBox("SKILL GAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoleRequirements outputs the skills and resources of a role.
func (p *Printer) PrintRoleRequirements(req types.RoleRequirements) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role: %s\n\n", req.Role))
	writeList(&sb, "Skills", req.Skills)
	writeList(&sb, "Courses", req.Resources.Courses)
	writeList(&sb, "Projects", req.Resources.Projects)
	writeList(&sb, "Interview Topics", req.Resources.InterviewTopics)
	p.printBox("ROLE REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintJobs outputs job links, flagging sample postings.
func (p *Printer) PrintJobs(role string, jobs []types.JobLink, mock bool) {
	var sb strings.Builder
	if mock {
		sb.WriteString("No live job links found. Showing sample jobs.\n\n")
	}
	if len(jobs) == 0 {
		sb.WriteString("No jobs found.")
	}
	count := min(len(jobs), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := jobs[i]
		sb.WriteString(fmt.Sprintf("• %s\n", job.Title))
		sb.WriteString(fmt.Sprintf("  %s | %s\n", job.Company, job.Location))
		sb.WriteString(fmt.Sprintf("  %s\n", job.URL))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(jobs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(jobs)-maxItemsToShow))
	}
	p.printBox("JOBS: "+strings.ToUpper(role), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAdvice outputs free-text advice, wrapped to the box width.
func (p *Printer) PrintAdvice(title, text string) {
	var lines []string
	for _, para := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(para) == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrap(para, boxWidth-4)...)
	}
	p.printBox(title, strings.Join(lines, "\n"))
}

// PrintDashboard outputs a compact summary of a mentor session.
func (p *Printer) PrintDashboard(profile types.UserProfile, matches []types.RoleMatch, gap *types.SkillGap) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills entered:   %d\n", len(profile.Skills)))
	sb.WriteString(fmt.Sprintf("Roles matched:    %d\n", len(matches)))
	if len(matches) > 0 {
		sb.WriteString(fmt.Sprintf("Top role:         %s (%.2f%%)\n", matches[0].Role, matches[0].MatchPercent))
	}
	if gap != nil {
		sb.WriteString(fmt.Sprintf("Skills to learn:  %d\n", len(gap.Missing)))
	}
	p.printBox("CAREER DASHBOARD", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string) {
	sb.WriteString(title + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// wrap breaks text into lines of at most width bytes on word boundaries.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
