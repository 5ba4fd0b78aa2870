package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/career-mentor/internal/types"
)

// separator closes every journal entry.
var separator = strings.Repeat("-", 50)

// Journal appends a human-readable summary of each mentor session to
// <Dir>/<user>_session_log.txt.
type Journal struct {
	Dir string
	mu  sync.Mutex
	now func() time.Time
}

// NewJournal creates a Journal writing under dir.
func NewJournal(dir string) *Journal {
	return &Journal{Dir: dir, now: time.Now}
}

// Path returns the journal file for userID.
func (j *Journal) Path(userID string) string {
	return filepath.Join(j.Dir, userID+"_session_log.txt")
}

// Append writes one session summary for p.
func (j *Journal) Append(p types.UserProfile, matches []types.RoleMatch, advice string) error {
	now := time.Now
	if j.now != nil {
		now = j.now
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Session on %s ---\n", now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Background: %s\n", p.Background)
	fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(p.Skills, ", "))
	fmt.Fprintf(&sb, "Goals: %s\n\n", p.Goals)
	sb.WriteString("Dataset-Based Recommendations:\n")
	for _, m := range matches {
		fmt.Fprintf(&sb, "- %s (%s%%)\n", m.Role, FormatPercent(m.MatchPercent))
	}
	sb.WriteString("\nLLM Personalized Advice:\n")
	sb.WriteString(advice)
	sb.WriteString("\n")
	sb.WriteString(separator)
	sb.WriteString("\n\n")

	j.mu.Lock()
	defer j.mu.Unlock()

	if err := os.MkdirAll(j.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}
	f, err := os.OpenFile(j.Path(p.ID), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	if _, err := f.WriteString(sb.String()); err != nil {
		f.Close()
		return fmt.Errorf("failed to write journal: %w", err)
	}
	return f.Close()
}

// FormatPercent renders a match percent without trailing zeros (66.67, 50, 12.5).
func FormatPercent(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
