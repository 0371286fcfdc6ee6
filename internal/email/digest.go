package email

import (
	"fmt"
	"strings"
)

// DigestGame is one upcoming game line in a weekly digest.
type DigestGame struct {
	Date         string
	StartTime    string
	EndTime      string
	OpponentName string
	Location     string
	Notes        string
}

// DigestEmail is a rendered digest ready to send.
type DigestEmail struct {
	Subject string
	Body    string
}

// BuildWeeklyDigest renders the upcoming-week schedule for one team as a
// plain-text email. Games are listed in the order given.
func BuildWeeklyDigest(teamName string, games []DigestGame) DigestEmail {
	subject := fmt.Sprintf("%s: schedule for the coming week", teamName)

	var b strings.Builder
	if len(games) == 0 {
		fmt.Fprintf(&b, "No games are scheduled for %s in the next 7 days.\n", teamName)
		return DigestEmail{Subject: subject, Body: b.String()}
	}

	fmt.Fprintf(&b, "Upcoming games for %s:\n\n", teamName)
	for _, g := range games {
		fmt.Fprintf(&b, "- %s %s-%s vs %s", g.Date, g.StartTime, g.EndTime, g.OpponentName)
		if loc := strings.TrimSpace(g.Location); loc != "" {
			fmt.Fprintf(&b, " at %s", loc)
		}
		b.WriteString("\n")
		if notes := strings.TrimSpace(g.Notes); notes != "" {
			fmt.Fprintf(&b, "  Note: %s\n", notes)
		}
	}
	b.WriteString("\nGood luck out there.\n")

	return DigestEmail{Subject: subject, Body: b.String()}
}
