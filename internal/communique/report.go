// Turn report — the deterministic text digest behind /api/v1/report.
package communique

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// ReportData carries everything the report needs. The API layer fills
// it from a world snapshot.
type ReportData struct {
	Turn            uint64
	ActiveNations   int
	OpenSessions    int
	Proposed        uint64
	Accepted        uint64
	Rejected        uint64
	Countered       uint64
	Expired         uint64
	Alliances       int
	Treaties        int
	OpenGrievances  int
	AvgRelationship float64
	WarRisk         float64

	Powers []PowerLine
	Events []string
}

// PowerLine is one nation's row in the report.
type PowerLine struct {
	Name        string
	Personality string
	Power       float64
	Production  float64
	Intel       float64
	Uranium     float64
	Allies      int
	Grievances  int
}

// RenderReport produces the text report for a turn.
func RenderReport(data *ReportData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "THE CONTINENTAL DISPATCH\n")
	fmt.Fprintf(&b, "========================\n")
	fmt.Fprintf(&b, "The %s turn — %d powers active\n\n", humanize.Ordinal(int(data.Turn)), data.ActiveNations)

	fmt.Fprintf(&b, "STATE OF THE CONTINENT\n")
	fmt.Fprintf(&b, "War risk stands at %.0f of 100. ", data.WarRisk)
	switch {
	case data.WarRisk >= 70:
		fmt.Fprintf(&b, "The chancelleries speak openly of mobilization.\n")
	case data.WarRisk >= 40:
		fmt.Fprintf(&b, "Border garrisons drill more often than they used to.\n")
	default:
		fmt.Fprintf(&b, "The peace holds, for now.\n")
	}
	fmt.Fprintf(&b, "Average standing between powers: %.1f. Open grievances: %d.\n\n", data.AvgRelationship, data.OpenGrievances)

	fmt.Fprintf(&b, "THE DIPLOMATIC SEASON\n")
	fmt.Fprintf(&b, "Proposals to date: %s (%s accepted, %s rejected, %s countered, %s lapsed).\n",
		humanize.Comma(int64(data.Proposed)),
		humanize.Comma(int64(data.Accepted)),
		humanize.Comma(int64(data.Rejected)),
		humanize.Comma(int64(data.Countered)),
		humanize.Comma(int64(data.Expired)))
	fmt.Fprintf(&b, "On the table now: %d. Standing alliances: %d. Treaties in force: %d.\n\n",
		data.OpenSessions, data.Alliances, data.Treaties)

	if len(data.Powers) > 0 {
		fmt.Fprintf(&b, "THE POWERS\n")
		for _, p := range data.Powers {
			fmt.Fprintf(&b, "- %s (%s): fields %s strength, holds %s production, %s intel, %s uranium",
				p.Name, p.Personality,
				humanize.Comma(int64(p.Power)),
				humanize.Comma(int64(p.Production)),
				humanize.Comma(int64(p.Intel)),
				humanize.Comma(int64(p.Uranium)))
			if p.Allies > 0 {
				fmt.Fprintf(&b, ", %d allies", p.Allies)
			}
			if p.Grievances > 0 {
				fmt.Fprintf(&b, ", %d grievances on the books", p.Grievances)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(data.Events) > 0 {
		fmt.Fprintf(&b, "LATELY REPORTED\n")
		for i, e := range data.Events {
			if i >= 10 {
				fmt.Fprintf(&b, "...and %d more.\n", len(data.Events)-10)
				break
			}
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}

	return b.String()
}
