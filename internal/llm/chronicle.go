// Chronicle — a prose digest of the diplomatic era, written by the model
// when one is configured and by templates when not.
package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// ChronicleData is the digest handed to the writer. The API layer fills
// it from a world snapshot.
type ChronicleData struct {
	Turn            uint64
	ActiveNations   int
	WarRisk         float64
	AvgRelationship float64
	OpenSessions    int
	Alliances       int
	Treaties        int
	OpenGrievances  int

	Powers    []PowerSummary
	Deals     []string
	Incidents []string
	Diplomacy []string
}

// PowerSummary is one nation's line in the chronicle briefing.
type PowerSummary struct {
	Name        string
	Personality string
	Power       float64
	Allies      int
	Grievances  int
}

// Chronicle holds a generated chronicle entry.
type Chronicle struct {
	GeneratedAt time.Time `json:"generated_at"`
	Turn        uint64    `json:"turn"`
	Content     string    `json:"content"`
}

// GenerateChronicle writes the chronicle for a turn, falling back to the
// template rendering when no model is configured or the call fails.
func GenerateChronicle(client *Client, data *ChronicleData) (*Chronicle, error) {
	if !client.Enabled() {
		return &Chronicle{
			GeneratedAt: time.Now(),
			Turn:        data.Turn,
			Content:     generateFallbackChronicle(data),
		}, nil
	}

	system := `You are the court chronicler of a continent of rival powers locked in perpetual negotiation. Alliances form and lapse, grievances fester, envoys cross borders with offers and ultimatums. Write a chronicle entry in a dry, knowing, slightly world-weary register — part gazette, part history being written as it happens. Work from the briefing only; invent no nations and no events. Keep it under 400 words. Do not break character or mention that this is a simulation.`

	prompt := buildChroniclePrompt(data)

	content, err := client.Complete(system, prompt, 800)
	if err != nil {
		// Fall back to the template chronicle on model failure.
		return &Chronicle{
			GeneratedAt: time.Now(),
			Turn:        data.Turn,
			Content:     generateFallbackChronicle(data),
		}, nil
	}

	return &Chronicle{
		GeneratedAt: time.Now(),
		Turn:        data.Turn,
		Content:     content,
	}, nil
}

func buildChroniclePrompt(data *ChronicleData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write the chronicle entry for the %s turn.\n\n", humanize.Ordinal(int(data.Turn)))
	fmt.Fprintf(&b, "CONTINENT: %d active powers. War risk %.0f/100. Average standing %.1f.\n",
		data.ActiveNations, data.WarRisk, data.AvgRelationship)
	fmt.Fprintf(&b, "Negotiations open: %d. Alliances: %d. Treaties: %d. Unresolved grievances: %d.\n\n",
		data.OpenSessions, data.Alliances, data.Treaties, data.OpenGrievances)

	if len(data.Powers) > 0 {
		fmt.Fprintf(&b, "THE POWERS:\n")
		for _, p := range data.Powers {
			fmt.Fprintf(&b, "- %s (%s temperament): strength %s, %d allies, %d grievances held\n",
				p.Name, p.Personality, humanize.Comma(int64(p.Power)), p.Allies, p.Grievances)
		}
		b.WriteString("\n")
	}

	if len(data.Deals) > 0 {
		fmt.Fprintf(&b, "DEALS CONCLUDED:\n")
		for i, d := range data.Deals {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- %s\n", d)
		}
		b.WriteString("\n")
	}

	if len(data.Incidents) > 0 {
		fmt.Fprintf(&b, "INCIDENTS:\n")
		for i, inc := range data.Incidents {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- %s\n", inc)
		}
		b.WriteString("\n")
	}

	if len(data.Diplomacy) > 0 {
		fmt.Fprintf(&b, "DIPLOMATIC TRAFFIC:\n")
		for i, d := range data.Diplomacy {
			if i >= 8 {
				break
			}
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}

	return b.String()
}

func generateFallbackChronicle(data *ChronicleData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "CHRONICLE OF THE %s TURN\n\n", strings.ToUpper(humanize.Ordinal(int(data.Turn))))

	switch {
	case data.WarRisk >= 70:
		fmt.Fprintf(&b, "The continent stands at the edge. ")
	case data.WarRisk >= 40:
		fmt.Fprintf(&b, "An uneasy season. ")
	default:
		fmt.Fprintf(&b, "A quiet season, as these things go. ")
	}
	fmt.Fprintf(&b, "%d powers keep their courts; the war risk is reckoned at %.0f of 100, and the average standing between them sits at %.1f.\n\n",
		data.ActiveNations, data.WarRisk, data.AvgRelationship)

	fmt.Fprintf(&b, "There are %d negotiations on the table, %d alliances in force, %d treaties signed and standing, and %d grievances that no apology has yet answered.\n\n",
		data.OpenSessions, data.Alliances, data.Treaties, data.OpenGrievances)

	if len(data.Deals) > 0 {
		fmt.Fprintf(&b, "CONCLUDED THIS SEASON\n")
		for i, d := range data.Deals {
			if i >= 5 {
				fmt.Fprintf(&b, "...and %d more.\n", len(data.Deals)-5)
				break
			}
			fmt.Fprintf(&b, "- %s\n", d)
		}
		b.WriteString("\n")
	}

	if len(data.Incidents) > 0 {
		fmt.Fprintf(&b, "INCIDENTS OF NOTE\n")
		for i, inc := range data.Incidents {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- %s\n", inc)
		}
		b.WriteString("\n")
	}

	if len(data.Diplomacy) > 0 {
		fmt.Fprintf(&b, "FROM THE CHANCELLERIES\n")
		for i, d := range data.Diplomacy {
			if i >= 8 {
				break
			}
			fmt.Fprintf(&b, "- %s\n", d)
		}
		b.WriteString("\n")
	}

	if len(data.Powers) > 0 {
		fmt.Fprintf(&b, "THE POWERS AS THEY STAND\n")
		for _, p := range data.Powers {
			fmt.Fprintf(&b, "- %s, %s in temperament, fielding %s strength",
				p.Name, p.Personality, humanize.Comma(int64(p.Power)))
			if p.Allies > 0 {
				fmt.Fprintf(&b, ", with %d allies", p.Allies)
			}
			if p.Grievances > 0 {
				fmt.Fprintf(&b, ", nursing %d grievances", p.Grievances)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
