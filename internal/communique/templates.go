// Communiqué line tables — one pool per purpose and voice. The voice
// comes from the proposer's personality profile; missing voices fall
// back to the measured pool. Slots: {from}, {to}, {reason}.
// See design doc Section 7.
package communique

import (
	"github.com/talgya/statecraft/internal/diplomacy"
)

const voiceFallback = "measured"

var lineTables = map[diplomacy.Purpose]map[string][]string{
	diplomacy.PurposeRequestHelp: {
		"measured": {
			"{from} requests assistance from {to}, citing {reason}.",
			"The government of {from} appeals to {to} for support against a gathering danger.",
		},
		"belligerent": {
			"{from} demands that {to} honor its obligations; {reason} will not be endured alone.",
		},
		"wary": {
			"{from} quietly sounds out {to}, fearing {reason} may soon be at its gates.",
		},
		"distant": {
			"Against long habit, {from} breaks its silence to ask {to} for aid. {reason} left it no choice.",
		},
		"erratic": {
			"A midnight courier from {from} reaches {to}, pleading for help with {reason} in language both florid and alarming.",
		},
	},
	diplomacy.PurposeOfferAlliance: {
		"measured": {
			"{from} proposes a formal alliance with {to}, noting {reason}.",
			"{from} extends the hand of partnership to {to}.",
		},
		"wary": {
			"{from} proposes that {to} join it behind a common wall; {reason} threatens them both.",
		},
		"sly": {
			"{from} suggests to {to}, with every courtesy, that their interests have lately become... aligned.",
		},
	},
	diplomacy.PurposeReconciliation: {
		"measured": {
			"{from} seeks to mend relations with {to} and offers amends for {reason}.",
			"{from} extends a formal apology to {to}, hoping to close the matter of {reason}.",
		},
		"belligerent": {
			"{from} concedes, without enthusiasm, that the matter of {reason} ought to be settled with {to}.",
		},
		"sly": {
			"{from} professes its deep and sudden regret to {to} over {reason}.",
		},
		"distant": {
			"{from} wishes the ledger with {to} clean, and tenders amends for {reason}.",
		},
	},
	diplomacy.PurposeDemandCompensation: {
		"measured": {
			"{from} presents {to} with a formal demand for restitution over {reason}.",
			"{from} expects {to} to make good the damage done: {reason}.",
		},
		"belligerent": {
			"{from} delivers an ultimatum to {to}: pay for {reason}, or the account will be settled another way.",
		},
		"wary": {
			"{from} asks {to}, firmly but without heat, to answer for {reason}.",
		},
	},
	diplomacy.PurposeWarning: {
		"measured": {
			"{from} issues a formal warning to {to} regarding {reason}.",
			"{from} puts {to} on notice: {reason} must stop.",
		},
		"belligerent": {
			"{from} warns {to} in the plainest terms that {reason} will be answered in kind.",
			"The patience of {from} is spent. {to} is advised that {reason} ends now.",
		},
		"distant": {
			"{from} rarely speaks; when it does, {to} would do well to listen. {reason} has been noticed.",
		},
	},
	diplomacy.PurposeTradeOpportunity: {
		"measured": {
			"{from} proposes an exchange of goods with {to}.",
			"{from} opens trade talks with {to}, each side holding what the other lacks.",
		},
		"sly": {
			"{from} happens to mention to {to} a surplus it might, for the right consideration, be persuaded to part with.",
		},
		"distant": {
			"{from} proposes commerce with {to} — goods for goods, nothing further implied.",
		},
	},
	diplomacy.PurposeMutualDefense: {
		"measured": {
			"{from} proposes a mutual defense compact with {to} against a shared menace.",
		},
		"wary": {
			"{from} urges {to} to stand together; {reason} leaves neither safe alone.",
		},
	},
	diplomacy.PurposePeaceOffer: {
		"measured": {
			"{from} sues for peace with {to}.",
			"{from} proposes to {to} that hostilities end on honorable terms.",
		},
		"belligerent": {
			"{from} offers {to} one chance to end this on terms both can live with.",
		},
	},
	diplomacy.PurposeJointVenture: {
		"measured": {
			"{from} invites {to} into a joint undertaking to their common profit.",
		},
		"sly": {
			"{from} lays before {to} a scheme of mutual enrichment, details to follow.",
		},
	},
}

// linesFor returns the template pool for a purpose and voice, falling
// back to the measured pool, then to a plain-statement default.
func linesFor(purpose diplomacy.Purpose, voice string) []string {
	voices, ok := lineTables[purpose]
	if !ok {
		return []string{"{from} opens negotiations with {to}."}
	}
	if pool, ok := voices[voice]; ok && len(pool) > 0 {
		return pool
	}
	return voices[voiceFallback]
}
