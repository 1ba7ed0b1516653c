package dices

// TagTypes maps speech tag codes to their labels. "trag" marks the Seneca
// tragedy passages; the rest are the DICES speech types.
var TagTypes = map[string]string{
	"trag": "tragedy",

	"cha": "Challenge",
	"com": "Command",
	"con": "Consolation",
	"del": "Deliberation",
	"des": "Desire and Wish",
	"exh": "Exhortation and Self-Exhortation",
	"far": "Farewell",
	"gre": "Greeting and Reception",
	"inf": "Information and Description",
	"inv": "Invitation",
	"ins": "Instruction",
	"lam": "Lament",
	"lau": "Praise and Laudation",
	"mes": "Message",
	"nar": "Narration",
	"ora": "Prophecy: Oracular Speech: and Interpretation",
	"per": "Persuasion",
	"pra": "Prayer",
	"que": "Question",
	"req": "Request",
	"res": "Reply to Question",
	"tau": "Taunt",
	"thr": "Threat",
	"vit": "Vituperation",
	"vow": "Promise and Oath",
	"war": "Warning",
	"und": "Undefined",
}

// TagLabel returns the label for a tag code.
func TagLabel(code string) (string, bool) {
	label, ok := TagTypes[code]
	return label, ok
}
