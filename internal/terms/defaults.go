package terms

// defaultTerms is the built-in hype vocabulary.
var defaultTerms = []Term{
	{Text: "extreme", Explanation: "Subjective exaggeration, avoid overstating."},
	{Text: "extremely", Explanation: "Subjective exaggeration, avoid overstating."},
	{Text: "giant", Explanation: "Vague qualitative descriptor, prefer precise measures."},
	{Text: "ultra", Explanation: "Promotional or exaggerated emphasis."},
	{Text: "impressive", Explanation: "Subjective evaluation, avoid opinion."},
	{Text: "outstanding", Explanation: "Subjective evaluation, avoid opinion."},
	{Text: "fascinating", Explanation: "Subjective evaluation, avoid opinion."},
	{Text: "tremendous", Explanation: "Subjective exaggeration."},
	{Text: "holistic", Explanation: "Vague buzzword, clarify specific aspects."},
	{Text: "powerful", Explanation: "Subjective, prefer concrete descriptions."},
	{Text: "pave the way", Explanation: "Promotional metaphor, avoid hype."},
	{Text: "elegant", Explanation: "Subjective praise, avoid opinionated language."},
	{Text: "strikingly", Explanation: "Subjective emphasis, avoid hype."},
	{Text: "unconventional", Explanation: "Vague term, clarify precise novelty."},
	{Text: "open up a splendid era", Explanation: "Promotional and vague phrase."},
	{Text: "to the best of our knowledge", Explanation: "Often unnecessary hedging, use precise claims."},
	{Text: "ultimate", Explanation: "Overstated finality, avoid absolutes."},
	{Text: "surprisingly", Explanation: "Subjective reaction, avoid opinion."},
	{Text: "remarkable", Explanation: "Subjective evaluation."},
	{Text: "notably", Explanation: "Subjective emphasis, prefer data-driven statements."},
	{Text: "record", Explanation: "Potential hype unless clearly defined."},
	{Text: "unprecedented", Explanation: "Often overused; novelty should be clear from context."},
	{Text: "open new avenues", Explanation: "Promotional phrase, avoid hype."},
	{Text: "paves the way", Explanation: "Promotional metaphor."},
	{Text: "open the window", Explanation: "Vague metaphor."},
	{Text: "next generation", Explanation: "Buzzword, avoid unnecessary hype."},
	{Text: "novel", Explanation: "Novelty should be inferred from context."},
	{Text: "new", Explanation: "Novelty should be inferred from context."},
	{Text: "first", Explanation: "Claims of priority can be contentious."},
	{Text: "unique", Explanation: "Subjective absolute, avoid."},
	{Text: "breakthrough", Explanation: "Strong hype term implying major advance; use cautiously."},
	{Text: "paradigm shift", Explanation: "Strong claim implying fundamental change; often subjective."},
	{Text: "paradigm-shift", Explanation: "Strong claim implying fundamental change; often subjective."},
	{Text: "groundbreaking", Explanation: "Promotional and subjective; prefer objective description."},
	{Text: "opens up new avenues", Explanation: "Promotional phrase; avoid vague hype."},
	{Text: "holy grail", Explanation: "Highly subjective metaphor, avoid in scientific writing."},
	{Text: "best", Explanation: "Absolute superlative; usually subjective."},
	{Text: "highest", Explanation: "Superlative requiring precise data context."},
	{Text: "lowest", Explanation: "Superlative requiring precise data context."},
	{Text: "strongest", Explanation: "Subjective; specify metrics instead."},
	{Text: "unparalleled", Explanation: "Absolute claim, often unverifiable."},
	{Text: "unmatched", Explanation: "Absolute claim, avoid subjective superlatives."},
	{Text: "unrivaled", Explanation: "Absolute claim, usually promotional."},
	{Text: "extraordinary", Explanation: "Subjective hype term."},
	{Text: "exceptional", Explanation: "Subjective evaluation."},
	{Text: "unprecedentedly", Explanation: "Adverb form of 'unprecedented', same caution applies."},
	{Text: "landmark", Explanation: "Strong hype implying major significance."},
	{Text: "transformative", Explanation: "Subjective; describe specific impact instead."},
	{Text: "revolutionary", Explanation: "Promotional, avoid hype in scientific claims."},
	{Text: "state-of-the-art", Explanation: "Buzzword; specify technical advances concretely."},
	{Text: "game changer", Explanation: "Informal and promotional phrase."},
	{Text: "cutting-edge", Explanation: "Buzzword; clarify novelty and contribution."},
	{Text: "best-in-class", Explanation: "Marketing phrase; avoid in objective writing."},
	{Text: "leading", Explanation: "Subjective, relative to what? Be specific."},
	{Text: "break new ground", Explanation: "Promotional phrase, avoid vague claims."},
	{Text: "benchmark", Explanation: "Often used vaguely; specify exact standards."},
}

// defaultExceptions are phrases whose presence near a hit marks a legitimate
// technical usage.
var defaultExceptions = []string{
	"first-principles",
	"unique identifier",
	"to record",
	"recording",
	"benchmark experiment",
	"benchmark test",
	"first step",
	"First,",
	"firstly",
	"first-order",
	"leading to",
	"we first",
	"best practice",
	"New Zealand",
	"lowest unoccupied molecular orbital",
	"highest occupied molecular orbital",
	"extreme value theory",
}
