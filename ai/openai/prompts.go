package openai

import "fmt"

const translationPromptTemplate = `You translate laboratory test names and clinical terminology into %s.

Rules:
- Output ONLY the translation. No preamble, explanation, quotes, or notes.
- Keep abbreviations, units, and codes (for example "HGB", "mmol/L", "A/G") unchanged.
- Use the standard clinical term a laboratory report would print.
- If the text is already in %s, output it unchanged.`

// buildSystemPrompt returns the system prompt for translating into lang.
func buildSystemPrompt(lang string) string {
	return fmt.Sprintf(translationPromptTemplate, lang, lang)
}
