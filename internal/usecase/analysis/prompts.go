package analysis

import (
	"fmt"
	"strings"

	"github.com/osaa-analytics/unga-readout/internal/domain/entities"
)

// systemMessage frames every readout generation call. The model is asked for
// UN drafting style with a fixed five-section structure.
const systemMessage = `You are a senior UN OSAA analyst producing comprehensive General Debate readouts. Your output must be neutral, precise, detailed, and match UN drafting style with enhanced formatting for better readability.

CRITICAL: You must provide detailed, substantive analysis based on the actual speech content. Use rich formatting including tables, bullet points, and structured data presentation.

LANGUAGE TRANSLATION EXPERTISE:
You are also an expert language translator specialized in UN and diplomatic lingo. If the speech is in any language other than English, you will automatically translate it to English using official UN document translation standards.

ENHANCED OUTPUT FORMAT:
1. Start with the country name as a header
2. Use numbered sections 1-5 with specific headings
3. Section 1: "Summary of the Statement" with exactly 3 bullet points, each around 100 words
4. Sections 2-5: key points as bullet lists, data in tables when relevant, important quotes in blockquotes, commitments clearly highlighted
5. For Development Partners: clearly indicate whether Africa was explicitly mentioned in sections 1 and 3
6. End with an "Analysis Summary" section listing:
   SDGs Referenced: [list specific SDGs mentioned]
   Key Themes: [list main themes]
   Africa Mention: [Yes/No - for Development Partners only]

IMPORTANT:
- Use rich Markdown formatting for better readability
- Provide substantive content based on actual speech text
- Mirror UN drafting style with precise, neutral language`

// africanQuestionSet applies to AU member state statements.
const africanQuestionSet = `1. Summary of the Statement

2. Challenges and Opportunities in Achieving the SDGs and Agenda 2063

3. Partnerships, Means of Implementation, and Debt

4. Youth, Women's Empowerment, AI, Digital Divide, and Inequalities

5. UN80 Initiative, Multilateralism, and UN Reform`

// partnerQuestionSet applies to everything else; it drops the Agenda 2063
// clause from section 2.
const partnerQuestionSet = `1. Summary of the Statement

2. Challenges and Opportunities in Achieving the SDGs

3. Partnerships, Means of Implementation, and Debt

4. Youth, Women's Empowerment, AI, Digital Divide, and Inequalities

5. UN80 Initiative, Multilateralism, and UN Reform`

// QuestionSet returns the question block for a classification.
func QuestionSet(classification entities.Classification) string {
	if classification == entities.AfricanMemberState {
		return africanQuestionSet
	}
	return partnerQuestionSet
}

// BuildUserPrompt assembles the generation prompt: country and classification
// header, optional speech date, the verbatim text and the question set.
func BuildUserPrompt(speechText string, classification entities.Classification, country, speechDate string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "COUNTRY/ENTITY: %s\n", country)
	fmt.Fprintf(&b, "CLASSIFICATION: %s", classification)
	if speechDate != "" {
		fmt.Fprintf(&b, "\nSPEECH DATE (optional): %s", speechDate)
	}

	fmt.Fprintf(&b, "\nRAW TEXT (verbatim):\n%s\n", speechText)
	fmt.Fprintf(&b, "\nAPPLY THE FOLLOWING QUESTION SET:\n%s\n", QuestionSet(classification))

	b.WriteString(`
OUTPUT REQUIREMENTS:
- Section 1: "Summary of the Statement" with exactly 3 bullet points, each around 100 words with specific details
- Sections 2-5: structured formatting with bullet lists, tables for data, blockquotes for important quotes, commitments highlighted
- For Development Partners: clearly indicate whether Africa was explicitly mentioned in sections 1 and 3
- Include an "Analysis Summary" section at the end with SDGs Referenced, Key Themes, and Africa Mention
- Provide substantive content based on the actual speech text
- End with nothing else.`)

	return b.String()
}

// synthesisPreamble asks the model to merge per-chunk analyses of a long
// speech back into one readout with the same section structure.
const synthesisPreamble = `Please synthesize the following chunk analyses into a single, coherent analysis following the same format and structure. Combine insights while maintaining the numbered sections and UN drafting style:`

func buildSynthesisPrompt(classification entities.Classification, country, speechDate string, chunkAnalyses []string) string {
	var b strings.Builder
	b.WriteString(synthesisPreamble)
	for i, chunk := range chunkAnalyses {
		fmt.Fprintf(&b, "\n\nChunk %d Analysis:\n%s", i+1, chunk)
	}
	return BuildUserPrompt(b.String(), classification, country, speechDate)
}
