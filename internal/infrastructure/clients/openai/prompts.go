package openai

import (
	"fmt"
	"strings"
)

// SummarizerSystemPrompt instructs the model to behave as a restroom review
// analyzer and constrains the output to a hyphen-bulleted list so the
// response can be parsed deterministically downstream.
const SummarizerSystemPrompt = "You are a helpful assistant that analyzes restroom reviews. " +
	"Convert temporary conditions into general maintenance patterns and condense similar issues into general categories. " +
	"Use varied vocabulary - avoid repeating words like 'good' or 'poor' across multiple items. " +
	"Keep responses concise - use single words or short phrases (2-3 words maximum). " +
	"Format your response as a bulleted list with each item on a new line starting with a hyphen."

const summarizerPromptHeader = `You are a restroom feature analyzer. Your task is to extract permanent/structural pros and cons from restroom comments.

IMPORTANT: Focus ONLY on permanent/structural features like cleanliness, accessibility, size, lighting, ventilation, temperature control, etc. Ignore temporary conditions like "no soap available" or "toilet paper was out" - these should be converted to general maintenance patterns.

For temperature-related comments:
- "uncomfortably cold" or "too hot" should be categorized as "poor temperature control" (a con)
- "comfortable temperature" should be categorized as "good temperature control" (a pro)

When you see similar issues, condense them into general categories:
- Supply issues (soap, paper, towels) → "inadequate supply management"
- Equipment issues (dispensers) → "poor equipment maintenance"
- Cleaning issues (floor, sink) → "poor cleanliness maintenance"

IMPORTANT: Each issue should only appear ONCE in either pros or cons. DO NOT list both the specific issue and its general category. For example, if you see "no soap" and "toilet paper out", list only "inadequate supply management" as a con, not both "inadequate supply management" and "poor equipment maintenance".

Use varied vocabulary and avoid repeating words like "good" or "poor" across multiple items.`

const summarizerSingleCommentHint = "This is a single comment. Extract both permanent features and maintenance issues, even if there's only one issue mentioned. Always output both pros and cons sections, even if one is empty."

const summarizerMultiCommentHint = "These are multiple comments. Extract both permanent features and maintenance issues, condensing similar issues into general categories."

const summarizerFormatAndExamples = `Format your response as:
Pros:
- [permanent feature 1]
- [permanent feature 2]
...

Cons:
- [permanent feature 1]
- [permanent feature 2]
...

Example:
Input: "The restroom was clean and well-maintained, but there was no soap available."
Output:
Pros:
- Clean
- Well-maintained

Cons:
- Insufficient supplies

Input: "The restroom was dirty, the floor was wet, and the sink area was messy."
Output:
Pros:
- None

Cons:
- Poor cleanliness maintenance

Input: "The restroom was clean, but the soap dispenser was broken and the paper towel dispenser wasn't working."
Output:
Pros:
- Clean

Cons:
- Poor equipment maintenance

Input: "The restroom was uncomfortably cold."
Output:
Pros:
- None

Cons:
- Poor temperature control

Input: "The restroom was clean, but there was no soap available and the toilet paper was out."
Output:
Pros:
- Clean

Cons:
- Inadequate supply management`

// BuildSummarizerPrompt assembles the user prompt for a batch of review
// comments. The single-comment variant asks the model to always emit both
// sections so the parser never has to guess where an empty section went.
func BuildSummarizerPrompt(comments []string) string {
	hint := summarizerMultiCommentHint
	if len(comments) == 1 {
		hint = summarizerSingleCommentHint
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s\n\nComments to analyze:\n%s",
		summarizerPromptHeader, hint, summarizerFormatAndExamples, strings.Join(comments, "\n"))
}
