package classify

import (
	"fmt"
	"strings"
)

const classifySystemPrompt = `You are a file organization assistant. You look at file names and suggest how to file them.
Respond in exactly the requested format with no commentary, no Markdown, and no extra lines.`

const classifyUserTemplate = `Analyze this filename: %s

Task 1: Suggest a very general category (1-2 words max) for what type of file this is.
Think broad categories like: GameDev, WebDev, Documents, Media, etc.

Task 2: List 3-5 keywords that describe what this file is about.
These will be used to group similar files together.

Task 3: Suggest a clearer, more descriptive name for this file, without an extension.

Respond in exactly this format:
CATEGORY: your_category
KEYWORDS: keyword1, keyword2, keyword3
NEWNAME: your_suggested_name`

const nameSystemPrompt = `You are a file organization assistant. You name folders.
Respond with just the folder name on a single line, nothing else.`

const nameUserTemplate = `These categories appear to be related: %s
Suggest a single, general category name (1-2 words) that would encompass all of them.
Respond with just the category name, nothing else.`

func classifyPrompt(stem string) string {
	return fmt.Sprintf(classifyUserTemplate, stem)
}

func namePrompt(categories []string) string {
	return fmt.Sprintf(nameUserTemplate, strings.Join(categories, ", "))
}
