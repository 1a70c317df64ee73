package prompts

import (
	_ "embed"
)

//go:embed link_system.txt
var LinkExtractionSystemPrompt string

//go:embed link_user.tmpl
var linkExtractionUserTemplate string
