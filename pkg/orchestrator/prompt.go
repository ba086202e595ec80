package orchestrator

import (
	"strconv"
	"strings"
)

const (
	// Delimiter joins the entries of one batch inside a prompt.
	Delimiter = "<"

	// Placeholder in a template is replaced by the number of entries in
	// the batch being sent.
	Placeholder = "{batch_size}"
)

// Built-in templates.
const (
	SubdomainTemplate = "There are {batch_size} subdomains separated by a < character. " +
		"Using this list as a seed, generate 150 new possible subdomains. " +
		"Only return the subdomains. No explanations or numbering."

	DirectoryTemplate = "There are {batch_size} URLs separated by a < character. " +
		"Using this list as a seed, generate 150 new possible directories for the site. " +
		"Only return the directories. No explanations or numbering."
)

// BuildPrompt renders template for one batch:
// template (placeholder substituted) + " " + entries joined by Delimiter.
func BuildPrompt(template string, entries []string) string {
	head := strings.ReplaceAll(template, Placeholder, strconv.Itoa(len(entries)))
	return head + " " + strings.Join(entries, Delimiter)
}
