// Package parser converts AGENTS.md markdown into a policy.Policy.
//
// An AGENTS.md file is a sequence of level-2 headings ("## Identity",
// "## Trust Requirements", ...) each followed by "- key: value" bullets.
// Parsing is lenient: malformed values become warnings and the field keeps its
// default. Only three conditions fail a parse:
//
//   - the input is empty or whitespace
//   - there is no "## Identity" section
//   - the Identity section has no non-blank "site"
//
// # Basic Usage
//
//	result := parser.Parse(content)
//	if !result.Success {
//	    for _, err := range result.Errors {
//	        fmt.Println(err)
//	    }
//	    return
//	}
//	fmt.Println("Site:", result.Policy.Identity.Site)
//
// Parse a file on disk, with a size limit:
//
//	p := parser.NewParser().WithMaxSize(512 * 1024)
//	result, err := p.ParseFile("AGENTS.md")
//
// # Sections
//
// Headings are matched case-insensitively. Unknown sections are ignored, and a
// repeated heading replaces the earlier one. Within a section keys are
// lowercased, values are trimmed, and a repeated key takes the later value.
// Values are split on the first colon only, so URLs and host:port survive.
package parser
