// agentsmd parses, validates and fetches AGENTS.md policy files.
//
// AGENTS.md is a markdown dialect in which a web property declares how
// autonomous agents may interact with it: trust levels, allowed actions, rate
// limits, data handling commitments, path restrictions and agent
// identification requirements.
//
// Usage:
//
//	# Lint local files
//	agentsmd lint AGENTS.md
//
//	# Lint every AGENTS.md under a directory and re-lint on change
//	agentsmd lint --dir site/ --watch
//
//	# Fetch and check a site's published policy
//	agentsmd fetch https://example.com
//
//	# Poll the sites listed in the config file
//	agentsmd monitor --config agentsmd.yaml
//
//	# Show recorded snapshots for a site
//	agentsmd history https://example.com
package main

func main() {
	Execute()
}
