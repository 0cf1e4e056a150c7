// Package schemas holds the JSON Schemas of the documents the CLI reads and writes.
package schemas

import _ "embed"

// GoalDocument is the schema of a JSON goal store.
//
//go:embed goal_document.schema.json
var GoalDocument string
