// Package schemas embeds the JSON Schemas shipped with lab1.
package schemas

import _ "embed"

//go:embed report.schema.json
var ReportSchemaJSON string
