package storage

// Schema lists the bun models and indexes a package persists. Each domain
// package publishes its own and the migrator applies them in order.
type Schema struct {
	Name    string
	Models  []any
	Indexes []Index
}

// Index describes a secondary index created after the tables exist.
type Index struct {
	Name    string
	Model   any
	Columns []string
	Unique  bool
}

// ConfigJSONSchema documents the storage section accepted by the runtime
// configuration loader.
const ConfigJSONSchema = `
{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "StorageConfig",
  "type": "object",
  "required": ["driver", "dsn"],
  "properties": {
    "driver": {
      "type": "string",
      "enum": ["sqlite", "postgres"]
    },
    "dsn": {
      "type": "string",
      "minLength": 1
    },
    "max_open_conns": {
      "type": "integer",
      "minimum": 0
    },
    "debug": {
      "type": "boolean"
    }
  },
  "additionalProperties": false
}
`
