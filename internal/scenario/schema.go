package scenario

const schemaJSON = `{
  "type": "object",
  "required": ["name", "steps"],
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "steps": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["lever"],
        "additionalProperties": false,
        "properties": {
          "lever": {"type": "string", "minLength": 1},
          "magnitude": {"type": "number"},
          "repeat": {"type": "integer", "minimum": 1, "maximum": 1000},
          "note": {"type": "string"}
        }
      }
    }
  }
}`
