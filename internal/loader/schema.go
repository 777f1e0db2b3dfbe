package loader

import (
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// modelSchema validates the program-model interchange document before
// it is decoded. The format is produced by the upstream parser and
// resolver; metron never parses source text itself.
const modelSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["packages"],
  "additionalProperties": false,
  "properties": {
    "packages": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "classes": {"type": "array", "items": {"$ref": "#/$defs/class"}},
          "interfaces": {"type": "array", "items": {"$ref": "#/$defs/interface"}},
          "functions": {"type": "array", "items": {"$ref": "#/$defs/function"}}
        }
      }
    }
  },
  "$defs": {
    "class": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "id": {"type": "string"},
        "abstract": {"type": "boolean"},
        "external": {"type": "boolean"},
        "extends": {"type": "string"},
        "methods": {"type": "array", "items": {"$ref": "#/$defs/method"}},
        "properties": {"type": "array", "items": {"$ref": "#/$defs/property"}}
      }
    },
    "interface": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "id": {"type": "string"},
        "external": {"type": "boolean"},
        "methods": {"type": "array", "items": {"$ref": "#/$defs/method"}}
      }
    },
    "method": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "abstract": {"type": "boolean"},
        "returns": {"type": "string"},
        "throws": {"type": "array", "items": {"type": "string"}},
        "dependencies": {"type": "array", "items": {"type": "string"}}
      }
    },
    "property": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "type": {"type": "string"}
      }
    },
    "function": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string", "minLength": 1}
      }
    }
  }
}`

var compileSchema = sync.OnceValue(func() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(modelSchema))
	if err != nil {
		panic("loader: invalid embedded model schema: " + err.Error())
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("model.schema.json", doc); err != nil {
		panic("loader: " + err.Error())
	}
	sch, err := c.Compile("model.schema.json")
	if err != nil {
		panic("loader: " + err.Error())
	}
	return sch
})
