package extractor

import "encoding/json"

// The declared output schemas for the two phases, in the Gemini
// responseSchema dialect. The generator is required to return JSON
// conforming to these shapes; decode.go still validates locally.

// CompletenessSchema constrains the phase 1 response.
var CompletenessSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "grouped_rows": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "original": {
            "type": "OBJECT",
            "properties": {
              "part_name": {"type": "STRING"},
              "status": {"type": "STRING", "enum": ["Provided", "Missing"]},
              "matched_filename": {"type": "STRING"}
            },
            "required": ["part_name", "status"]
          },
          "substitutes": {
            "type": "ARRAY",
            "items": {
              "type": "OBJECT",
              "properties": {
                "part_name": {"type": "STRING"},
                "status": {"type": "STRING", "enum": ["Provided", "Missing"]},
                "matched_filename": {"type": "STRING"}
              },
              "required": ["part_name", "status"]
            }
          }
        },
        "required": ["original", "substitutes"]
      }
    },
    "all_provided": {"type": "BOOLEAN"},
    "message": {"type": "STRING"}
  },
  "required": ["grouped_rows", "all_provided", "message"]
}`)

// AnalysisSchema constrains the phase 2 response.
var AnalysisSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "groups": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "id": {"type": "STRING"},
          "row_number": {"type": "INTEGER"},
          "mapped_parts": {
            "type": "OBJECT",
            "properties": {
              "part_a": {"type": "STRING"},
              "part_b": {"type": "STRING"},
              "part_c": {"type": "STRING"}
            },
            "required": ["part_a", "part_b"]
          },
          "summary": {"type": "STRING"},
          "recommendation": {"type": "STRING", "enum": ["B", "C", "None", "Both"]},
          "specs": {
            "type": "ARRAY",
            "items": {
              "type": "OBJECT",
              "properties": {
                "id": {"type": "INTEGER"},
                "parameter": {"type": "STRING"},
                "unit": {"type": "STRING"},
                "value_a": {"type": "STRING"},
                "value_b": {"type": "STRING"},
                "compliance_b": {"type": "STRING", "enum": ["Fully Compliant", "Partial", "Non-Compliant"]},
                "value_c": {"type": "STRING"},
                "compliance_c": {"type": "STRING", "enum": ["Fully Compliant", "Partial", "Non-Compliant"]},
                "comment": {"type": "STRING"}
              },
              "required": ["id", "parameter", "unit", "value_a", "value_b", "compliance_b", "value_c", "compliance_c", "comment"]
            }
          }
        },
        "required": ["id", "row_number", "mapped_parts", "summary", "recommendation", "specs"]
      }
    },
    "missing_files": {
      "type": "ARRAY",
      "items": {"type": "STRING"}
    }
  },
  "required": ["groups", "missing_files"]
}`)
