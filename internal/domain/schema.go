package domain

// Schema describes a structured prompt or response type.
type Schema interface {
	// Name is the type identifier used to tag schema-encoded user messages
	Name() string
	// JSONSchema is the schema document sent in the json_schema parameter
	JSONSchema() any
	// Encode serializes an instance of the described type
	Encode(v any) (string, error)
	// Decode parses and validates JSON into the described type
	Decode(data []byte) (any, error)
}
