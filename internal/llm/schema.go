package llm

// SchemaType is a provider-neutral JSON type name.
type SchemaType string

const (
	TypeString  SchemaType = "string"
	TypeNumber  SchemaType = "number"
	TypeInteger SchemaType = "integer"
	TypeBoolean SchemaType = "boolean"
	TypeArray   SchemaType = "array"
	TypeObject  SchemaType = "object"
)

// Schema describes the JSON shape a structured generation must return.
// It covers the subset of OpenAPI both Gemini SDKs accept as a response schema.
type Schema struct {
	Type        SchemaType
	Description string
	Nullable    bool
	Enum        []string
	Items       *Schema
	Properties  map[string]*Schema
	Required    []string
}

// String returns a string schema with a description.
func String(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

// StringArray returns an array-of-strings schema with a description.
func StringArray(description string) *Schema {
	return &Schema{Type: TypeArray, Description: description, Items: &Schema{Type: TypeString}}
}

// ArrayOf returns an array schema whose items follow item.
func ArrayOf(description string, item *Schema) *Schema {
	return &Schema{Type: TypeArray, Description: description, Items: item}
}

// Object returns an object schema with the given properties and required keys.
func Object(description string, properties map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: TypeObject, Description: description, Properties: properties, Required: required}
}
