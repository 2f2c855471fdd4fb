package weather

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Property describes one string attribute of a Schema.
type Property struct {
	Name        string
	Description string
	Enum        []string
	Required    bool
}

// Schema is a named object shape a completion provider is asked to produce.
type Schema struct {
	Name       string
	Properties []Property
}

// JSONSchema renders the schema as a JSON Schema object.
func (s *Schema) JSONSchema() map[string]any {
	props := make(map[string]any, len(s.Properties))
	required := make([]string, 0, len(s.Properties))
	for _, p := range s.Properties {
		prop := map[string]any{
			"type":        "string",
			"description": p.Description,
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return map[string]any{
		"title":      s.Name,
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

var (
	// OperationTypeSchema constrains classification output.
	OperationTypeSchema = &Schema{
		Name: "Operation Type",
		Properties: []Property{
			{
				Name:        "operationType",
				Description: "The type of operation to be performed on the weather data.",
				Enum:        []string{string(OperationUpdateOrAdd), string(OperationDelete)},
				Required:    true,
			},
		},
	}

	// WeatherUpdateSchema constrains update extraction output.
	WeatherUpdateSchema = &Schema{
		Name: "Weather",
		Properties: []Property{
			{Name: "city", Description: "The name of the city for which the weather data is being updated.", Required: true},
			{Name: "high", Description: "The highest temperature expected for the city, optional update."},
			{Name: "low", Description: "The lowest temperature expected for the city, optional update."},
			{Name: "temperature", Description: "The current or general temperature for the city, optional update."},
			{Name: "condition", Description: "The weather condition (e.g., sunny, rainy, cloudy) for the city, optional update."},
		},
	}

	// DeleteTargetSchema constrains delete extraction output.
	DeleteTargetSchema = &Schema{
		Name: "Weather",
		Properties: []Property{
			{Name: "city", Description: "The name of the city whose weather data should be deleted.", Required: true},
		},
	}
)

type operationTypeOutput struct {
	OperationType string `json:"operationType" validate:"required,oneof=update/add delete"`
}

type weatherUpdateOutput struct {
	City        *string `json:"city" validate:"required"`
	High        Field   `json:"high"`
	Low         Field   `json:"low"`
	Temperature Field   `json:"temperature"`
	Condition   Field   `json:"condition"`
}

type deleteTargetOutput struct {
	City *string `json:"city" validate:"required"`
}

// ParseOperationType validates classification output.
func ParseOperationType(raw string) (OperationType, error) {
	var out operationTypeOutput
	if err := decodeAndValidate(raw, &out); err != nil {
		return "", &ValidationError{Shape: "operation type", Err: err}
	}
	return OperationType(out.OperationType), nil
}

// ParseUpdate validates update extraction output.
func ParseUpdate(raw string) (Update, error) {
	var out weatherUpdateOutput
	if err := decodeAndValidate(raw, &out); err != nil {
		return Update{}, &ValidationError{Shape: "weather update data", Err: err}
	}
	return Update{
		City:        *out.City,
		Temperature: out.Temperature,
		High:        out.High,
		Low:         out.Low,
		Condition:   out.Condition,
	}, nil
}

// ParseDeleteTarget validates delete extraction output. An empty city is a validation failure.
func ParseDeleteTarget(raw string) (DeleteTarget, error) {
	var out deleteTargetOutput
	if err := decodeAndValidate(raw, &out); err != nil {
		return DeleteTarget{}, &ValidationError{Shape: "city name", Err: err}
	}
	city := strings.TrimSpace(*out.City)
	if city == "" {
		return DeleteTarget{}, &ValidationError{Shape: "city name", Err: ErrInvalidCity}
	}
	return DeleteTarget{City: city}, nil
}

func decodeAndValidate(raw string, out any) error {
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return err
	}
	return validate.Struct(out)
}
