package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type WeatherQuery struct {
	City string `json:"city"`
	Days int    `json:"days" validate:"gte=1,lte=7"`
}

type Forecast struct {
	Summary string   `json:"summary"`
	Highs   []int    `json:"highs"`
	Tags    []string `json:"tags,omitempty"`
}

func TestDescriptorName(t *testing.T) {
	d := MustFor[WeatherQuery]()

	if d.Name() != "WeatherQuery" {
		t.Errorf("expected name WeatherQuery, got %s", d.Name())
	}
}

func TestDescriptorEncodeDecodeRoundTrip(t *testing.T) {
	d := MustFor[WeatherQuery]()
	query := WeatherQuery{City: "Chiang Mai", Days: 3}

	encoded, err := d.Encode(query)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	decoded, err := d.Decode([]byte(encoded))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	got, ok := As[WeatherQuery](decoded)
	if !ok {
		t.Fatalf("expected WeatherQuery, got %T", decoded)
	}
	if got != query {
		t.Errorf("expected %+v, got %+v", query, got)
	}
}

func TestDescriptorEncodeAcceptsPointer(t *testing.T) {
	d := MustFor[WeatherQuery]()

	encoded, err := d.Encode(&WeatherQuery{City: "Hanoi", Days: 1})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !strings.Contains(encoded, `"city":"Hanoi"`) {
		t.Errorf("expected encoded city, got %s", encoded)
	}
}

func TestDescriptorEncodeRejectsOtherTypes(t *testing.T) {
	d := MustFor[WeatherQuery]()

	for _, v := range []any{"plain prompt", Forecast{}, nil, (*WeatherQuery)(nil)} {
		_, err := d.Encode(v)
		if !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("expected ErrTypeMismatch for %T, got %v", v, err)
		}
	}
}

func TestDescriptorDecodeRejectsMissingField(t *testing.T) {
	d := MustFor[Forecast]()

	_, err := d.Decode([]byte(`{"summary":"sunny"}`))
	if !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestDescriptorDecodeRunsStructValidation(t *testing.T) {
	d := MustFor[WeatherQuery]()

	_, err := d.Decode([]byte(`{"city":"Hue","days":30}`))
	if !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestDescriptorDecodeRejectsInvalidJSON(t *testing.T) {
	d := MustFor[Forecast]()

	if _, err := d.Decode([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON, got nil")
	}
}

func TestDescriptorJSONSchemaMarshals(t *testing.T) {
	d := MustFor[Forecast]()

	raw, err := json.Marshal(d.JSONSchema())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("expected schema object, got: %v", err)
	}
	if doc["type"] != "object" {
		t.Errorf("expected type object, got %v", doc["type"])
	}
	props, ok := doc["properties"].(map[string]any)
	if !ok || props["summary"] == nil || props["highs"] == nil {
		t.Errorf("expected summary and highs properties, got %v", doc["properties"])
	}
}
