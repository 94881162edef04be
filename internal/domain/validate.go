package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Rejection reasons returned to clients.
const (
	ReasonInvalidBody   = "O corpo da requisição deve ser um objeto JSON válido"
	ReasonEventTypes    = "O campo 'eventos' é obrigatório e deve ser um array de strings"
	ReasonName          = "O campo 'nome' é obrigatório e deve ser um texto não vazio"
	ReasonTimestamp     = "O campo 'data' é obrigatório e deve ser uma data válida"
	ReasonCoordinates   = "O campo 'coordenadas' é obrigatório e deve conter latitude e longitude"
	ReasonCoordinateNum = "Os campos 'latitude' e 'longitude' devem ser numéricos"
)

// timestampLayouts are tried in order by ParseTimestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ValidationResult is the outcome of ValidateReport. When OK is false, Reason
// explains the first check that failed and Report is the zero value.
type ValidationResult struct {
	OK     bool
	Reason string
	Report NewReport
}

func invalid(reason string) ValidationResult {
	return ValidationResult{Reason: reason}
}

// ValidateReport checks a raw JSON submission and, on success, returns the
// parsed report. Checks run in field order and stop at the first failure.
func ValidateReport(body []byte) ValidationResult {
	// Fields stay undecoded and are looked up by exact key so presence and
	// type can be checked one field at a time.
	var fields map[string]json.RawMessage
	if !isObject(body) || json.Unmarshal(body, &fields) != nil {
		return invalid(ReasonInvalidBody)
	}

	labels, ok := parseLabels(fields["eventos"])
	if !ok {
		return invalid(ReasonEventTypes)
	}

	name, ok := parseString(fields["nome"])
	if !ok || name == "" {
		return invalid(ReasonName)
	}

	rawTime, ok := parseString(fields["data"])
	if !ok {
		return invalid(ReasonTimestamp)
	}
	occurredAt, err := ParseTimestamp(rawTime)
	if err != nil {
		return invalid(ReasonTimestamp)
	}

	coords, reason := parseCoordinates(fields["coordenadas"])
	if reason != "" {
		return invalid(reason)
	}

	return ValidationResult{
		OK: true,
		Report: NewReport{
			Name:        name,
			OccurredAt:  occurredAt,
			Coordinates: coords,
			EventTypes:  labels,
		},
	}
}

// ParseTimestamp accepts RFC 3339 (with or without fractional seconds) and the
// common zone-less forms "YYYY-MM-DDTHH:MM:SS", "YYYY-MM-DD HH:MM:SS",
// "YYYY-MM-DDTHH:MM" and "YYYY-MM-DD". Zone-less values are read as UTC.
// Out-of-range components (month 13, Feb 30) are rejected.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

func isObject(body []byte) bool {
	body = bytes.TrimSpace(body)
	return len(body) > 0 && body[0] == '{'
}

func parseString(raw json.RawMessage) (string, bool) {
	if !present(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// parseLabels requires a JSON array whose every element is a string.
func parseLabels(raw json.RawMessage) ([]string, bool) {
	if !present(raw) {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	labels := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := parseString(item)
		if !ok {
			return nil, false
		}
		labels = append(labels, s)
	}
	return labels, true
}

func parseCoordinates(raw json.RawMessage) (Coordinates, string) {
	if !present(raw) {
		return Coordinates{}, ReasonCoordinates
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Coordinates{}, ReasonCoordinates
	}
	latRaw, hasLat := fields["latitude"]
	lonRaw, hasLon := fields["longitude"]
	if !hasLat || !hasLon || !present(latRaw) || !present(lonRaw) {
		return Coordinates{}, ReasonCoordinates
	}

	lat, ok := parseNumber(latRaw)
	if !ok {
		return Coordinates{}, ReasonCoordinateNum
	}
	lon, ok := parseNumber(lonRaw)
	if !ok {
		return Coordinates{}, ReasonCoordinateNum
	}
	return Coordinates{Latitude: lat, Longitude: lon}, ""
}

// parseNumber accepts a JSON number or a string holding a finite decimal.
func parseNumber(raw json.RawMessage) (float64, bool) {
	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return v, true
	}
	s, ok := parseString(raw)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
