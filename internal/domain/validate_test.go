package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPayload = `{
	"nome": "Teste",
	"data": "2025-11-13T10:00:00Z",
	"coordenadas": {"latitude": -23.5505, "longitude": -46.6333},
	"eventos": ["Chuva Forte", "Raios"]
}`

func TestValidateReport_Valid(t *testing.T) {
	res := ValidateReport([]byte(validPayload))

	require.True(t, res.OK, res.Reason)
	assert.Empty(t, res.Reason)
	assert.Equal(t, "Teste", res.Report.Name)
	assert.True(t, time.Date(2025, time.November, 13, 10, 0, 0, 0, time.UTC).Equal(res.Report.OccurredAt))
	assert.Equal(t, Coordinates{Latitude: -23.5505, Longitude: -46.6333}, res.Report.Coordinates)
	assert.Equal(t, []string{"Chuva Forte", "Raios"}, res.Report.EventTypes)
}

func TestValidateReport_EmptyEventTypesIsValid(t *testing.T) {
	res := ValidateReport([]byte(`{"eventos":[],"nome":"Neblina","data":"2025-06-01","coordenadas":{"latitude":0,"longitude":0}}`))

	require.True(t, res.OK, res.Reason)
	assert.NotNil(t, res.Report.EventTypes)
	assert.Empty(t, res.Report.EventTypes)
}

func TestValidateReport_KeepsDuplicateLabels(t *testing.T) {
	res := ValidateReport([]byte(`{"eventos":["Raios","Raios"],"nome":"x","data":"2025-06-01","coordenadas":{"latitude":1,"longitude":2}}`))

	require.True(t, res.OK, res.Reason)
	assert.Equal(t, []string{"Raios", "Raios"}, res.Report.EventTypes)
}

func TestValidateReport_OutOfRangeCoordinatesAccepted(t *testing.T) {
	res := ValidateReport([]byte(`{"eventos":[],"nome":"x","data":"2025-06-01","coordenadas":{"latitude":123.4,"longitude":-270}}`))

	require.True(t, res.OK, res.Reason)
	assert.Equal(t, Coordinates{Latitude: 123.4, Longitude: -270}, res.Report.Coordinates)
}

func TestValidateReport_NumericStringCoordinates(t *testing.T) {
	res := ValidateReport([]byte(`{"eventos":[],"nome":"x","data":"2025-06-01","coordenadas":{"latitude":"-22.9056","longitude":" -47.0608 "}}`))

	require.True(t, res.OK, res.Reason)
	assert.Equal(t, Coordinates{Latitude: -22.9056, Longitude: -47.0608}, res.Report.Coordinates)
}

func TestValidateReport_FieldNamesMatchExactly(t *testing.T) {
	res := ValidateReport([]byte(`{"eventos":["Raios"],"EVENTOS":[1],"nome":"x","NOME":"","data":"2025-06-01","Data":"bad","coordenadas":{"latitude":1,"longitude":2}}`))

	require.True(t, res.OK, res.Reason)
	assert.Equal(t, "x", res.Report.Name)
	assert.Equal(t, []string{"Raios"}, res.Report.EventTypes)
}

func TestValidateReport_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		reason string
	}{
		{"not json", `nope`, ReasonInvalidBody},
		{"array body", `[1,2]`, ReasonInvalidBody},
		{"empty body", ``, ReasonInvalidBody},
		{"eventos missing", `{"nome":"x","data":"2025-06-01","coordenadas":{"latitude":1,"longitude":2}}`, ReasonEventTypes},
		{"eventos string", `{"eventos":"Raios","nome":"x","data":"2025-06-01","coordenadas":{"latitude":1,"longitude":2}}`, ReasonEventTypes},
		{"eventos null", `{"eventos":null,"nome":"x","data":"2025-06-01","coordenadas":{"latitude":1,"longitude":2}}`, ReasonEventTypes},
		{"eventos numbers", `{"eventos":[1],"nome":"x","data":"2025-06-01","coordenadas":{"latitude":1,"longitude":2}}`, ReasonEventTypes},
		{"eventos null element", `{"eventos":["Raios",null],"nome":"x","data":"2025-06-01","coordenadas":{"latitude":1,"longitude":2}}`, ReasonEventTypes},
		{"nome missing", `{"eventos":[],"data":"2025-06-01","coordenadas":{"latitude":1,"longitude":2}}`, ReasonName},
		{"nome empty", `{"eventos":[],"nome":"","data":"2025-06-01","coordenadas":{"latitude":1,"longitude":2}}`, ReasonName},
		{"nome number", `{"eventos":[],"nome":42,"data":"2025-06-01","coordenadas":{"latitude":1,"longitude":2}}`, ReasonName},
		{"data missing", `{"eventos":[],"nome":"x","coordenadas":{"latitude":1,"longitude":2}}`, ReasonTimestamp},
		{"data garbage", `{"eventos":[],"nome":"x","data":"not-a-date","coordenadas":{"latitude":1,"longitude":2}}`, ReasonTimestamp},
		{"data out of range", `{"eventos":[],"nome":"x","data":"2025-02-30T10:00:00Z","coordenadas":{"latitude":1,"longitude":2}}`, ReasonTimestamp},
		{"data number", `{"eventos":[],"nome":"x","data":1731492000,"coordenadas":{"latitude":1,"longitude":2}}`, ReasonTimestamp},
		{"coordenadas missing", `{"eventos":[],"nome":"x","data":"2025-06-01"}`, ReasonCoordinates},
		{"coordenadas not object", `{"eventos":[],"nome":"x","data":"2025-06-01","coordenadas":[1,2]}`, ReasonCoordinates},
		{"latitude missing", `{"eventos":[],"nome":"x","data":"2025-06-01","coordenadas":{"longitude":2}}`, ReasonCoordinates},
		{"longitude null", `{"eventos":[],"nome":"x","data":"2025-06-01","coordenadas":{"latitude":1,"longitude":null}}`, ReasonCoordinates},
		{"latitude text", `{"eventos":[],"nome":"x","data":"2025-06-01","coordenadas":{"latitude":"norte","longitude":2}}`, ReasonCoordinateNum},
		{"eventos mis-cased", `{"EVENTOS":["Raios"],"nome":"x","data":"2025-06-01","coordenadas":{"latitude":1,"longitude":2}}`, ReasonEventTypes},
		{"nome mis-cased", `{"eventos":[],"Nome":"x","data":"2025-06-01","coordenadas":{"latitude":1,"longitude":2}}`, ReasonName},
		{"nome empty with mis-cased twin", `{"eventos":[],"nome":"","NOME":"x","data":"2025-06-01","coordenadas":{"latitude":1,"longitude":2}}`, ReasonName},
		{"data mis-cased", `{"eventos":[],"nome":"x","DATA":"2025-06-01","coordenadas":{"latitude":1,"longitude":2}}`, ReasonTimestamp},
		{"coordenadas mis-cased", `{"eventos":[],"nome":"x","data":"2025-06-01","Coordenadas":{"latitude":1,"longitude":2}}`, ReasonCoordinates},
		{"latitude mis-cased", `{"eventos":[],"nome":"x","data":"2025-06-01","coordenadas":{"Latitude":1,"longitude":2}}`, ReasonCoordinates},
		{"longitude NaN", `{"eventos":[],"nome":"x","data":"2025-06-01","coordenadas":{"latitude":1,"longitude":"NaN"}}`, ReasonCoordinateNum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateReport([]byte(tt.body))
			assert.False(t, res.OK)
			assert.Equal(t, tt.reason, res.Reason)
			assert.Equal(t, NewReport{}, res.Report)
		})
	}
}

func TestValidateReport_FirstFailureWins(t *testing.T) {
	// Every field is wrong; eventos is checked first.
	res := ValidateReport([]byte(`{"eventos":"x","nome":"","data":"bad","coordenadas":{}}`))
	assert.Equal(t, ReasonEventTypes, res.Reason)

	res = ValidateReport([]byte(`{"eventos":[],"nome":"","data":"bad","coordenadas":{}}`))
	assert.Equal(t, ReasonName, res.Reason)

	res = ValidateReport([]byte(`{"eventos":[],"nome":"x","data":"bad","coordenadas":{}}`))
	assert.Equal(t, ReasonTimestamp, res.Reason)
}

func TestParseTimestamp_Layouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-11-13T10:00:00Z", time.Date(2025, 11, 13, 10, 0, 0, 0, time.UTC)},
		{"2025-11-13T10:00:00.250Z", time.Date(2025, 11, 13, 10, 0, 0, 250_000_000, time.UTC)},
		{"2025-11-13T07:00:00-03:00", time.Date(2025, 11, 13, 10, 0, 0, 0, time.UTC)},
		{"2025-11-13T10:00:00", time.Date(2025, 11, 13, 10, 0, 0, 0, time.UTC)},
		{"2025-11-13 10:00:00", time.Date(2025, 11, 13, 10, 0, 0, 0, time.UTC)},
		{"2025-11-13T10:00", time.Date(2025, 11, 13, 10, 0, 0, 0, time.UTC)},
		{"2025-11-13", time.Date(2025, 11, 13, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, in := range []string{"", "not-a-date", "2025-13-01", "2025-11-13T25:00:00Z", "13/11/2025"} {
		_, err := ParseTimestamp(in)
		assert.Error(t, err, in)
	}
}
