package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/kfenner/roadtrip-planner/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "trip_start", "trip_notes",
	"stop_name", "city", "state", "address", "lat", "lng",
	"travel_type", "time_at_destination", "drive_time_from_previous",
	"arrival_time", "departure_time", "stop_notes",
}

// exportRowResponse is one row of the JSON export.
type exportRowResponse struct {
	TripID            string     `json:"trip_id"`
	TripName          string     `json:"trip_name"`
	TripStart         time.Time  `json:"trip_start"`
	TripNotes         string     `json:"trip_notes,omitempty"`
	StopName          string     `json:"stop_name,omitempty"`
	City              string     `json:"city,omitempty"`
	State             string     `json:"state,omitempty"`
	Address           string     `json:"address,omitempty"`
	Lat               float64    `json:"lat,omitempty"`
	Lng               float64    `json:"lng,omitempty"`
	TravelType        string     `json:"travel_type,omitempty"`
	TimeAtDestination float64    `json:"time_at_destination,omitempty"`
	DriveTime         *float64   `json:"drive_time_from_previous,omitempty"`
	ArrivalTime       *time.Time `json:"arrival_time,omitempty"`
	DepartureTime     *time.Time `json:"departure_time,omitempty"`
	StopNotes         string     `json:"stop_notes,omitempty"`
}

// exportTrips handles GET /export.
// It returns a flat table of every trip and stop, one row per stop, with
// computed arrival and departure times. Use ?format=csv to receive CSV;
// default is JSON.
func (s *Server) exportTrips(w http.ResponseWriter, r *http.Request) {
	rows, err := s.exports.Export(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, rows)
		return
	}

	out := make([]exportRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, exportRowToResponse(row))
	}
	writeJSON(w, r, http.StatusOK, out)
}

// writeCSV streams the export rows as text/csv.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)

	cw := csv.NewWriter(w)
	//nolint:errcheck // write errors surface via Flush below
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(exportRowToCSVRecord(row))
	}
	cw.Flush()
}

func exportRowToResponse(r domain.ExportRow) exportRowResponse {
	return exportRowResponse{
		TripID:            r.TripID,
		TripName:          r.TripName,
		TripStart:         r.TripStart,
		TripNotes:         r.TripNotes,
		StopName:          r.StopName,
		City:              r.City,
		State:             r.State,
		Address:           r.Address,
		Lat:               r.Lat,
		Lng:               r.Lng,
		TravelType:        r.TravelType,
		TimeAtDestination: r.TimeAtDestination,
		DriveTime:         r.DriveTime,
		ArrivalTime:       r.ArrivalTime,
		DepartureTime:     r.DepartureTime,
		StopNotes:         r.StopNotes,
	}
}

// exportRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Nil pointers become empty strings. Rows for stop-less trips leave every
// stop column blank, including the numeric ones.
func exportRowToCSVRecord(r domain.ExportRow) []string {
	lat, lng, timeAtDest := "", "", ""
	if r.StopName != "" {
		lat = strconv.FormatFloat(r.Lat, 'f', -1, 64)
		lng = strconv.FormatFloat(r.Lng, 'f', -1, 64)
		timeAtDest = strconv.FormatFloat(r.TimeAtDestination, 'f', -1, 64)
	}
	return []string{
		r.TripID,
		r.TripName,
		r.TripStart.UTC().Format(time.RFC3339),
		r.TripNotes,
		r.StopName,
		r.City,
		r.State,
		r.Address,
		lat,
		lng,
		r.TravelType,
		timeAtDest,
		formatOptionalFloat(r.DriveTime),
		formatOptionalTime(r.ArrivalTime),
		formatOptionalTime(r.DepartureTime),
		r.StopNotes,
	}
}

// formatOptionalTime returns the RFC3339 representation of t, or "" if t is nil.
func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
