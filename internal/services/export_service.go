package services

import (
	"strconv"
	"time"

	"github.com/terraincognita07/nutrilume/internal/models"
)

const exportDateLayout = "2006-01-02"

var ExportCSVHeaders = []string{
	"Date",
	"Meal",
	"Food",
	"Quantity",
	"Unit",
	"Calories",
	"Protein (g)",
	"Carbs (g)",
	"Fat (g)",
}

type ExportEntryReader interface {
	FetchEntriesForOptionalRange(userID uint, from *time.Time, to *time.Time, location *time.Location) ([]models.FoodLogEntry, error)
}

type ExportService struct {
	entries ExportEntryReader
}

type ExportSummary struct {
	TotalEntries int    `json:"total_entries"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from,omitempty"`
	DateTo       string `json:"date_to,omitempty"`
}

type ExportJSONEntry struct {
	Date     string  `json:"date"`
	MealType string  `json:"meal_type"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

func NewExportService(entries ExportEntryReader) *ExportService {
	return &ExportService{entries: entries}
}

func (service *ExportService) BuildSummary(userID uint, from *time.Time, to *time.Time, location *time.Location) (ExportSummary, error) {
	entries, err := service.entries.FetchEntriesForOptionalRange(userID, from, to, location)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(entries) == 0 {
		return ExportSummary{}, nil
	}

	first := entries[0].Day
	last := entries[0].Day
	for _, entry := range entries[1:] {
		if entry.Day.Before(first) {
			first = entry.Day
		}
		if entry.Day.After(last) {
			last = entry.Day
		}
	}

	return ExportSummary{
		TotalEntries: len(entries),
		HasData:      true,
		DateFrom:     DateAtLocation(first, location).Format(exportDateLayout),
		DateTo:       DateAtLocation(last, location).Format(exportDateLayout),
	}, nil
}

func (service *ExportService) BuildJSONEntries(userID uint, from *time.Time, to *time.Time, location *time.Location) ([]ExportJSONEntry, error) {
	entries, err := service.entries.FetchEntriesForOptionalRange(userID, from, to, location)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportJSONEntry, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, ExportJSONEntry{
			Date:     DateAtLocation(entry.Day, location).Format(exportDateLayout),
			MealType: entry.MealType,
			Name:     entry.Name,
			Quantity: entry.Quantity,
			Unit:     entry.Unit,
			Calories: entry.Calories,
			ProteinG: entry.ProteinG,
			CarbsG:   entry.CarbsG,
			FatG:     entry.FatG,
		})
	}
	return rows, nil
}

func (service *ExportService) BuildCSVRows(userID uint, from *time.Time, to *time.Time, location *time.Location) ([][]string, error) {
	entries, err := service.BuildJSONEntries(userID, from, to, location)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, entry.Columns())
	}
	return rows, nil
}

func (entry ExportJSONEntry) Columns() []string {
	return []string{
		entry.Date,
		entry.MealType,
		entry.Name,
		csvNumber(entry.Quantity),
		entry.Unit,
		csvNumber(entry.Calories),
		csvNumber(entry.ProteinG),
		csvNumber(entry.CarbsG),
		csvNumber(entry.FatG),
	}
}

func csvNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
