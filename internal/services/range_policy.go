package services

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrRangeFromDateInvalid = errors.New("invalid from date")
	ErrRangeToDateInvalid   = errors.New("invalid to date")
	ErrRangeInvalid         = errors.New("invalid range")
)

// ParseDayRange parses optional YYYY-MM-DD bounds. Either side may be empty.
func ParseDayRange(rawFrom string, rawTo string, location *time.Location) (*time.Time, *time.Time, error) {
	fromRaw := strings.TrimSpace(rawFrom)
	toRaw := strings.TrimSpace(rawTo)

	var from *time.Time
	if fromRaw != "" {
		parsedFrom, err := time.ParseInLocation(exportDateLayout, fromRaw, location)
		if err != nil {
			return nil, nil, ErrRangeFromDateInvalid
		}
		normalizedFrom := DateAtLocation(parsedFrom, location)
		from = &normalizedFrom
	}

	var to *time.Time
	if toRaw != "" {
		parsedTo, err := time.ParseInLocation(exportDateLayout, toRaw, location)
		if err != nil {
			return nil, nil, ErrRangeToDateInvalid
		}
		normalizedTo := DateAtLocation(parsedTo, location)
		to = &normalizedTo
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrRangeInvalid
	}

	return from, to, nil
}
