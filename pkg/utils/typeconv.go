package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/BartekS5/review-etl/pkg/models"
	"github.com/golang-sql/civil"
)

// dateLayouts are tried in order when a date arrives as text.
var dateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// ParseDate converts val into a calendar date. The second result is false
// when val is missing or cannot be read as a date.
func ParseDate(val interface{}) (civil.Date, bool) {
	switch v := val.(type) {
	case civil.Date:
		return v, v.IsValid()
	case time.Time:
		if v.IsZero() {
			return civil.Date{}, false
		}
		return civil.DateOf(v), true
	case *time.Time:
		if v == nil {
			return civil.Date{}, false
		}
		return ParseDate(*v)
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return civil.DateOf(t), true
			}
		}
		return civil.Date{}, false
	case []byte:
		return ParseDate(string(v))
	default:
		return civil.Date{}, false
	}
}

// ConvertToFloat reads numbers and numeric text as float64.
func ConvertToFloat(val interface{}) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	case []byte:
		return ConvertToFloat(string(v))
	default:
		return 0, fmt.Errorf("cannot convert %T to float", val)
	}
}

// ConvertToInt reads integers, whole floats and integer text as int64.
// Fractional values are truncated toward zero.
func ConvertToInt(val interface{}) (int64, error) {
	switch v := val.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
	}
	f, err := ConvertToFloat(val)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("cannot convert %v to int", val)
	}
	return int64(f), nil
}

// CoerceRating converts a star rating to a non-negative integer.
// Anything missing, unreadable or negative becomes 0.
func CoerceRating(val interface{}) int64 {
	if val == nil {
		return 0
	}
	n, err := ConvertToInt(val)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ConvertToBool accepts booleans, 0/1 numbers and the usual text flags (Y/N, true/false).
func ConvertToBool(val interface{}) (bool, error) {
	switch v := val.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "y", "yes", "true", "t", "1":
			return true, nil
		case "n", "no", "false", "f", "0":
			return false, nil
		}
		return false, fmt.Errorf("cannot convert %q to bool", v)
	case []byte:
		return ConvertToBool(string(v))
	}
	n, err := ConvertToInt(val)
	if err != nil {
		return false, fmt.Errorf("cannot convert %T to bool", val)
	}
	return n != 0, nil
}

// ConvertToString renders val as text. Byte slices are read as UTF-8.
func ConvertToString(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case civil.Date:
		return v.String()
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ConvertToSQLType converts val into the Go type of the destination column.
// Dates come back as civil.Date; the caller adapts them to its driver.
func ConvertToSQLType(val interface{}, cfg models.FieldConfig) (interface{}, error) {
	if val == nil {
		return nil, nil
	}
	switch cfg.Type {
	case models.TypeDate:
		d, ok := ParseDate(val)
		if !ok {
			return nil, fmt.Errorf("unable to parse date: %v", val)
		}
		return d, nil
	case models.TypeInt:
		return ConvertToInt(val)
	case models.TypeFloat:
		return ConvertToFloat(val)
	case models.TypeBool:
		return ConvertToBool(val)
	case models.TypeString:
		return ConvertToString(val), nil
	default:
		return val, nil
	}
}

// ConvertToMongoType is ConvertToSQLType with dates as midnight UTC time.Time,
// which BSON stores natively.
func ConvertToMongoType(val interface{}, cfg models.FieldConfig) (interface{}, error) {
	v, err := ConvertToSQLType(val, cfg)
	if err != nil {
		return nil, err
	}
	if d, ok := v.(civil.Date); ok {
		return d.In(time.UTC), nil
	}
	return v, nil
}
