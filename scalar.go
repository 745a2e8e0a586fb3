package objmap

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

///////////////////////////////////////////////////////////////////////////////
// Temporal scalar kinds
///////////////////////////////////////////////////////////////////////////////

// Year is a bare calendar year with at least four digits, e.g. 2026.
type Year int

func (y Year) String() string {
	return fmt.Sprintf("%04d", int(y))
}

// YearMonth is a calendar year-month without a day component.
type YearMonth struct {
	Year  int
	Month time.Month
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Date is a calendar date without a time-of-day component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DateTime is a zone-less local date-time. Moments carrying an offset or a
// zone are represented by time.Time instead.
type DateTime struct {
	time.Time
}

func (dt DateTime) String() string {
	return dt.Format(LocalDateTimeLayout)
}

///////////////////////////////////////////////////////////////////////////////
// Scalar conversion table
///////////////////////////////////////////////////////////////////////////////

// parseScalar parses the canonical text form of a value into the target
// scalar kind. The parse is strict per kind; an unsupported target kind or a
// text that does not parse yields an unconverted result, never an error.
//
// Currently supported target kinds:
//   - string (always succeeds)
//   - int/int8..int64, uint/uint8..uint64 (with overflow checking)
//   - float32/float64 (with overflow checking)
//   - bool (exactly the literals "true" and "false")
//   - decimal.Decimal (arbitrary precision)
//   - uuid.UUID
//   - Year, YearMonth, Date, DateTime, time.Time (ISO forms)
func parseScalar(text string, to reflect.Type) ConvertResult {
	switch to {
	case TimeType:
		return parseTimeValue(text)
	case UUIDType:
		return parseUUIDValue(text)
	case DecimalType:
		return parseDecimalValue(text)
	case YearType:
		return parseYearValue(text)
	case YearMonthType:
		return parseYearMonthValue(text)
	case DateType:
		return parseDateValue(text)
	case DateTimeType:
		return parseDateTimeValue(text)
	}

	switch to.Kind() {
	case reflect.String:
		return ConvertResultValue(reflect.ValueOf(text).Convert(to))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return parseIntValue(text, to)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return parseUintValue(text, to)
	case reflect.Float32, reflect.Float64:
		return parseFloatValue(text, to)
	case reflect.Bool:
		return parseBoolValue(text, to)
	default:
		return ConvertResultNone()
	}
}

// parseIntValue parses integer values with overflow checking
func parseIntValue(text string, to reflect.Type) ConvertResult {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return ConvertResultNone()
	}
	v := reflect.New(to).Elem()
	if v.OverflowInt(n) {
		return ConvertResultNone()
	}
	v.SetInt(n)
	return ConvertResultValue(v)
}

// parseUintValue parses unsigned integer values with overflow checking
func parseUintValue(text string, to reflect.Type) ConvertResult {
	n, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return ConvertResultNone()
	}
	v := reflect.New(to).Elem()
	if v.OverflowUint(n) {
		return ConvertResultNone()
	}
	v.SetUint(n)
	return ConvertResultValue(v)
}

// parseFloatValue parses decimal values with overflow checking
func parseFloatValue(text string, to reflect.Type) ConvertResult {
	f, err := strconv.ParseFloat(text, to.Bits())
	if err != nil {
		return ConvertResultNone()
	}
	v := reflect.New(to).Elem()
	v.SetFloat(f)
	return ConvertResultValue(v)
}

// parseBoolValue accepts exactly the two canonical boolean literals.
func parseBoolValue(text string, to reflect.Type) ConvertResult {
	v := reflect.New(to).Elem()
	switch text {
	case "true":
		v.SetBool(true)
	case "false":
		v.SetBool(false)
	default:
		return ConvertResultNone()
	}
	return ConvertResultValue(v)
}

func parseDecimalValue(text string) ConvertResult {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return ConvertResultNone()
	}
	return ConvertResultValue(reflect.ValueOf(d))
}

func parseUUIDValue(text string) ConvertResult {
	u, err := uuid.Parse(text)
	if err != nil {
		return ConvertResultNone()
	}
	return ConvertResultValue(reflect.ValueOf(u))
}

func parseYearValue(text string) ConvertResult {
	if len(text) < 4 {
		return ConvertResultNone()
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return ConvertResultNone()
	}
	return ConvertResultValue(reflect.ValueOf(Year(n)))
}

func parseYearMonthValue(text string) ConvertResult {
	t, err := time.Parse(YearMonthLayout, text)
	if err != nil {
		return ConvertResultNone()
	}
	return ConvertResultValue(reflect.ValueOf(YearMonth{Year: t.Year(), Month: t.Month()}))
}

func parseDateValue(text string) ConvertResult {
	t, err := time.Parse(DateLayout, text)
	if err != nil {
		return ConvertResultNone()
	}
	return ConvertResultValue(reflect.ValueOf(Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}))
}

func parseDateTimeValue(text string) ConvertResult {
	t, err := time.Parse(LocalDateTimeLayout, text)
	if err != nil {
		return ConvertResultNone()
	}
	return ConvertResultValue(reflect.ValueOf(DateTime{Time: t}))
}

// parseTimeValue parses an RFC 3339 moment. The offset in the text is
// preserved, so instants, offset date-times and zoned date-times all land
// here.
func parseTimeValue(text string) ConvertResult {
	t, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return ConvertResultNone()
	}
	return ConvertResultValue(reflect.ValueOf(t))
}
