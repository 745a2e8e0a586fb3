package objmap

import (
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// struct tag keys consumed by the mapper
const (
	// AliasTagKey marks a source field with the name of the target field it
	// binds to, overriding plain name matching.
	AliasTagKey = "alias"
	// DefaultTagKey supplies the text parsed into a target field when the
	// resolved source value is absent.
	DefaultTagKey = "default"
	// JSONTagKey names the document key a target field resolves against when
	// mapping from a JSON source.
	JSONTagKey = "json"
)

// layout constants for the temporal scalar kinds
const (
	YearMonthLayout     = "2006-01"
	DateLayout          = "2006-01-02"
	LocalDateTimeLayout = "2006-01-02T15:04:05"
)

// reflect.TypeOf constants for type checks
var (
	StringType      = reflect.TypeOf("")
	TimeType        = reflect.TypeOf(time.Time{})
	UUIDType        = reflect.TypeOf(uuid.UUID{})
	DecimalType     = reflect.TypeOf(decimal.Decimal{})
	YearType        = reflect.TypeOf(Year(0))
	YearMonthType   = reflect.TypeOf(YearMonth{})
	DateType        = reflect.TypeOf(Date{})
	DateTimeType    = reflect.TypeOf(DateTime{})
	EmptyStructType = reflect.TypeOf(struct{}{})
)
