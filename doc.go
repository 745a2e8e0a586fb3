// Package objmap copies data from an arbitrary source value into a newly
// constructed target value whose shape differs in field names, nesting,
// container types, and scalar representations.
//
// For every exported field of the target struct the mapper resolves where the
// corresponding source value lives, converts it to the required type
// (recursing through containers), and falls back to user-registered
// conversion functions when no generic rule applies.
//
// Source fields bind to target fields by name. A source field may carry an
// `alias` tag naming the target field it should bind to instead; alias
// matches always win over plain name matches. A target field may carry a
// `default` tag whose text is used when the source value is absent.
//
//	type PersonRecord struct {
//	    FullName  string `alias:"Name"`
//	    StringAge string `alias:"Age"`
//	}
//
//	type Person struct {
//	    Name string
//	    Age  int
//	}
//
//	var p Person
//	err := objmap.Map(PersonRecord{FullName: "John Doe", StringAge: "30"}, &p)
//
// When source and target types differ, the conversion cascade tries, in fixed
// order: identity, sequence recursion, set recursion, keyed-map recursion, a
// custom mapper registered for the exact (source, target) type pair, and
// finally the built-in scalar table. The scalar table always goes through the
// value's canonical text form and parses it strictly into the target kind:
// integers, floats, arbitrary-precision decimals, booleans, UUIDs, and the
// temporal kinds Year, YearMonth, Date, DateTime and time.Time.
//
// A JSON document can play the role of the source instance via MapJSON; the
// document's keys resolve against target fields using the `json` tag, the
// field name, or its lowerCamel form, and values flow through the same
// absence policy and conversion cascade.
//
// Construction either fully succeeds or the whole call fails: on any error
// the destination is zeroed, so a partially-populated target is never
// returned. Failures are reported synchronously through typed errors
// (NoConstructorError, UnresolvedFieldError, NonNullableViolationError,
// ConversionFailedError), each carrying the target field and source field
// context needed to diagnose the mapping without re-running it.
//
// Mappers are stateless apart from their MapperRegistry. Concurrent Map calls
// against the same registry are safe as long as no goroutine is concurrently
// registering new mappers; the registry is read-mostly by design. Recursion
// depth is bounded only by the depth of the data being converted, so cyclic
// source graphs are a caller responsibility.
package objmap
