// Package query assembles parameterized filter, sort, and pagination
// clauses. User-supplied values travel only as bound parameters; the
// only text ever concatenated into a statement is a whitelisted sort
// column and a validated order keyword.
package query

import "strings"

// Filter accumulates WHERE conditions and their bound arguments
type Filter struct {
	conds []string
	args  []interface{}
}

// Equal adds an exact-match condition
func (f *Filter) Equal(column, value string) {
	f.conds = append(f.conds, column+" = ?")
	f.args = append(f.args, value)
}

// DateFrom adds an inclusive lower bound at date granularity
func (f *Filter) DateFrom(column, date string) {
	f.conds = append(f.conds, column+" >= ?::date")
	f.args = append(f.args, date)
}

// DateTo adds an upper bound inclusive of the named day, implemented
// as an exclusive bound at the start of the following day.
func (f *Filter) DateTo(column, date string) {
	f.conds = append(f.conds, column+" < (?::date + INTERVAL '1 day')")
	f.args = append(f.args, date)
}

// DateToInclusive adds an inclusive upper bound for date-typed columns
func (f *Filter) DateToInclusive(column, date string) {
	f.conds = append(f.conds, column+" <= ?::date")
	f.args = append(f.args, date)
}

// DateEquals matches a timestamp column against one calendar day
func (f *Filter) DateEquals(column, date string) {
	f.conds = append(f.conds, "DATE("+column+") = ?::date")
	f.args = append(f.args, date)
}

// Where renders the WHERE clause, or an empty string with no conditions
func (f *Filter) Where() string {
	if len(f.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(f.conds, " AND ")
}

// Args returns the bound arguments in condition order
func (f *Filter) Args() []interface{} {
	return f.args
}

// SortColumn returns the requested column when whitelisted, otherwise
// the endpoint's default. An unrecognized value never errors.
func SortColumn(requested, fallback string, whitelist map[string]bool) string {
	if whitelist[requested] {
		return requested
	}
	return fallback
}

// SortOrder normalizes an order parameter to ASC or DESC
func SortOrder(requested, fallback string) string {
	switch strings.ToLower(requested) {
	case "asc":
		return "ASC"
	case "desc":
		return "DESC"
	default:
		return strings.ToUpper(fallback)
	}
}
