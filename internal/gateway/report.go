package gateway

import (
	"strings"
)

const fieldSeparator = ";"

// Header lists the report columns.
var Header = []string{"Company", "Gateway Name", "isCustomer", "isSupplier", "IPs", "Protocol", "Prefix"}

type ReportOptions struct {
	// DropUnknown leaves out records whose company could not be resolved.
	DropUnknown bool
}

type CompanyGroup struct {
	Company string
	Records []*Record
}

// Group collects records by company. Companies appear in the order their
// first record does; records keep their relative order.
func Group(records []*Record) []CompanyGroup {
	var groups []CompanyGroup
	index := make(map[string]int)
	for _, r := range records {
		i, ok := index[r.company]
		if !ok {
			i = len(groups)
			index[r.company] = i
			groups = append(groups, CompanyGroup{Company: r.company})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// Table returns the header followed by one row of cells per reported record.
func Table(records []*Record, opts ReportOptions) [][]string {
	table := [][]string{append([]string(nil), Header...)}
	for _, group := range Group(records) {
		if opts.DropUnknown && group.Company == UnknownCompany {
			continue
		}
		for _, r := range group.Records {
			table = append(table, r.cells())
		}
	}
	return table
}

// Render returns the report as semicolon separated text. Every data row ends
// with a separator; the header doesn't.
func Render(records []*Record, opts ReportOptions) string {
	table := Table(records, opts)
	lines := make([]string, len(table))
	lines[0] = strings.Join(table[0], fieldSeparator)
	for i, row := range table[1:] {
		lines[i+1] = strings.Join(row, fieldSeparator) + fieldSeparator
	}
	return strings.Join(lines, "\n")
}

func (r *Record) cells() []string {
	return []string{
		r.company,
		r.title,
		yesNo(r.customer),
		yesNo(r.supplier),
		r.AddressList(),
		r.protocol,
		r.prefix,
	}
}
