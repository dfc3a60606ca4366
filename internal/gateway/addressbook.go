package gateway

import (
	"sort"
	"strings"
)

// AddressBook maps an IP address string to the company that owns it.
// Lookups are exact string matches. The zero value is an empty book.
type AddressBook struct {
	companies map[string]string
}

// NewAddressBook copies m into a new book.
func NewAddressBook(m map[string]string) AddressBook {
	companies := make(map[string]string, len(m))
	for ip, company := range m {
		companies[ip] = company
	}
	return AddressBook{companies: companies}
}

// BuildAddressBook parses "IP;Company" lines. Fields after the company are
// ignored and a later line for the same IP replaces an earlier one.
func BuildAddressBook(text string) (AddressBook, error) {
	companies := make(map[string]string)
	for i, line := range splitLines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) < 2 {
			return AddressBook{}, &MalformedLineError{Line: i + 1, Text: line, Reason: "missing ';' separator"}
		}
		ip := strings.TrimSpace(fields[0])
		if ip == "" {
			return AddressBook{}, &MalformedLineError{Line: i + 1, Text: line, Reason: "empty address"}
		}
		companies[ip] = strings.TrimSpace(fields[1])
	}
	return AddressBook{companies: companies}, nil
}

func (b AddressBook) Lookup(ip string) (string, bool) {
	company, ok := b.companies[ip]
	return company, ok
}

func (b AddressBook) Len() int {
	return len(b.companies)
}

// IPs returns every known address in lexicographic order.
func (b AddressBook) IPs() []string {
	ips := make([]string, 0, len(b.companies))
	for ip := range b.companies {
		ips = append(ips, ip)
	}
	sort.Strings(ips)
	return ips
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
