package gateway

import (
	"fmt"
	"sort"
	"strings"
)

// FlagStrategy decides how the group option and gateway_mode combine into
// the customer/supplier flags.
type FlagStrategy string

const (
	// GroupOverridesMode lets the group option alone pick the direction:
	// customer with a group, supplier without. gateway_mode flags are discarded.
	GroupOverridesMode FlagStrategy = "group-overrides-mode"
	// ModeOverridesGroup keeps gateway_mode flags and applies the group rule
	// only when gateway_mode set neither.
	ModeOverridesGroup FlagStrategy = "mode-overrides-group"
	// Merge sets the group-derived flag on top of gateway_mode flags.
	Merge FlagStrategy = "merge"
)

var FlagStrategies = []string{string(GroupOverridesMode), string(ModeOverridesGroup), string(Merge)}

func ParseFlagStrategy(s string) (FlagStrategy, error) {
	switch FlagStrategy(s) {
	case "":
		return GroupOverridesMode, nil
	case GroupOverridesMode, ModeOverridesGroup, Merge:
		return FlagStrategy(s), nil
	}
	return "", fmt.Errorf("unknown flag strategy %q", s)
}

func (s FlagStrategy) resolve(customer, supplier, grouped bool) (bool, bool) {
	switch s {
	case ModeOverridesGroup:
		if customer || supplier {
			return customer, supplier
		}
		return grouped, !grouped
	case Merge:
		if grouped {
			return true, supplier
		}
		return customer, true
	default:
		return grouped, !grouped
	}
}

// finalize attributes the section to a company and freezes it.
func (b *builder) finalize(book AddressBook, strategy FlagStrategy) *Record {
	r := &Record{
		title:    b.title,
		netmask:  b.netmask,
		protocol: b.protocol,
		prefix:   b.prefix,
		company:  UnknownCompany,
		extra:    b.extra,
	}

	if b.netmask == "" {
		for _, ip := range b.addresses {
			if _, ok := book.Lookup(ip); ok {
				r.addresses = append(r.addresses, ip)
			}
		}
		if len(r.addresses) > 0 {
			r.company, _ = book.Lookup(r.addresses[0])
		}
	} else {
		r.addresses = append(r.addresses, b.addresses...)
		if len(r.addresses) > 0 {
			if base, err := SubnetBase(r.addresses[0], b.netmask); err == nil {
				if company, ok := book.Lookup(base); ok {
					r.company = company
				}
			}
		}
	}

	if r.protocol == ProtocolH323 && b.customer {
		r.protocol = ProtocolH323SIP
	}

	sort.Strings(r.addresses)

	r.customer, r.supplier = strategy.resolve(b.customer, b.supplier, b.group != "")

	r.fingerprint = strings.Join([]string{
		strings.Join(r.addresses, ","),
		r.protocol,
		r.prefix,
		yesNo(r.customer),
		yesNo(r.supplier),
	}, "|")
	return r
}
