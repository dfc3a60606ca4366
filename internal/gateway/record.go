package gateway

import (
	"strings"
)

const (
	ProtocolH323    = "H.323"
	ProtocolSIP     = "SIP"
	ProtocolH323SIP = "H.323/SIP"

	UnknownCompany = "unknown"
	NoPrefix       = "none"
)

type Direction string

const (
	DirectionCustomer Direction = "customer"
	DirectionSupplier Direction = "supplier"
)

// builder accumulates the options of one section. It becomes a Record through
// finalize and is never touched again afterwards.
type builder struct {
	title     string
	addresses []string
	seen      map[string]bool
	netmask   string
	protocol  string
	prefix    string
	customer  bool
	supplier  bool
	group     string
	extra     map[string]string
}

func newBuilder(title string) *builder {
	return &builder{
		title:    title,
		seen:     make(map[string]bool),
		protocol: ProtocolH323,
		prefix:   NoPrefix,
		extra:    make(map[string]string),
	}
}

// addAddresses adds every ';'-separated address of value, ignoring a single
// trailing separator and addresses already present.
func (b *builder) addAddresses(value string) {
	value = strings.TrimSuffix(value, ";")
	for _, ip := range strings.Split(value, ";") {
		ip = strings.TrimSpace(ip)
		if ip == "" || b.seen[ip] {
			continue
		}
		b.seen[ip] = true
		b.addresses = append(b.addresses, ip)
	}
}

// Record is a finalized gateway. It has no exported mutators.
type Record struct {
	title       string
	addresses   []string
	netmask     string
	protocol    string
	prefix      string
	customer    bool
	supplier    bool
	company     string
	extra       map[string]string
	fingerprint string
}

func (r *Record) Title() string { return r.title }
func (r *Record) Netmask() string { return r.netmask }
func (r *Record) Protocol() string { return r.protocol }
func (r *Record) Prefix() string { return r.prefix }
func (r *Record) Company() string { return r.company }
func (r *Record) IsCustomer() bool { return r.customer }
func (r *Record) IsSupplier() bool { return r.supplier }

// Fingerprint is the duplicate detection key computed at finalization.
func (r *Record) Fingerprint() string { return r.fingerprint }

// Addresses returns a copy of the sorted address list.
func (r *Record) Addresses() []string {
	return append([]string(nil), r.addresses...)
}

// Extra returns a recognized option that has no effect on the report.
func (r *Record) Extra(option string) (string, bool) {
	value, ok := r.extra[option]
	return value, ok
}

// Direction is a single-valued view of the two flags; customer wins when both are set.
func (r *Record) Direction() Direction {
	if r.customer {
		return DirectionCustomer
	}
	return DirectionSupplier
}

// AddressList renders the addresses comma-joined, each with the CIDR suffix of
// the netmask when one is set.
func (r *Record) AddressList() string {
	if r.netmask == "" {
		return strings.Join(r.addresses, ",")
	}
	suffix, _ := CIDR(r.netmask)
	parts := make([]string, len(r.addresses))
	for i, ip := range r.addresses {
		parts[i] = ip + suffix
	}
	return strings.Join(parts, ",")
}

func (r *Record) valid() bool {
	return len(r.addresses) > 0
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
