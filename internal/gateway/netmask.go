package gateway

import (
	"net"
)

// netmasks maps every contiguous dotted-decimal IPv4 netmask from /8 to /32
// onto its CIDR suffix.
var netmasks = map[string]string{
	"255.255.255.255": "/32",
	"255.255.255.254": "/31",
	"255.255.255.252": "/30",
	"255.255.255.248": "/29",
	"255.255.255.240": "/28",
	"255.255.255.224": "/27",
	"255.255.255.192": "/26",
	"255.255.255.128": "/25",
	"255.255.255.0":   "/24",
	"255.255.254.0":   "/23",
	"255.255.252.0":   "/22",
	"255.255.248.0":   "/21",
	"255.255.240.0":   "/20",
	"255.255.224.0":   "/19",
	"255.255.192.0":   "/18",
	"255.255.128.0":   "/17",
	"255.255.0.0":     "/16",
	"255.254.0.0":     "/15",
	"255.252.0.0":     "/14",
	"255.248.0.0":     "/13",
	"255.240.0.0":     "/12",
	"255.224.0.0":     "/11",
	"255.192.0.0":     "/10",
	"255.128.0.0":     "/9",
	"255.0.0.0":       "/8",
}

// CIDR returns the "/n" suffix for a dotted-decimal netmask.
func CIDR(mask string) (string, bool) {
	suffix, ok := netmasks[mask]
	return suffix, ok
}

func parseIp(str string) net.IP {
	ip := net.ParseIP(str)
	if ip != nil {
		if ipv4 := ip.To4(); ipv4 != nil {
			return ipv4
		}
	}
	return ip
}

func firstIp(ip net.IP, mask net.IPMask) net.IP {
	ipLen := len(ip)
	res := make(net.IP, ipLen)
	if len(mask) != ipLen {
		panic("assert failed: mask length doesn't match " + ip.String())
	}
	for i := 0; i < ipLen; i++ {
		res[i] = ip[i] & mask[i]
	}
	return res
}

// SubnetBase returns the lowest address of the network that ip belongs to.
func SubnetBase(ip, mask string) (string, error) {
	if _, ok := netmasks[mask]; !ok {
		return "", &net.ParseError{Type: "netmask", Text: mask}
	}
	addr := parseIp(ip)
	if addr == nil || len(addr) != net.IPv4len {
		return "", &net.ParseError{Type: "IPv4 address", Text: ip}
	}
	return firstIp(addr, net.IPMask(parseIp(mask))).String(), nil
}
