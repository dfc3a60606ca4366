package gateway

import (
	"net"
	"strconv"
	"testing"
)

func TestCIDR(t *testing.T) {
	data := [][]string{
		{"255.255.255.255", "/32"},
		{"255.255.255.254", "/31"},
		{"255.255.255.252", "/30"},
		{"255.255.255.248", "/29"},
		{"255.255.255.240", "/28"},
		{"255.255.255.224", "/27"},
		{"255.255.255.192", "/26"},
		{"255.255.255.128", "/25"},
		{"255.255.255.0", "/24"},
		{"255.255.254.0", "/23"},
		{"255.255.252.0", "/22"},
		{"255.255.248.0", "/21"},
		{"255.255.240.0", "/20"},
		{"255.255.224.0", "/19"},
		{"255.255.192.0", "/18"},
		{"255.255.128.0", "/17"},
		{"255.255.0.0", "/16"},
		{"255.254.0.0", "/15"},
		{"255.252.0.0", "/14"},
		{"255.248.0.0", "/13"},
		{"255.240.0.0", "/12"},
		{"255.224.0.0", "/11"},
		{"255.192.0.0", "/10"},
		{"255.128.0.0", "/9"},
		{"255.0.0.0", "/8"},
	}
	assertEquals(25, len(netmasks))
	for _, item := range data {
		suffix, ok := CIDR(item[0])
		assertEqualsF(true, ok, "expect %s to be a known netmask", item[0])
		assertEqualsF(item[1], suffix, "expect %s => %s, but got %s", item[0], item[1], suffix)
	}
}

func TestCIDR_AgreesWithIPMask(t *testing.T) {
	for mask, suffix := range netmasks {
		ones, _ := net.IPMask(parseIp(mask)).Size()
		assertEqualsF("/"+strconv.Itoa(ones), suffix, "mask %s", mask)
	}
}

func TestCIDR_Unknown(t *testing.T) {
	for _, mask := range []string{"", "255.255.255.1", "0.0.0.0", "254.0.0.0", "24"} {
		_, ok := CIDR(mask)
		assertEqualsF(false, ok, "expect %q to be unknown", mask)
	}
}

func TestSubnetBase(t *testing.T) {
	data := [][]string{
		{"192.168.1.37", "255.255.255.0", "192.168.1.0"},
		{"192.168.1.37", "255.255.255.255", "192.168.1.37"},
		{"10.1.2.3", "255.0.0.0", "10.0.0.0"},
		{"172.16.5.130", "255.255.255.128", "172.16.5.128"},
		{"172.16.5.7", "255.255.255.252", "172.16.5.4"},
		{"172.31.255.255", "255.240.0.0", "172.16.0.0"},
	}
	for _, item := range data {
		base, err := SubnetBase(item[0], item[1])
		assert(err == nil, "err is %v", err)
		assertEqualsF(item[2], base, "expect %s & %s => %s, but got %s", item[0], item[1], item[2], base)
	}
}

func TestSubnetBase_Invalid(t *testing.T) {
	data := [][]string{
		{"192.168.1.37", "255.255.255.1"},
		{"not-an-ip", "255.255.255.0"},
		{"2001:db8::1", "255.255.255.0"},
		{"", "255.255.255.0"},
	}
	for _, item := range data {
		_, err := SubnetBase(item[0], item[1])
		assertEqualsF(true, err != nil, "expect an error for %s/%s", item[0], item[1])
	}
}
