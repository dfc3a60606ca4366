package gateway

import (
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func uint32ToIp(n uint32) string {
	return net.IPv4(byte(n>>24), byte(n>>16), byte(n>>8), byte(n)).String()
}

func TestProperty_SubnetBase(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("subnet base is its own base and shares the network with the address",
		prop.ForAll(
			func(n uint32, ones int) bool {
				ip := uint32ToIp(n)
				mask := net.IP(net.CIDRMask(ones, 32)).String()
				base, err := SubnetBase(ip, mask)
				if err != nil {
					t.Logf("SubnetBase(%s, %s): %v", ip, mask, err)
					return false
				}
				again, err := SubnetBase(base, mask)
				if err != nil || again != base {
					return false
				}
				_, network, err := net.ParseCIDR(fmt.Sprintf("%s/%d", ip, ones))
				return err == nil && network.IP.String() == base
			},
			gen.UInt32(),
			gen.IntRange(8, 32),
		))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_FingerprintIgnoresAddressOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("reordered addresses give the same fingerprint",
		prop.ForAll(
			func(octets []uint8) bool {
				if len(octets) == 0 {
					return true
				}
				var book, forward, backward []string
				for _, o := range octets {
					ip := fmt.Sprintf("10.0.0.%d", o)
					book = append(book, ip+";Acme")
					forward = append(forward, ip)
				}
				for i := len(forward) - 1; i >= 0; i-- {
					backward = append(backward, forward[i])
				}
				addressBook, err := BuildAddressBook(strings.Join(book, "\n"))
				if err != nil {
					return false
				}
				records, err := Extract(
					"[A]\naddress="+strings.Join(forward, ";")+"\n[B]\naddress="+strings.Join(backward, ";")+";",
					addressBook, Options{Dedup: KeepFirst})
				return err == nil && len(records) == 1 && records[0].Title() == "A"
			},
			gen.SliceOf(gen.UInt8()),
		))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
