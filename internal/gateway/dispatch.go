package gateway

import (
	"regexp"
)

const sipConverter = "SIPconv"

var (
	dstTranslateRE   = regexp.MustCompile(`(?i)\^\.\*/(.*)&`)
	inDstTranslateRE = regexp.MustCompile(`(?i)^([^|]*)\|`)
)

// setter applies one option value to the section being built. A non-empty
// return value rejects the line with that reason.
type setter func(b *builder, value string) string

var setters = map[string]setter{
	"address": func(b *builder, value string) string {
		b.addAddresses(value)
		return ""
	},
	"mask": func(b *builder, value string) string {
		if _, ok := CIDR(value); !ok {
			return "unknown netmask"
		}
		b.netmask = value
		return ""
	},
	"converter": func(b *builder, value string) string {
		if value == sipConverter {
			b.protocol = ProtocolSIP
		}
		return ""
	},
	"gateway_mode": func(b *builder, value string) string {
		switch value {
		case "1":
			b.customer = true
		case "2":
			b.supplier = true
		}
		return ""
	},
	"dst_translate": func(b *builder, value string) string {
		if m := dstTranslateRE.FindStringSubmatch(value); m != nil {
			b.prefix = m[1]
		}
		return ""
	},
	"in_dst_translate": func(b *builder, value string) string {
		if m := inDstTranslateRE.FindStringSubmatch(value); m != nil {
			b.prefix = m[1]
		}
		return ""
	},
	"group": func(b *builder, value string) string {
		b.group = value
		return ""
	},
}

// passiveOptions are part of the gateway schema but don't affect the report.
var passiveOptions = []string{
	"description",
	"enabled",
	"port",
	"capacity",
	"codecs",
	"src_translate",
	"in_src_translate",
	"proxy_mode",
	"priority",
}

func storeVerbatim(option string) setter {
	return func(b *builder, value string) string {
		b.extra[option] = value
		return ""
	}
}

// dispatcher resolves option names for one run, including caller-allowed names.
type dispatcher map[string]setter

func newDispatcher(allowed []string) dispatcher {
	d := make(dispatcher, len(setters)+len(passiveOptions)+len(allowed))
	for _, option := range passiveOptions {
		d[option] = storeVerbatim(option)
	}
	for _, option := range allowed {
		d[option] = storeVerbatim(option)
	}
	for option, set := range setters {
		d[option] = set
	}
	return d
}
