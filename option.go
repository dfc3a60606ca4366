package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"

	"github.com/zhanhb/gateway-report/internal/config"
	"github.com/zhanhb/gateway-report/internal/gateway"
)

type Option struct {
	inputFiles     []string
	outputFile     string
	addressBook    string
	dbDriver       string
	dbDSN          string
	importBook     bool
	format         string
	emptyPolicy    string
	dropUnknown    bool
	flagStrategy   gateway.FlagStrategy
	dedup          gateway.DedupPolicy
	allowedOptions []string
	logLevel       log.Level
}

func printUsage(set *getopt.Set, file io.Writer, extra ...interface{}) {
	if len(extra) > 0 {
		fprintln(file, extra...)
	}
	for _, r := range []interface{}{
		strings.Join([]string{
			"Usage:",
			set.Program(),
			"[OPTION]... [FILE]...",
		}, " "),
		"Read gateway configuration FILEs (or standard input), attribute every gateway to",
		"a company and write the grouped report to standard output.",
		"",
		"Options:",
	} {
		fprintln(file, r)
	}
	set.PrintOptions(file)
}

func tty(file *os.File) bool {
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func parseOptions(args []string, cfg *config.Config) (*Option, error) {
	var (
		sharedBool  bool
		allowOption string
		outputFile  = cfg.Report.Output
		addressBook = cfg.Input.AddressBook
		dbDriver    = cfg.Database.Driver
		dbDSN       = cfg.Database.DSN
		dropUnknown = cfg.Report.DropUnknown
		importBook  bool
	)

	options := getopt.New()
	options.FlagLong(&addressBook, "address-book", 'a', "read the IP to company directory from <file>, one \"IP;Company\" per line", "file")
	options.FlagLong(&dbDSN, "db", 'd', "read the directory from the database at <dsn>, or store it there with --import", "dsn")
	options.FlagLong(&dbDriver, "db-driver", 0, "database driver: "+strings.Join(config.Drivers, ", ")+" (default "+cfg.Database.Driver+")", "driver")
	options.FlagLong(&importBook, "import", 0, "replace the directory stored in --db with the one read from --address-book")
	options.FlagLong(&outputFile, "output", 'o', "write the report to <file>, - for standard output", "file")
	format := options.EnumLong("format", 'f', config.Formats, cfg.Report.Format, "report format: csv(default) or xlsx")
	options.FlagLong(&dropUnknown, "drop-unknown", 0, "leave out gateways whose company is unknown")
	keepUnknown := options.FlagLong(&sharedBool, "keep-unknown", 0, "report gateways whose company is unknown (default)").Value()
	flagStrategy := options.EnumLong("flag-strategy", 0, gateway.FlagStrategies, cfg.Input.FlagStrategy,
		"how group and gateway_mode set the customer/supplier flags\n  group-overrides-mode(default): group alone decides\n  mode-overrides-group: gateway_mode wins when set\n  merge: both apply")
	dedup := options.EnumLong("dedup", 0, gateway.DedupPolicies, cfg.Input.Dedup,
		"what to do with duplicated gateways\n  keep-first(default): keep the first one\n  drop-all: drop every copy")
	allowOptionValue := options.FlagLong(&allowOption, "allow-option", 0, "accept configuration option <name> and ignore its value, may be repeated", "name").Value()
	emptyPolicy := options.EnumLong("empty-policy", 0,
		config.EmptyPolicies, cfg.Report.EmptyPolicy,
		"indicate how to process an empty result\n  ignore(default): write the header only\n  skip: don't create output file\n  error: raise an error and exit")
	errorEmpty := options.FlagLong(&sharedBool, "error-if-empty", 'e', "same as --empty-policy=error").Value()
	skipEmpty := options.FlagLong(&sharedBool, "skip-empty", 'k', "same as --empty-policy=skip").Value()
	ignoreEmpty := options.FlagLong(&sharedBool, "ignore-empty", 0, "same as --empty-policy=ignore").Value()
	logLevel := options.StringLong("log-level", 0, cfg.LogLevel, "debug, info, warn or error")
	help := options.FlagLong(&sharedBool, "help", 'h', "show this help menu").Value()
	version := options.FlagLong(&sharedBool, "version", 'v', "show version info").Value()

	reverse := map[getopt.Value]*bool{
		keepUnknown: &dropUnknown,
	}

	policyDelegate := map[getopt.Value]string{
		errorEmpty:  "error",
		skipEmpty:   "skip",
		ignoreEmpty: "ignore",
	}

	allowedOptions := cfg.Input.GetAllowedOptions()

	var stop bool
	customAction := map[getopt.Value]func() bool{
		help: func() bool {
			printUsage(options, os.Stdout)
			stop = true
			return false
		}, version: func() bool {
			fprintln(os.Stdout, "gateway report "+VERSION)
			stop = true
			return false
		}, allowOptionValue: func() bool {
			allowedOptions = append(allowedOptions, allowOption)
			return true
		},
	}
	if err := options.Getopt(args, func(opt getopt.Option) bool {
		value := opt.Value()
		if k, ok := reverse[value]; ok {
			*k = !sharedBool
			return true
		} else if k, ok := policyDelegate[value]; ok {
			if sharedBool {
				*emptyPolicy = k
			} else {
				*emptyPolicy = "ignore"
			}
			return true
		} else if k, ok := customAction[value]; ok {
			return k()
		}
		return opt.Seen()
	}); err != nil {
		printUsage(options, os.Stderr, err)
		return nil, errUsage
	}

	if stop || options.State() == getopt.Terminated {
		return nil, nil
	}

	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		printUsage(options, os.Stderr, err)
		return nil, errUsage
	}
	if !oneOf(dbDriver, config.Drivers) {
		printUsage(options, os.Stderr, fmt.Sprintf("unknown database driver %q", dbDriver))
		return nil, errUsage
	}
	if importBook && (addressBook == "" || dbDSN == "") {
		printUsage(options, os.Stderr, "--import needs both --address-book and --db")
		return nil, errUsage
	}

	inputFiles := options.Args()
	if len(inputFiles) == 0 {
		inputFiles = []string{"-"}
	}
	for _, inputFile := range inputFiles {
		if inputFile == "-" && tty(os.Stdin) {
			printUsage(options, os.Stderr, "refusing to read configuration from a terminal")
			return nil, errUsage
		}
	}
	if *format == "xlsx" && outputFile == "-" && tty(os.Stdout) {
		printUsage(options, os.Stderr, "refusing to write a workbook to a terminal, use --output")
		return nil, errUsage
	}

	return &Option{
		inputFiles:     inputFiles,
		outputFile:     outputFile,
		addressBook:    addressBook,
		dbDriver:       dbDriver,
		dbDSN:          dbDSN,
		importBook:     importBook,
		format:         *format,
		emptyPolicy:    *emptyPolicy,
		dropUnknown:    dropUnknown,
		flagStrategy:   gateway.FlagStrategy(*flagStrategy),
		dedup:          gateway.DedupPolicy(*dedup),
		allowedOptions: allowedOptions,
		logLevel:       level,
	}, nil
}

func oneOf(value string, values []string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
