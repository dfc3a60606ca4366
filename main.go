package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pborman/getopt/v2"
	"golang.org/x/sync/errgroup"

	"github.com/zhanhb/gateway-report/internal/config"
	"github.com/zhanhb/gateway-report/internal/gateway"
	"github.com/zhanhb/gateway-report/internal/sheet"
	"github.com/zhanhb/gateway-report/internal/store"
)

var VERSION = "SNAPSHOT"

var errUsage = errors.New("usage")

//noinspection SpellCheckingInspection
func fprintln(w io.Writer, a ...interface{}) {
	if _, err := fmt.Fprintln(w, a...); err != nil {
		panic(err)
	}
}

func readFile(inputFile string) (string, error) {
	var (
		content []byte
		err     error
	)
	if inputFile == "-" {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(inputFile)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", gateway.ErrSourceUnavailable, err)
	}
	return string(content), nil
}

// readAll concatenates the inputs in argument order, making sure a fragment
// without a final newline doesn't run into the next one.
func readAll(ctx context.Context, inputFiles ...string) (string, error) {
	contents := make([]string, len(inputFiles))
	g, _ := errgroup.WithContext(ctx)
	for i, inputFile := range inputFiles {
		i, inputFile := i, inputFile
		g.Go(func() error {
			content, err := readFile(inputFile)
			contents[i] = content
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, content := range contents {
		sb.WriteString(content)
		if content != "" && !strings.HasSuffix(content, "\n") {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

func loadAddressBook(ctx context.Context, option *Option) (gateway.AddressBook, error) {
	var (
		book     gateway.AddressBook
		fromText bool
	)
	if option.addressBook != "" {
		text, err := readFile(option.addressBook)
		if err != nil {
			return book, err
		}
		if book, err = gateway.BuildAddressBook(text); err != nil {
			return book, fmt.Errorf("%s: %w", option.addressBook, err)
		}
		fromText = true
	}
	if option.dbDSN == "" {
		if !fromText {
			return book, errors.New("no address book, use --address-book or --db")
		}
		return book, nil
	}
	if fromText && !option.importBook {
		return book, nil
	}

	s, err := store.Open(option.dbDriver, option.dbDSN)
	if err != nil {
		return book, fmt.Errorf("%w: %v", gateway.ErrSourceUnavailable, err)
	}
	//noinspection GoUnhandledErrorResult
	defer s.Close()
	if option.importBook {
		if err := s.ReplaceAddressBook(ctx, book); err != nil {
			return book, err
		}
		log.Info("Address book imported", "entries", book.Len(), "db", option.dbDSN)
		return book, nil
	}
	return s.AddressBook(ctx)
}

func writeReport(w io.Writer, option *Option, records []*gateway.Record) error {
	reportOptions := gateway.ReportOptions{DropUnknown: option.dropUnknown}
	if option.format == "xlsx" {
		return sheet.Write(w, sheet.DefaultName, gateway.Table(records, reportOptions))
	}
	writer := bufio.NewWriter(w)
	if _, err := writer.WriteString(gateway.Render(records, reportOptions)); err != nil {
		return err
	}
	return writer.Flush()
}

func process(ctx context.Context, option *Option) error {
	book, err := loadAddressBook(ctx, option)
	if err != nil {
		return err
	}
	log.Debug("Address book loaded", "entries", book.Len())

	text, err := readAll(ctx, option.inputFiles...)
	if err != nil {
		return err
	}
	records, err := gateway.Extract(text, book, gateway.Options{
		FlagStrategy:   option.flagStrategy,
		Dedup:          option.dedup,
		AllowedOptions: option.allowedOptions,
		Logger:         log.Default(),
	})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		switch option.emptyPolicy {
		case "error":
			return errors.New("no gateway accepted")
		case "skip":
			log.Warn("No gateway accepted, output skipped")
			return nil
		default:
			// empty string if not specified, or "ignore"
		}
	}

	var target *os.File
	if option.outputFile == "-" {
		target = os.Stdout
	} else if file, err := os.Create(option.outputFile); err != nil {
		return err
	} else {
		//noinspection GoUnhandledErrorResult
		defer file.Close()
		target = file
	}
	if err := writeReport(target, option, records); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	log.Info("done", "gateways", len(records), "companies", len(gateway.Group(records)), "output", option.outputFile)
	return nil
}

func main() {
	defer func() {
		if err := recover(); err != nil {
			log.Error(err)
			os.Exit(2)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	getopt.HelpColumn = 28
	option, err := parseOptions(os.Args, cfg)
	if err != nil {
		os.Exit(1)
	}
	if option == nil {
		return
	}
	log.SetLevel(option.logLevel)
	if err := process(context.Background(), option); err != nil {
		panic(err)
	}
}
