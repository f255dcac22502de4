package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/ldconformance/ld-test-harness/config"
	"github.com/ldconformance/ld-test-harness/framework/ldtest"
)

type commandParams struct {
	suiteDir         string
	earlFile         string
	configFile       string
	serviceURL       string
	port             int
	host             string
	filters          ldtest.RegexFilters
	skipFile         string
	recordFailures   string
	stopOnFailure    bool
	stopServiceAtEnd bool
	debug            bool
	debugAll         bool
	progress         bool
	jUnitFile        string

	// set holds the names of the flags that were given, so that only those override the config
	set map[string]bool
}

// Read parses the command line. It returns false if the program should exit; exitCode is
// the status to exit with.
func (c *commandParams) Read(args []string, errOut io.Writer) (ok bool, exitCode int) {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.suiteDir, "suite", "", "directory of the test suite, containing the root manifest")
	fs.StringVar(&c.earlFile, "earl", "", "write the EARL report to the specified path")
	fs.StringVar(&c.configFile, "config", "", "YAML configuration file")
	fs.StringVar(&c.serviceURL, "url", "", "test service URL")
	fs.StringVar(&c.host, "host", "", "external hostname of the test harness")
	fs.IntVar(&c.port, "port", 0, "port that the test harness will listen on")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.StringVar(&c.skipFile, "skip-from", "", "file listing tests to skip, one test ID per line")
	fs.StringVar(&c.recordFailures, "record-failures", "", "write the IDs of failed tests to the specified path")
	fs.BoolVar(&c.stopOnFailure, "stop-on-failure", false, "stop the run at the first failed test")
	fs.BoolVar(&c.stopServiceAtEnd, "stop-service-at-end", false, "tell test service to exit after the test run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&c.progress, "progress", false, "show a progress bar instead of a line for each test")
	fs.StringVar(&c.jUnitFile, "junit", "", "write JUnit XML output to the specified path")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return false, 0
		}
		return false, 1
	}
	c.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { c.set[f.Name] = true })

	if c.suiteDir == "" && !c.set["config"] {
		fmt.Fprintln(errOut, "-suite is required")
		fs.Usage()
		return false, 0
	}
	return true, 0
}

// applyTo overrides configuration values with the flags that were given.
func (c *commandParams) applyTo(cfg *config.Config) {
	if c.set["suite"] {
		cfg.Suite.Dir = c.suiteDir
	}
	if c.set["url"] {
		cfg.Service.URL = c.serviceURL
	}
	if c.set["host"] {
		cfg.Service.Host = c.host
	}
	if c.set["port"] {
		cfg.Service.Port = c.port
	}
	if c.set["earl"] {
		cfg.Report.EARL = c.earlFile
	}
	if c.set["junit"] {
		cfg.Report.JUnit = c.jUnitFile
	}
	if c.set["record-failures"] {
		cfg.Report.RecordFailures = c.recordFailures
	}
	if c.set["stop-on-failure"] {
		cfg.Report.StopOnFailure = c.stopOnFailure
	}
}
