package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ldconformance/ld-test-harness/config"
	"github.com/ldconformance/ld-test-harness/earl"
	"github.com/ldconformance/ld-test-harness/framework"
	"github.com/ldconformance/ld-test-harness/framework/harness"
	"github.com/ldconformance/ld-test-harness/framework/ldtest"
	"github.com/ldconformance/ld-test-harness/jsonldtests"
	"github.com/ldconformance/ld-test-harness/suite"

	"github.com/google/uuid"
)

const statusQueryTimeout = time.Second * 10

func main() {
	var params commandParams
	if ok, exitCode := params.Read(os.Args, os.Stderr); !ok {
		os.Exit(exitCode)
	}

	results, err := run(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !results.OK() {
		os.Exit(1)
	}
}

func run(params commandParams) (*ldtest.Results, error) {
	cfg, err := config.Load(params.configFile)
	if err != nil {
		return nil, fmt.Errorf("cannot load configuration: %w", err)
	}
	params.applyTo(cfg)
	if cfg.Suite.Dir == "" {
		return nil, errors.New("no test suite directory was specified")
	}

	if params.skipFile != "" {
		if err := loadSuppressions(&params); err != nil {
			return nil, err
		}
	}

	index, err := suite.Loader{RootDir: cfg.Suite.Dir, RemoteBaseURL: cfg.Suite.Remote}.
		Load(filepath.Join(cfg.Suite.Dir, cfg.Suite.Manifest))
	if err != nil {
		return nil, err
	}
	runID := uuid.New().String()
	fmt.Printf("Loaded %d tests from %s (run %s)\n", index.Count(), cfg.Suite.Dir, runID)

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	harness, err := harness.NewTestHarness(
		cfg.Service.URL,
		cfg.Service.Host,
		cfg.Service.Port,
		statusQueryTimeout,
		mainDebugLogger,
		os.Stdout,
	)
	if err != nil {
		return nil, err
	}
	serviceInfo := harness.TestServiceInfo()

	project := cfg.Project
	if project.Name == "" {
		project.Name = serviceInfo.Name
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reportOptions := []earl.Option{}
	if cfg.Report.EARL != "" {
		reportOptions = append(reportOptions, earl.WithOutputFile(cfg.Report.EARL))
	}
	if cfg.Report.StopOnFailure {
		reportOptions = append(reportOptions, earl.StopOnFailure(cancel))
	}
	report, err := earl.NewReport(project, reportOptions...)
	if err != nil {
		return nil, err
	}

	var consoleLogger ldtest.TestLogger = ldtest.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	if params.progress {
		consoleLogger = jsonldtests.NewProgressLogger(index, os.Stderr)
	}
	testLogger := &ldtest.MultiTestLogger{Loggers: []ldtest.TestLogger{consoleLogger, report}}
	if cfg.Report.JUnit != "" {
		testLogger.Loggers = append(testLogger.Loggers, ldtest.NewJUnitTestLogger(
			cfg.Report.JUnit,
			ldtest.RunInfo{RunID: runID, Implementation: serviceInfo.Name, SuiteDir: cfg.Suite.Dir},
			params.filters,
		))
	}

	results := jsonldtests.RunConformanceSuite(index, jsonldtests.SuiteConfig{
		Processor:    jsonldtests.NewRemoteProcessor(harness),
		Capabilities: serviceInfo.Capabilities,
		Filter:       params.filters,
		TestLogger:   testLogger,
		Tracker:      report,
		Cancellation: ctx,
		Output:       os.Stdout,
	})

	fmt.Println()
	logErr := testLogger.EndLog(results)
	jsonldtests.WriteSummary(os.Stdout, runID, jsonldtests.Summarize(index, results))

	if params.stopServiceAtEnd {
		fmt.Println("Stopping test service")
		if err := harness.StopService(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to stop test service: %s\n", err)
		}
	}

	if logErr != nil {
		return nil, fmt.Errorf("error writing log: %w", logErr)
	}

	if cfg.Report.RecordFailures != "" {
		f, err := os.Create(cfg.Report.RecordFailures)
		if err != nil {
			return nil, fmt.Errorf("cannot create suppression file: %w", err)
		}
		for _, test := range results.Failures {
			if len(test.TestID) > 1 {
				fmt.Fprintln(f, test.TestID)
			}
		}
		_ = f.Close()
	}

	return &results, nil
}

func loadSuppressions(params *commandParams) error {
	file, err := os.Open(params.skipFile)
	if err != nil {
		return fmt.Errorf("cannot open provided suppression file: %w", err)
	}
	defer func() { _ = file.Close() }()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := params.filters.MustNotMatch.Set(suppressionPattern(line)); err != nil {
			return fmt.Errorf("cannot parse suppression: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("while processing suppression file: %w", err)
	}
	return nil
}

// suppressionPattern matches exactly the test ID on a line of a suppression file. Patterns
// are matched one ID component at a time, so each component is anchored separately.
func suppressionPattern(line string) string {
	parts := strings.Split(line, "/")
	for i, p := range parts {
		parts[i] = "^" + regexp.QuoteMeta(p) + "$"
	}
	return strings.Join(parts, "/")
}
