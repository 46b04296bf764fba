// help_request_client fills the help-request form from key=value lines on
// stdin, validates it and submits it to the configured endpoint.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"sort"
	"strings"

	"peaceconnect_service/internal/config"
	"peaceconnect_service/internal/forms"
	"peaceconnect_service/pkg/formvalidator"
	"peaceconnect_service/pkg/httpClient"
	"peaceconnect_service/pkg/logger"
	"peaceconnect_service/pkg/notify"
	"peaceconnect_service/pkg/submission"

	"go.uber.org/zap"
)

// navigator prints the redirect target and releases main.
type navigator struct {
	done chan string
}

func (n navigator) Navigate(target string) {
	n.done <- target
}

// readValues parses key=value lines. Blank lines and lines starting with
// # are ignored; a repeated key keeps the last value.
func readValues(r io.Reader) (url.Values, error) {
	values := url.Values{}
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		key, value, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: expected key=value", line)
		}
		values.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return values, scanner.Err()
}

// buildEngine attaches the help-request rules either to the form of an
// HTML page or to a form built from values alone.
func buildEngine(htmlPath string, values url.Values, log *zap.Logger) (*formvalidator.Engine, error) {
	if htmlPath == "" {
		return forms.NewHelpRequestEngine(values, log), nil
	}

	f, err := os.Open(htmlPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	form, err := formvalidator.ParseForm(f, forms.HelpRequestFormID)
	if err != nil {
		return nil, err
	}
	engine := forms.HelpRequestRules(formvalidator.Attach(form, formvalidator.WithLogger(log)))
	for name := range values {
		if engine.HasField(name) {
			engine.Input(name, values.Get(name))
		}
	}
	return engine, nil
}

func printErrors(errs map[string][]string) {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, msg := range errs[name] {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", name, msg)
		}
	}
}

func run() int {
	htmlPath := flag.String("html", "", "HTML page holding the help-request form")
	endpoint := flag.String("endpoint", "", "override the submission endpoint")
	flag.Parse()

	l, err := logger.NewLogger(logger.Options{Level: os.Getenv("LOG_LEVEL"), Console: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	log := l.Zap()
	defer func() { _ = log.Sync() }()

	cfg, err := config.ProvideConfig(l)
	if err != nil {
		log.Error("load config", zap.Error(err))
		return 1
	}
	if *endpoint != "" {
		cfg.Submission.Endpoint = *endpoint
		cfg.Submission.HealthEndpoint = *endpoint
	}

	values, err := readValues(os.Stdin)
	if err != nil {
		log.Error("read stdin", zap.Error(err))
		return 1
	}

	engine, err := buildEngine(*htmlPath, values, log)
	if err != nil {
		log.Error("prepare form", zap.Error(err))
		return 1
	}

	notifier := notify.NewWriter(os.Stdout)
	if !engine.ValidateForm() {
		notify.Show(notifier, submission.MsgFixErrors, notify.Error)
		printErrors(engine.AllErrors())
		return 2
	}

	nav := navigator{done: make(chan string, 1)}
	client := httpClient.NewClient(
		httpClient.WithTimeout(cfg.Submission.Timeout),
		httpClient.WithServiceName("help_request_client"),
	)
	flow := submission.New(submission.Config{
		Endpoint:       cfg.Submission.Endpoint,
		HealthEndpoint: cfg.Submission.HealthEndpoint,
		RedirectURL:    cfg.Submission.RedirectURL,
		RedirectDelay:  cfg.Submission.RedirectDelay,
	}, client,
		submission.WithNotifier(notifier),
		submission.WithNavigator(nav),
		submission.WithResetter(engine),
		submission.WithLogger(log),
	)

	if outcome := flow.Submit(context.Background(), engine.Data()); outcome != submission.OutcomeSuccess {
		log.Debug("submission finished", zap.Stringer("outcome", outcome))
		return 3
	}
	fmt.Printf("redirect: %s\n", <-nav.done)
	return 0
}

func main() {
	os.Exit(run())
}
