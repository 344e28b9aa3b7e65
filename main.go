package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/RHDSz/GmailAPI/pkg/config"
	"github.com/RHDSz/GmailAPI/pkg/country"
	"github.com/RHDSz/GmailAPI/pkg/gmail"
	"github.com/RHDSz/GmailAPI/pkg/news"
	"github.com/RHDSz/GmailAPI/pkg/report"
	"github.com/RHDSz/GmailAPI/pkg/weather"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		usage()
		return 1
	}

	// Ctrl-C cancels in-flight fetches and the OAuth consent wait instead of
	// leaving requests or the callback server hanging.
	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM)
	defer stop()

	switch args[0] {
	case "report":
		return runReport(ctx, args[1:])
	case "send":
		return runSend(ctx, args[1:])
	case "auth":
		return runAuth(ctx, args[1:])
	default:
		usage()
		return 1
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Expected 'report', 'send' or 'auth' subcommands")
	fmt.Fprintln(os.Stderr, "  report  print the report, optionally saving it with -save")
	fmt.Fprintln(os.Stderr, "  send    generate the report and email it via Gmail")
	fmt.Fprintln(os.Stderr, "  auth    run or verify the Gmail OAuth consent flow")
}

func runReport(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", "", "optional YAML configuration file")
	city := fs.String("city", "", "city for the weather section")
	countryCode := fs.String("country", "", "ISO 3166-1 alpha-2 country code")
	save := fs.Bool("save", false, "save the report to date-named .txt and .html files")
	debug := fs.Bool("debug", false, "print debugging messages")
	fs.Parse(args)

	setupLogging(*debug)

	cfg, err := loadConfig(*configPath, *city, *countryCode)
	if err != nil {
		logrus.Error(err)
		return 1
	}

	rep, err := buildReport(ctx, cfg)
	if err != nil {
		logrus.Errorf("could not compose report: %v", err)
		return 1
	}

	fmt.Print(rep.Text)

	if *save {
		txtPath, htmlPath, err := saveReport(rep)
		if err != nil {
			logrus.Errorf("could not save report: %v", err)
			return 1
		}
		fmt.Printf("\nReporte guardado en formato texto: %s\n", txtPath)
		fmt.Printf("Reporte guardado en formato HTML: %s\n", htmlPath)
	}

	return 0
}

func runSend(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	configPath := fs.String("config", "", "optional YAML configuration file")
	city := fs.String("city", "", "city for the weather section")
	countryCode := fs.String("country", "", "ISO 3166-1 alpha-2 country code")
	to := fs.String("to", "", "recipient email address")
	subject := fs.String("subject", "", "email subject line")
	noSave := fs.Bool("no-save", false, "do not keep a local copy of the report")
	debug := fs.Bool("debug", false, "print debugging messages")
	fs.Parse(args)

	setupLogging(*debug)

	cfg, err := loadConfig(*configPath, *city, *countryCode)
	if err != nil {
		logrus.Error(err)
		return 1
	}
	if *to != "" {
		cfg.Recipient = *to
	}
	if *subject != "" {
		cfg.Subject = *subject
	}

	rep, err := buildReport(ctx, cfg)
	if err != nil {
		logrus.Errorf("could not compose report: %v", err)
		return 1
	}

	if !*noSave {
		txtPath, htmlPath, err := saveReport(rep)
		if err != nil {
			logrus.Warnf("could not save local copy: %v", err)
		} else {
			logrus.WithFields(logrus.Fields{"text": txtPath, "html": htmlPath}).Info("local copy saved")
		}
	}

	// Unlike the fetch steps, a send failure aborts the run.
	sender := gmail.NewSender(cfg)
	id, err := sender.Send(ctx, gmail.Message{
		To:      cfg.Recipient,
		Subject: cfg.Subject,
		Text:    rep.Text,
		HTML:    rep.HTML,
	})
	if err != nil {
		logrus.Errorf("could not send report: %v", err)
		return 1
	}

	fmt.Printf("Reporte enviado exitosamente a %s (ID: %s)\n", cfg.Recipient, id)
	return 0
}

func runAuth(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("auth", flag.ExitOnError)
	configPath := fs.String("config", "", "optional YAML configuration file")
	debug := fs.Bool("debug", false, "print debugging messages")
	fs.Parse(args)

	setupLogging(*debug)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Error(err)
		return 1
	}

	if err := gmail.NewSender(cfg).Authorize(ctx); err != nil {
		logrus.Errorf("authentication failed: %v", err)
		return 1
	}

	fmt.Println("Autenticación con Gmail exitosa")
	return 0
}

// loadConfig loads the configuration and applies the shared flag overrides.
func loadConfig(path, city, countryCode string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if city != "" {
		cfg.City = city
	}
	if countryCode != "" {
		cfg.Country = countryCode
	}
	return cfg, nil
}

// buildReport runs the three fetch steps sequentially and composes the
// result. A failed fetch degrades its section to a placeholder rather than
// aborting the run.
func buildReport(ctx context.Context, cfg *config.Config) (*report.Report, error) {
	var w *weather.Info
	if info, err := weather.NewClient(cfg).Current(ctx, cfg.City); err != nil {
		logrus.Warnf("weather section unavailable: %v", err)
	} else {
		w = info
	}

	var items []news.Item
	if got, err := news.NewClient(cfg).Fetch(ctx); err != nil {
		logrus.Warnf("news section unavailable: %v", err)
	} else {
		items = got
	}

	var c *country.Info
	if info, err := country.NewClient(cfg).Info(ctx, cfg.Country); err != nil {
		logrus.Warnf("country section unavailable: %v", err)
	} else {
		c = info
	}

	return report.Compose(w, items, c, time.Now())
}

func setupLogging(debug bool) {
	logrus.SetOutput(os.Stderr)
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}
