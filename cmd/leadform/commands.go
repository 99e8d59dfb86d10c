package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-leadform/internal/config"
	"github.com/goliatone/go-leadform/internal/leadfile"
	"github.com/goliatone/go-leadform/internal/logger"
	"github.com/goliatone/go-leadform/pkg/attachment"
	"github.com/goliatone/go-leadform/pkg/contactform"
	"github.com/goliatone/go-leadform/pkg/lead"
	"github.com/goliatone/go-leadform/pkg/locale"
	"github.com/goliatone/go-leadform/pkg/notify"
	"github.com/goliatone/go-leadform/pkg/relay"
	"github.com/goliatone/go-leadform/pkg/terminal"
)

// errInvalidLead is returned by validate when the lead file has field errors.
var errInvalidLead = errors.New("lead is invalid")

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "leadform",
		Usage: "collect vehicle purchase enquiries and relay them by email",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "message language (hr, en)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log debug output to stderr",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log info output to stderr",
			},
		},
		Commands: []*cli.Command{
			newSubmitCommand(out),
			newValidateCommand(out),
		},
	}
}

func newSubmitCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "submit",
		Usage: "fill in an enquiry and send it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "from",
				Usage: "read the lead from a YAML file instead of prompting",
			},
			&cli.StringSliceFlag{
				Name:  "attach",
				Usage: "image to stage with a --from lead (repeatable)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx = logger.WithLogger(ctx, env.log)

			cfg := env.cfg
			if err := cfg.Validate(); err != nil {
				return err
			}
			client, err := relay.New(cfg.Endpoint, cfg.AccessKey, cfg.RelayOptions()...)
			if err != nil {
				return err
			}

			driver := terminal.NewSurveyDriver(out)
			notifier := notify.Multi(terminal.NewNotifier(driver, terminal.DefaultTheme), logNotifier)
			form, err := contactform.New(client, notifier,
				contactform.WithTranslator(env.catalog),
				contactform.WithLanguage(cfg.Lang),
				contactform.WithAttachments(attachment.NewSet(cfg.AttachmentOptions()...)),
				contactform.WithAttachmentUpload(cfg.IncludeAttachments),
				contactform.WithLogger(env.log),
			)
			if err != nil {
				return err
			}
			defer form.Close()

			var outcome contactform.Outcome
			if from := strings.TrimSpace(cmd.String("from")); from != "" {
				outcome, err = submitFromFile(ctx, form, from, cmd.StringSlice("attach"))
			} else {
				outcome, err = submitInteractive(ctx, form, driver, env.catalog, cfg.Lang)
			}
			if err != nil {
				return err
			}
			return outcomeError(outcome)
		},
	}
}

func newValidateCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "check a YAML lead file without sending it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Usage:    "YAML lead file",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			fields, err := leadfile.Load(cmd.String("from"))
			if err != nil {
				return err
			}

			validator := lead.NewValidator(lead.WithTranslator(env.catalog), lead.WithLanguage(env.cfg.Lang))
			_, errs := validator.Validate(lead.Sanitize(fields))
			if len(errs) == 0 {
				fmt.Fprintln(out, "ok")
				return nil
			}
			for _, name := range lead.FieldNames {
				if msg, ok := errs[name]; ok {
					fmt.Fprintf(out, "%s: %s\n", validator.Label(name), msg)
				}
			}
			return fmt.Errorf("%w: %d field(s)", errInvalidLead, len(errs))
		},
	}
}

// logNotifier records every notification shown to the user at debug level.
var logNotifier = notify.NotifierFunc(func(ctx context.Context, n notify.Notification) {
	logger.Debug(ctx, "notification", slog.String("severity", string(n.Severity)), slog.String("title", n.Title))
})

type environment struct {
	cfg     config.Config
	catalog *locale.Catalog
	log     *slog.Logger
}

func setup(cmd *cli.Command) (environment, error) {
	log := logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return environment{}, err
	}
	if lang := strings.ToLower(strings.TrimSpace(cmd.String("lang"))); lang != "" {
		cfg.Lang = lang
	}

	catalog, err := locale.New()
	if err != nil {
		return environment{}, err
	}
	if !catalog.Supports(cfg.Lang) {
		return environment{}, fmt.Errorf("unsupported language %q (available: %s)", cfg.Lang, strings.Join(catalog.Languages(), ", "))
	}

	log.Debug("configuration loaded",
		slog.String("endpoint", cfg.Endpoint),
		slog.String("lang", cfg.Lang),
		slog.Bool("include_attachments", cfg.IncludeAttachments),
	)
	return environment{cfg: cfg, catalog: catalog, log: log}, nil
}

func submitFromFile(ctx context.Context, form *contactform.Controller, path string, attach []string) (contactform.Outcome, error) {
	fields, err := leadfile.Load(path)
	if err != nil {
		return contactform.Outcome{}, err
	}
	form.SetFields(fields)

	files := make([]attachment.File, 0, len(attach))
	for _, p := range attach {
		file, err := attachment.FromPath(p)
		if err != nil {
			return contactform.Outcome{}, err
		}
		files = append(files, file)
	}
	if len(files) > 0 {
		form.AddAttachments(ctx, files...)
	}
	logger.Debug(ctx, "submitting lead file", slog.String("path", path), slog.Int("attachments", len(form.Attachments())))
	return form.Submit(ctx), nil
}

func submitInteractive(ctx context.Context, form *contactform.Controller, driver terminal.PromptDriver, catalog locale.Translator, lang string) (contactform.Outcome, error) {
	session, err := terminal.NewSession(form,
		terminal.WithPromptDriver(driver),
		terminal.WithTranslator(catalog),
		terminal.WithLanguage(lang),
	)
	if err != nil {
		return contactform.Outcome{}, err
	}
	return session.Run(ctx)
}

func outcomeError(outcome contactform.Outcome) error {
	switch outcome.Result {
	case contactform.ResultSucceeded:
		return nil
	case contactform.ResultValidationFailed:
		return fmt.Errorf("%w: %s", errInvalidLead, strings.Join(outcome.Errors.Fields(), ", "))
	case contactform.ResultFailed:
		return fmt.Errorf("submission failed: %w", outcome.Err)
	default:
		return fmt.Errorf("submission %s", outcome.Result)
	}
}
