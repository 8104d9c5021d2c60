package config

import (
	"log/slog"
	"time"

	"github.com/campus-lab/coursepath/pkg/service/assistant"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// OpenAI holds CLI flags for the hosted assistant service
type OpenAI struct {
	apiKey       string
	model        string
	pollInterval time.Duration
	pollMax      time.Duration
	pollDeadline time.Duration
}

// Flags returns CLI flags for OpenAI configuration
func (o *OpenAI) Flags() []cli.Flag {
	defaults := assistant.DefaultPollPolicy()

	return []cli.Flag{
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key (required)",
			Required:    true,
			Sources:     cli.EnvVars("COURSEPATH_OPENAI_API_KEY", "OPENAI_API_KEY"),
			Destination: &o.apiKey,
		},
		&cli.StringFlag{
			Name:        "openai-model",
			Usage:       "Model used when provisioning assistants",
			Sources:     cli.EnvVars("COURSEPATH_OPENAI_MODEL"),
			Destination: &o.model,
		},
		&cli.DurationFlag{
			Name:        "openai-poll-interval",
			Usage:       "Initial run-status poll interval",
			Value:       defaults.Initial,
			Sources:     cli.EnvVars("COURSEPATH_OPENAI_POLL_INTERVAL"),
			Destination: &o.pollInterval,
		},
		&cli.DurationFlag{
			Name:        "openai-poll-max",
			Usage:       "Maximum run-status poll interval",
			Value:       defaults.Max,
			Sources:     cli.EnvVars("COURSEPATH_OPENAI_POLL_MAX"),
			Destination: &o.pollMax,
		},
		&cli.DurationFlag{
			Name:        "openai-poll-deadline",
			Usage:       "Overall deadline for a single assistant run",
			Value:       defaults.Deadline,
			Sources:     cli.EnvVars("COURSEPATH_OPENAI_POLL_DEADLINE"),
			Destination: &o.pollDeadline,
		},
	}
}

// LogAttrs returns log attributes for the OpenAI configuration. The API key
// is never logged.
func (o *OpenAI) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Bool("api_key_set", o.apiKey != ""),
		slog.String("model", o.model),
		slog.Duration("poll_interval", o.pollInterval),
		slog.Duration("poll_max", o.pollMax),
		slog.Duration("poll_deadline", o.pollDeadline),
	}
}

// Configure creates the assistant service client from the configured flags
func (o *OpenAI) Configure() (assistant.Service, error) {
	if o.apiKey == "" {
		return nil, goerr.New("openai-api-key is required")
	}
	if o.pollInterval <= 0 || o.pollMax < o.pollInterval || o.pollDeadline <= 0 {
		return nil, goerr.New("invalid poll bounds",
			goerr.V("interval", o.pollInterval),
			goerr.V("max", o.pollMax),
			goerr.V("deadline", o.pollDeadline),
		)
	}

	opts := []assistant.Option{
		assistant.WithPollPolicy(assistant.PollPolicy{
			Initial:  o.pollInterval,
			Max:      o.pollMax,
			Deadline: o.pollDeadline,
		}),
	}
	if o.model != "" {
		opts = append(opts, assistant.WithModel(o.model))
	}

	return assistant.New(o.apiKey, opts...), nil
}
