package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/amoylab/tidio-mcp/internal/common/cnst"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the loaded configuration and reports every problem found
func Validate(cfg *TidioMCPConfig) error {
	var errs []*ValidationError

	u, err := url.Parse(cfg.Tidio.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, &ValidationError{
			Field:   "tidio.base_url",
			Message: fmt.Sprintf("%v %q", cnst.ErrInvalidBaseURL, cfg.Tidio.BaseURL),
		})
	}
	if cfg.Tidio.Timeout < 0 {
		errs = append(errs, &ValidationError{Field: "tidio.timeout", Message: "must not be negative"})
	}
	if cfg.Server.MaxConcurrency < 0 {
		errs = append(errs, &ValidationError{Field: "server.max_concurrency", Message: "must not be negative"})
	}

	switch strings.ToLower(cfg.Logger.Level) {
	case "", "debug", "info", "warn", "error", "dpanic", "panic", "fatal":
	default:
		errs = append(errs, &ValidationError{Field: "logger.level", Message: fmt.Sprintf("unknown level %q", cfg.Logger.Level)})
	}
	switch cfg.Logger.Format {
	case "", cnst.LoggerFormatJSON, cnst.LoggerFormatConsole:
	default:
		errs = append(errs, &ValidationError{Field: "logger.format", Message: fmt.Sprintf("unknown format %q", cfg.Logger.Format)})
	}
	switch cfg.Logger.Output {
	case "", cnst.LoggerOutputStderr:
	case cnst.LoggerOutputFile:
		if cfg.Logger.FilePath == "" {
			errs = append(errs, &ValidationError{Field: "logger.file_path", Message: "required when output is file"})
		}
	default:
		// stdout carries the protocol stream
		errs = append(errs, &ValidationError{Field: "logger.output", Message: fmt.Sprintf("unsupported output %q", cfg.Logger.Output)})
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Addr == "" {
		errs = append(errs, &ValidationError{Field: "metrics.addr", Message: "required when metrics are enabled"})
	}

	if cfg.Tracing.Enabled {
		switch cfg.Tracing.Protocol {
		case "", cnst.TraceProtocolGRPC, cnst.TraceProtocolHTTP:
		default:
			errs = append(errs, &ValidationError{Field: "tracing.protocol", Message: fmt.Sprintf("unknown protocol %q", cfg.Tracing.Protocol)})
		}
		if cfg.Tracing.SamplerRate < 0 || cfg.Tracing.SamplerRate > 1 {
			errs = append(errs, &ValidationError{Field: "tracing.sampler_rate", Message: "must be within [0, 1]"})
		}
	}

	if len(errs) > 0 {
		var sb strings.Builder
		for i, err := range errs {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(err.Error())
		}
		return fmt.Errorf("%s", sb.String())
	}

	return nil
}
