package services

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/spettacolo/squalo/domain"
	errs "github.com/spettacolo/squalo/errors"
	"github.com/spettacolo/squalo/repositories"
)

const maskedSecret = "*****"

var (
	credentialPattern = regexp.MustCompile(`:(.+?)@`)
	passwordPattern   = regexp.MustCompile(`password=\S+`)
)

type DiagnosticsOptions struct {
	Backend    string
	ConnString string
	SSLMode    string
	SSLDisable bool
	Debug      bool
}

type SSLInfo struct {
	SSLMode    *string `json:"PGSSLMODE"`
	SSLDisable bool    `json:"PGSSL_DISABLE"`
}

type DiagnosticsReport struct {
	OK      bool
	Backend string
	Sample  []domain.Message
	Err     error
	Conn    string
	SSLInfo SSLInfo
	Hint    string
	Chain   []string
}

// DiagnosticsService probes the configured message store with a one-row read.
type DiagnosticsService struct {
	repository repositories.IMessageRepository
	opts       DiagnosticsOptions
	log        *slog.Logger
}

func NewDiagnosticsService(repository repositories.IMessageRepository, opts DiagnosticsOptions, log *slog.Logger) *DiagnosticsService {
	return &DiagnosticsService{repository: repository, opts: opts, log: log}
}

func (s *DiagnosticsService) Check(ctx context.Context) DiagnosticsReport {
	report := DiagnosticsReport{Backend: s.opts.Backend}
	sample, err := s.repository.List(ctx, 1)
	if err == nil {
		report.OK = true
		report.Sample = sample
		return report
	}

	s.log.Error("Store diagnostics failed", "backend", s.opts.Backend, "error", err)
	report.Err = err
	report.Conn = MaskConnString(s.opts.ConnString)
	report.SSLInfo = SSLInfo{SSLDisable: s.opts.SSLDisable}
	if s.opts.SSLMode != "" {
		mode := s.opts.SSLMode
		report.SSLInfo.SSLMode = &mode
	}
	report.Hint = hintFor(err)
	if s.opts.Debug {
		report.Chain = errorChain(err)
	}
	return report
}

// MaskConnString hides the password of a connection URL.
func MaskConnString(conn string) string {
	if conn == "" {
		return ""
	}
	if u, err := url.Parse(conn); err == nil && u.User != nil {
		return strings.Replace(u.Redacted(), ":xxxxx@", ":"+maskedSecret+"@", 1)
	}
	conn = passwordPattern.ReplaceAllString(conn, "password="+maskedSecret)
	return credentialPattern.ReplaceAllString(conn, ":"+maskedSecret+"@")
}

func hintFor(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, errs.ErrStoreNotConfigured):
		return "set POSTGRES_URL or DATABASE_URL, or choose another SHOUTBOX_BACKEND"
	case errors.Is(err, errs.ErrSchemaMissing):
		return "the messages table is missing; check the database user can create tables"
	case strings.Contains(msg, "tls"), strings.Contains(msg, "ssl"), strings.Contains(msg, "certificate"):
		return "TLS negotiation failed; try PGSSLMODE=require or PGSSL_DISABLE=true"
	case strings.Contains(msg, "password authentication failed"):
		return "check POSTGRES_USER and POSTGRES_PASSWORD"
	}
	return ""
}

func errorChain(err error) []string {
	var chain []string
	for err != nil {
		chain = append(chain, err.Error())
		err = errors.Unwrap(err)
	}
	return chain
}
