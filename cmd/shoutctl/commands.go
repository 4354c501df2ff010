package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spettacolo/squalo/auth"
	"github.com/spettacolo/squalo/internal"
	"github.com/spettacolo/squalo/repositories"
)

const previewLength = 60

type printer struct {
	w       io.Writer
	colours bool
}

func newPrinter(w io.Writer, colours bool) printer {
	return printer{w: w, colours: colours}
}

func (p printer) line(style color.Style, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.colours {
		msg = style.Render(msg)
	}
	_, _ = fmt.Fprintln(p.w, msg)
}

func (p printer) info(format string, args ...any) {
	p.line(color.New(color.FgCyan), format, args...)
}

func (p printer) success(format string, args ...any) {
	p.line(color.New(color.BgBlack, color.FgGreen), format, args...)
}

func (p printer) warn(format string, args ...any) {
	p.line(color.New(color.FgYellow), format, args...)
}

func runList(out printer, repository repositories.IMessageRepository, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "number of messages to print")
	if err := fs.Parse(args); err != nil {
		return err
	}

	messages, err := repository.List(context.Background(), *limit)
	if err != nil {
		return fmt.Errorf("list messages: %w", err)
	}
	if len(messages) == 0 {
		out.warn("No messages")
		return nil
	}

	table := tablewriter.NewWriter(out.w)
	table.SetHeader([]string{"ID", "Created At", "Text"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	for _, m := range messages {
		table.Append([]string{m.ID, m.CreatedAt.Format("2006-01-02 15:04:05"), preview(m.Text)})
	}
	table.Render()
	return nil
}

func runExport(out printer, repository repositories.IMessageRepository, cliConfig CLIConfig, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	path := fs.String("out", cliConfig.ExportPath, "destination file")
	limit := fs.Int("limit", repositories.DefaultExportLimit, "maximum number of messages")
	if err := fs.Parse(args); err != nil {
		return err
	}

	n, err := repositories.ExportJSON(context.Background(), repository, *path, *limit)
	if err != nil {
		return err
	}
	out.success("Exported %d messages to %s", n, *path)
	return nil
}

func runDelete(out printer, repository repositories.IMessageRepository, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := fs.String("id", "", "message id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*id) == "" {
		return fmt.Errorf("-id is required")
	}

	ok, err := repository.Delete(context.Background(), *id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if !ok {
		out.warn("No message with id %s", *id)
		return nil
	}
	out.success("Deleted %s", *id)
	return nil
}

func runToken(out printer, config internal.Config, cliConfig CLIConfig, args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	subject := fs.String("subject", "operator", "token subject")
	ttl := fs.Duration("ttl", cliConfig.TokenTTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	signer, err := auth.NewSigner(config.AdminJWTSecret)
	if err != nil {
		return fmt.Errorf("ADMIN_JWT_SECRET must be set: %w", err)
	}
	token, err := signer.GenerateToken(*subject, []string{auth.RoleAdmin}, *ttl)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	out.info("Admin token for %s, valid %s", *subject, *ttl)
	_, _ = fmt.Fprintln(out.w, token)
	return nil
}

func preview(text string) string {
	runes := []rune(strings.ReplaceAll(text, "\n", " "))
	if len(runes) <= previewLength {
		return string(runes)
	}
	return string(runes[:previewLength-1]) + "…"
}
