package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	mailgun "github.com/mailgun/mailgun-go/v3"
	log "github.com/sirupsen/logrus"
)

// Mailer sends a plain text message
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// MailgunMailer sends through the Mailgun API
type MailgunMailer struct {
	Domain string
	APIKey string
	Sender string
}

// MailgunFromEnv returns a mailer configured from the environment, or nil
// when it is not configured
func MailgunFromEnv() *MailgunMailer {
	m := &MailgunMailer{
		Domain: os.Getenv(EnvMailgunDomain),
		APIKey: os.Getenv(EnvMailgunAPIKey),
		Sender: os.Getenv(EnvMailgunSender),
	}
	if m.Domain == "" || m.APIKey == "" || m.Sender == "" {
		return nil
	}
	return m
}

// Send implements Mailer
func (m *MailgunMailer) Send(ctx context.Context, to, subject, body string) error {
	mg := mailgun.NewMailgun(m.Domain, m.APIKey)

	mm := mg.NewMessage(m.Sender, subject, body, to)
	mm.AddHeader("Sender", m.Sender)

	ctxd, cancel := context.WithTimeout(ctx, time.Second*20)
	defer cancel()

	msg, id, err := mg.Send(ctxd, mm)
	if err != nil {
		return fmt.Errorf("could not send message: %v, ID %s, %s", err, id, msg)
	}
	return nil
}

func doneEmail(rr *RunRecord) (string, string) {
	subj := fmt.Sprintf("[PPoTD] Tip date priors added for %d sequences", len(rr.Taxa))

	var params []string
	for _, item := range rr.Parameters {
		v := item.Value
		if f, ok := v.(float64); ok {
			v = FormatFloat(f)
		}
		params = append(params, fmt.Sprintf("%v = %v", item.Key, v))
	}

	msg := fmt.Sprintf(`Prior distributions, sample operators and logger entries were added for the tip dates.

        Input BEAUti .xml file: %s
        Output BEAUti .xml file: %s
        Tree: %s
        Prior distribution: %s (%s, offset = %s)
        Sequences: %d
        Run ID: %s
    `, rr.Input, rr.Output, rr.TreeID, rr.Distribution, strings.Join(params, ", "),
		FormatFloat(rr.Offset), len(rr.Taxa), rr.RunID)
	return subj, msg
}

// NotifyDone emails the outcome of a run. Failures are logged only: the
// updated file has already been written.
func NotifyDone(ctx context.Context, m Mailer, to string, rr *RunRecord) {
	if m == nil {
		log.Warn("Mailgun is not configured, skipping notification to ", to)
		return
	}
	subj, msg := doneEmail(rr)
	if err := m.Send(ctx, to, subj, msg); err != nil {
		log.Error("Could not notify ", to, ": ", err)
		return
	}
	log.Info("Sent notification to ", to)
}
