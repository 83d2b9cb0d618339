package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/rm-dashboard/internal/config"
	"github.com/Dan9191/rm-dashboard/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending analysis summaries via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// SendAnalysis emails the metrics, narrative and evidence of an analysis
func (s *Sender) SendAnalysis(to string, analysis *models.Analysis) error {
	e := s.buildAnalysisEmail(to, analysis)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send analysis email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func (s *Sender) buildAnalysisEmail(to string, analysis *models.Analysis) *email.Email {
	r := analysis.Result

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("%s: %s", r.Narrative.Title, r.Client)

	var body strings.Builder
	fmt.Fprintf(&body, "Client: %s\n", r.Client)
	fmt.Fprintf(&body, "Query: %s\n", analysis.Query)
	fmt.Fprintf(&body, "Category: %s\n\n", analysis.Category)
	fmt.Fprintf(&body, "%s: %s\n", r.Metric1.Label, r.Metric1.Value)
	fmt.Fprintf(&body, "%s: %s\n\n", r.Metric2.Label, r.Metric2.Value)
	body.WriteString(r.Narrative.Body)
	body.WriteString("\n\nKnowledge Graph Reasoning\n")
	for _, insight := range analysis.Evidence.Insights {
		fmt.Fprintf(&body, "- %s\n", insight)
	}
	body.WriteString("\nSupporting Documents\n")
	for _, doc := range analysis.Evidence.Documents {
		fmt.Fprintf(&body, "- %s: %s\n", doc.Source, doc.Text)
	}
	body.WriteString("\nBest regards,\nRM Intelligence Dashboard")
	e.Text = []byte(body.String())

	return e
}
