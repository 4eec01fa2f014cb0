package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"content-optimizer/internal/models"
	"content-optimizer/shared/config"
)

type Sender struct {
	config *config.EmailConfig
}

func NewSender(cfg *config.EmailConfig) *Sender {
	return &Sender{config: cfg}
}

// SendDNAReport mails the niche analysis with an optional AI narration.
func (s *Sender) SendDNAReport(dna *models.ContentDNA, narration string) error {
	if dna == nil {
		return fmt.Errorf("content DNA cannot be nil")
	}

	subject := fmt.Sprintf("Content DNA Report - %s (%d videos analyzed)", dna.Niche, dna.VideoCount)
	body, err := renderDNABody(dna, narration)
	if err != nil {
		return fmt.Errorf("failed to generate email body: %w", err)
	}
	return s.SendHTML(subject, body)
}

// SendHTML sends an email with custom HTML content.
func (s *Sender) SendHTML(subject, htmlBody string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.SMTPServer)

	to := []string{s.config.ToEmail}
	msg := []byte(fmt.Sprintf(`To: %s
From: %s
Subject: %s
MIME-Version: 1.0
Content-Type: text/html; charset=UTF-8

%s`, s.config.ToEmail, s.config.FromEmail, subject, htmlBody))

	addr := fmt.Sprintf("%s:%d", s.config.SMTPServer, s.config.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.FromEmail, to, msg)
}

var dnaTemplate = template.Must(template.New("dna").Parse(`<html>
<body style="font-family: Arial, sans-serif; max-width: 640px; margin: 0 auto;">
<h2>Content DNA: {{.Niche}}</h2>
<p>{{.VideoCount}} competitor videos analyzed{{if .GeneratedAt}} at {{.GeneratedAt}}{{end}}.</p>

<h3>Strategy</h3>
<p>{{.Strategy}}</p>

<h3>Patterns</h3>
<ul>
{{range .Patterns}}<li><b>{{.Name}}</b>{{if .Detail}} ({{.Detail}}){{end}}: {{.Recommendation}}</li>
{{end}}</ul>

{{if .Narration}}<h3>Briefing</h3>
<p>{{.Narration}}</p>
{{end}}
</body>
</html>`))

type patternView struct {
	Name           string
	Detail         string
	Recommendation string
}

func renderDNABody(dna *models.ContentDNA, narration string) (string, error) {
	patterns := make([]patternView, 0, len(dna.Patterns))
	for _, p := range dna.Patterns {
		view := patternView{
			Name:           p.Element + "/" + p.Pattern,
			Recommendation: p.Recommendation,
		}
		switch {
		case p.Prevalence != nil:
			view.Detail = fmt.Sprintf("%.0f%% of videos", *p.Prevalence)
		case p.Value != nil:
			view.Detail = fmt.Sprintf("average %.0f", *p.Value)
		}
		patterns = append(patterns, view)
	}

	data := struct {
		Niche       models.Niche
		VideoCount  int
		GeneratedAt string
		Strategy    string
		Patterns    []patternView
		Narration   string
	}{dna.Niche, dna.VideoCount, dna.GeneratedAt, dna.Summary.TitleStrategy, patterns, narration}

	var buf bytes.Buffer
	if err := dnaTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
