package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	To       string // operador que recebe alertas do motor
}

func NewEmailSender(host string, port int, user, password, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		To:       to,
	}
}

// SendSchemaDriftAlert avisa o operador que o banco não está no shape
// esperado e manda o script literal de remediação. Disparado uma única
// vez por sessão, na primeira detecção de drift.
func (s *EmailSender) SendSchemaDriftAlert(script string) error {
	if s.To == "" {
		return fmt.Errorf("ALERT_EMAIL não configurado")
	}

	body := fmt.Sprintf(`<h2>Sincronização de Banco Necessária</h2>
<p>O motor Atumia Core identificou que a tabela <code>leads</code> ou a coluna
<code>org_id</code> não estão prontas para processamento. O dashboard ficou em
modo de manutenção até o script abaixo rodar no SQL Editor do Supabase.</p>
<pre>%s</pre>
<p>Depois de rodar o script, recarregue o sistema.</p>`, script)

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@atumia.com.br")
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", "⚠️ Atumia Core: banco precisa de sincronização")
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
