package services

import (
	"fmt"

	"insist-app/config"

	"gopkg.in/gomail.v2"
)

// SendCredentialEmail mengirim kredensial awal ke user baru. Best-effort:
// dipanggil caller tanpa menggagalkan operasi utamanya.
func SendCredentialEmail(toEmail, username, password string) error {
	if !config.SMTPEnabled {
		return nil
	}

	subject := "Akun INSIST Anda"
	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>Akun baru sudah dibuat</h3>
				<p>Username: <strong>%s</strong></p>
				<p>Password sementara: <strong>%s</strong></p>
				<p>Segera ganti password setelah login pertama.</p>
				<p>This is an auto-generated email. Please do not reply.</p>
			</body>
		</html>
	`, username, password)

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		fmt.Println("Gagal mengirim email:", err)
		return err
	}

	return nil
}
