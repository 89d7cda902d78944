package mailer

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

// SendWelcomeEmail envía el correo de bienvenida tras el registro.
// Si no hay credenciales SMTP configuradas no hace nada.
func SendWelcomeEmail(to, username string) error {
	emailUser := os.Getenv("EMAIL_USER")
	emailPass := os.Getenv("EMAIL_APP_PASS")
	if emailUser == "" || emailPass == "" {
		return nil
	}

	host := os.Getenv("EMAIL_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}

	htmlContent := fmt.Sprintf(`
    <div style="font-family: Arial; color: #0ff; background:#001f2f; padding:2rem; border-radius:1rem;">
      <h1>Hola %s 👋</h1>
      <p>Gracias por unirte a <strong>El Gran Azul</strong>! Sumérgete en los misterios del océano y descubre los últimos descubrimientos marinos.</p>
      <a href="%s/login" style="padding:0.5rem 1rem; background:#00f2ff; color:#001f2f; border-radius:0.5rem; font-weight:bold; text-decoration:none;">Acceder a tu cuenta</a>
    </div>
  `, username, os.Getenv("FRONTEND_URL"))

	m := gomail.NewMessage()
	m.SetAddressHeader("From", emailUser, "El Gran Azul 🌊")
	m.SetHeader("To", to)
	m.SetHeader("Subject", "¡Bienvenido a El Gran Azul! 🐋")
	m.SetBody("text/html", htmlContent)

	d := gomail.NewDialer(host, 465, emailUser, emailPass)
	return d.DialAndSend(m)
}
