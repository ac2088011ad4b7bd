package mail

import "html/template"

// WelcomeTemplate is sent to newly registered customers.
var WelcomeTemplate = template.Must(template.New("welcome").Parse(`<!doctype html>
<html>
<body>
<h1>Welcome, {{.Name}}!</h1>
<p>Your VoucherHub account for {{.Email}} is ready. Every purchase earns points you can redeem for vouchers.</p>
</body>
</html>`))

// WelcomeData is the data WelcomeTemplate expects.
type WelcomeData struct {
	Name  string
	Email string
}

// Welcome builds the registration mail for one customer.
func Welcome(name, email string) *Message {
	return To(email).
		Subject("Welcome to VoucherHub").
		Template(WelcomeTemplate, WelcomeData{Name: name, Email: email})
}
