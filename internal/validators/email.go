package validators

import (
	"context"
	"net"
	"net/mail"
	"strings"
	"time"
)

// Tempo máximo para a consulta DNS do domínio
const lookupTimeout = 3 * time.Second

func domainOf(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at < 1 || at == len(email)-1 {
		return "", false
	}
	return email[at+1:], true
}

// IsEmailSyntaxValid aceita só o endereço puro, sem nome ("Ana <a@b>").
func IsEmailSyntaxValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	domain, ok := domainOf(email)
	return ok && strings.Contains(domain, ".")
}

// IsEmailDomainValid confere se o domínio recebe e-mail (MX) ou ao menos
// resolve. Falha de DNS conta como inválido.
func IsEmailDomainValid(ctx context.Context, email string) bool {
	domain, ok := domainOf(email)
	if !ok {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	r := net.DefaultResolver
	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	addrs, err := r.LookupIPAddr(ctx, domain)
	return err == nil && len(addrs) > 0
}
