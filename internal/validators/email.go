package validators

import (
	"net"
	"strings"
)

// HasMailbox valida la forma mínima de un correo sin tocar la red.
func HasMailbox(email string) bool {
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1
}

// IsEmailDomainValid verifica que el dominio del correo resuelva
// (MX o al menos A/AAAA).
func IsEmailDomainValid(email string) bool {
	if !HasMailbox(email) {
		return false
	}

	domain := email[strings.LastIndex(email, "@")+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
