package httperr

import "errors"

// BusinessError es un error de dominio con un código estable que la capa
// HTTP traduce a un status. Nunca envuelve errores de persistencia.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extrae el código, o "" si no es un BusinessError.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// Códigos compartidos entre use cases y handlers.
const (
	CodePermissionDenied  = "permission_denied"
	CodeClientNotFound    = "client_not_found"
	CodeServiceNotFound   = "service_not_found"
	CodeEmptyServices     = "empty_services"
	CodeInvalidDateOrTime = "invalid_date_or_time"
	CodeInvalidState      = "invalid_state"
)
