package auth

// Claims representa la identidad autenticada del request.
// La emisión (códigos de un solo uso, magic links) vive fuera de este servicio.
type Claims struct {
	UserID string
	Email  string
	Role   string
}
