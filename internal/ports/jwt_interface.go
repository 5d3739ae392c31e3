package ports

// TokenGenerator : подпись claims пользователя
type TokenGenerator interface {
	GenerateToken(nationalID, email, firstName, lastName string) (string, error)
}
