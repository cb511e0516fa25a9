package service

import "golang.org/x/crypto/bcrypt"

// Costo fijo de bcrypt; la latencia resultante es deliberada.
const bcryptCost = 12

// HashPassword genera un hash bcrypt salado del password en claro.
func HashPassword(password string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// CheckPassword compara un password en claro contra su hash almacenado.
// Devuelve false para hashes malformados, nunca un error.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
