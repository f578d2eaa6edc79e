package util

import "golang.org/x/crypto/bcrypt"

const PasswordCost = 12

func GenerateEncrypt(password string, cost int) (string, error) {
	encrypted, err := bcrypt.GenerateFromPassword([]byte(password), cost)

	if err != nil {
		return "", err
	}

	return string(encrypted), nil
}

func ComparePassword(password, encrypted string) error {
	return bcrypt.CompareHashAndPassword([]byte(encrypted), []byte(password))
}
