package helper

import (
	"crypto/rand"
	"fmt"
)

const classCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ClassCodeLength: panjang kode kelas yang dibagikan ke murid.
const ClassCodeLength = 6

// GenerateClassCode membuat kode kelas acak 6 karakter (A-Z, 0-9).
func GenerateClassCode() (string, error) {
	buf := make([]byte, ClassCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("gagal generate class code: %w", err)
	}
	for i, b := range buf {
		buf[i] = classCodeAlphabet[int(b)%len(classCodeAlphabet)]
	}
	return string(buf), nil
}

// GenerateUniqueClassCode mengulang generate sampai probe uniqueness lolos.
// Ruang 36^6 praktis tidak pernah habis; probe error tetap dihentikan.
func GenerateUniqueClassCode(taken func(code string) (bool, error)) (string, error) {
	for {
		code, err := GenerateClassCode()
		if err != nil {
			return "", err
		}
		exists, err := taken(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
}
