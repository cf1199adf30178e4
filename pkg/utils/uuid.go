package utils

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}

// GeneratePrefixedID gera "<prefixo>_<id>". Se o gerador falhar, usa o horário em nanossegundos.
func GeneratePrefixedID(prefix string) string {
	id, err := GenerateID()
	if err != nil {
		return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
	}
	return prefix + "_" + id
}
