package config

import "os"

func GetJWTKey() []byte {
	return []byte(os.Getenv("BYTE_KEY"))
}
