package dotenv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Load читает переменные из файла, не перетирая уже заданные в окружении.
// Если файла нет, возвращает false без ошибки.
func Load(path string) (bool, error) {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", path, err)
	}
	return true, nil
}

// Override выставляет непустые значения поверх окружения (флаги командной строки).
func Override(values map[string]string) error {
	for key, value := range values {
		if value == "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to set %s environment variable: %w", key, err)
		}
	}
	return nil
}
