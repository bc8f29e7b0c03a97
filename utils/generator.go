package utils

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/mwangikev/swim_school/models"
	"gorm.io/gorm"
)

// GenerateOneTimeToken returns a login token not yet held by any user.
func GenerateOneTimeToken(tx *gorm.DB) (string, error) {
	for {
		tokenBytes := make([]byte, 32)
		if _, err := rand.Read(tokenBytes); err != nil {
			return "", err
		}
		token := hex.EncodeToString(tokenBytes)

		var user models.User
		err := tx.Where("one_time_token = ?", token).First(&user).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return token, nil
			}
			return "", err
		}
	}
}
