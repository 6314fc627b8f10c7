// File: internal/service/password.go
package service

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// HashPassword 接收明文密碼，回傳 bcrypt 哈希字串
func HashPassword(password string) (string, error) {
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// ComparePassword 比對明文密碼與 bcrypt 哈希，成功回傳 nil，失敗則回傳錯誤
func ComparePassword(hash, password string) error {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password))
}

// VerifyPassword 密碼不符或哈希格式錯誤皆回傳 false
func VerifyPassword(password, hash string) bool {
	return ComparePassword(hash, password) == nil
}

// BurnPasswordCompare 對固定哈希做一次比對，讓帳號不存在時的回應時間與密碼錯誤相近
func BurnPasswordCompare(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("link-directory-dummy"), bcrypt.DefaultCost)
	})
	_ = bcryptCompareHashAndPassword(dummyHash, []byte(password))
}
