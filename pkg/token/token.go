package token

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// secretKey 是一个全局变量，用于存储服务器在启动时生成的32字节密钥。
// 重启服务器会使所有已签发的会话失效，这对本系统是可接受的。
var secretKey []byte

// SessionPayload 定义了会话令牌中被签名的数据结构。
type SessionPayload struct {
	UserID    string `json:"u"`
	ExpiresAt int64  `json:"e"`
}

// GenerateSecretKey 生成一个密码学安全的32字节随机密钥。
func GenerateSecretKey() {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	if err != nil {
		panic("无法生成安全的密钥: " + err.Error())
	}
	secretKey = key
	fmt.Println("HMAC密钥已成功生成。")
}

// SignSession 为一个用户签发会话令牌，形如 base64(payload).base64(signature)。
func SignSession(userID string, ttl time.Duration) (string, error) {
	payload := SessionPayload{
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", errors.New("无法序列化会话payload")
	}

	mac := hmac.New(sha256.New, secretKey)
	mac.Write(payloadBytes)
	signature := mac.Sum(nil)

	encodedPayload := base64.RawURLEncoding.EncodeToString(payloadBytes)
	encodedSignature := base64.RawURLEncoding.EncodeToString(signature)
	return encodedPayload + "." + encodedSignature, nil
}

// ValidateSession 验证令牌的签名和有效期，成功时返回其中的用户ID。
func ValidateSession(tokenStr string) (string, error) {
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 2 {
		return "", errors.New("令牌格式错误")
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", errors.New("令牌payload解码失败")
	}
	actualSignature, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", errors.New("令牌签名解码失败")
	}

	mac := hmac.New(sha256.New, secretKey)
	mac.Write(payloadBytes)
	expectedSignature := mac.Sum(nil)

	// 使用 hmac.Equal 进行时间恒定的比较，防止时序攻击
	if !hmac.Equal(expectedSignature, actualSignature) {
		return "", errors.New("令牌签名无效")
	}

	var payload SessionPayload
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		return "", errors.New("令牌payload解析失败")
	}
	if time.Now().Unix() > payload.ExpiresAt {
		return "", errors.New("令牌已过期")
	}

	return payload.UserID, nil
}
