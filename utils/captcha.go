package utils

import (
	"sync"
	"time"

	"github.com/mojocn/base64Captcha"
)

var (
	captchaStore     base64Captcha.Store
	captchaStoreOnce sync.Once
)

// store prefers the Redis-backed captcha store so answers survive behind a
// load balancer; without Redis it falls back to the in-memory default store.
func store() base64Captcha.Store {
	captchaStoreOnce.Do(func() {
		if GetRedis() != nil {
			captchaStore = NewRedisCaptchaStore(10 * time.Minute)
			return
		}
		captchaStore = base64Captcha.DefaultMemStore
	})
	return captchaStore
}

// GenerateCaptcha creates a captcha and returns (id, dataURI) for frontend to display.
func GenerateCaptcha() (string, string, error) {
	// Simple digit captcha: height 40, width 120, length 5
	driver := base64Captcha.NewDriverDigit(40, 120, 5, 0.7, 80)
	c := base64Captcha.NewCaptcha(driver, store())
	id, b64, _, err := c.Generate()
	return id, b64, err
}

// VerifyCaptcha verifies the provided answer; it consumes the captcha on success.
func VerifyCaptcha(id, answer string) bool {
	if id == "" || answer == "" {
		return false
	}
	return store().Verify(id, answer, true)
}

// VerifyCaptchaNoConsume verifies without consuming the stored answer.
func VerifyCaptchaNoConsume(id, answer string) bool {
	if id == "" || answer == "" {
		return false
	}
	return store().Verify(id, answer, false)
}
