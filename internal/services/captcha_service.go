package services

import (
	"fmt"
	"math/rand/v2"
)

// CaptchaService produces the arithmetic challenge shown on the signup form.
type CaptchaService struct{}

func NewCaptchaService() *CaptchaService {
	return &CaptchaService{}
}

// GenerateMathProblem returns a display string (e.g. "3 + 5") and the integer answer.
// The answer is kept in the session and compared on submit.
func (s *CaptchaService) GenerateMathProblem() (string, int) {
	a := rand.IntN(10)
	b := rand.IntN(10)

	if rand.IntN(2) == 0 {
		return fmt.Sprintf("%d + %d", a, b), a + b
	}
	// 减法保证结果非负
	if a < b {
		a, b = b, a
	}
	return fmt.Sprintf("%d - %d", a, b), a - b
}
