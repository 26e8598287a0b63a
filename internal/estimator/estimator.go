// Package estimator asks an external AI model for a calorie estimate of a
// pending entry. The capability is optional: without an API key the bot
// runs with Disabled and /cal explains that estimation is off.
package estimator

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fooddiary/internal/common"
)

// Estimator returns a calorie estimate for a description and photos.
type Estimator interface {
	Estimate(ctx context.Context, description string, imageRefs []string) (int, error)
}

// Disabled is the estimator used when no model is configured.
type Disabled struct{}

func (Disabled) Estimate(context.Context, string, []string) (int, error) {
	return 0, common.ErrEstimatorUnavailable
}

const prompt = `Please analyze this food and estimate the total calories.
Respond with ONLY a number representing your calorie estimate.
For example: 850`

func buildPrompt(description string) string {
	if description == "" {
		return prompt
	}
	return prompt + "\n\nDescription: " + description
}

var firstNumber = regexp.MustCompile(`\d+`)

// parseCalories takes the first run of digits in the model's reply.
func parseCalories(reply string) (int, error) {
	reply = strings.TrimSpace(reply)
	m := firstNumber.FindString(reply)
	if m == "" {
		return 0, fmt.Errorf("could not extract calorie number from: %s", reply)
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("could not extract calorie number from: %s", reply)
	}
	return n, nil
}

// Enabled reports whether e can actually be called.
func Enabled(e Estimator) bool {
	if e == nil {
		return false
	}
	_, off := e.(Disabled)
	return !off
}
