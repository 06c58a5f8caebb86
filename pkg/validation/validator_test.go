package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,role"`
	Lang  string `json:"lang" binding:"omitempty,lang"`
	Mood  string `json:"mood" binding:"omitempty,mood"`
}

func TestDomainTags(t *testing.T) {
	Init()

	assert.NoError(t, binding.Validator.ValidateStruct(&sample{Email: "a@b.co", Role: "doctor", Lang: "ta", Mood: "Tired"}))

	err := binding.Validator.ValidateStruct(&sample{Email: "nope", Role: "ROOT", Lang: "fr", Mood: "Ecstatic"})
	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be one of: USER, DOCTOR, ADMIN", details["role"])
	assert.Equal(t, "must be one of: en, ta", details["lang"])
	assert.Equal(t, "must be one of: Happy, Neutral, Stressed, Tired", details["mood"])
}

func TestToDetailsFallback(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(assert.AnError))
}
