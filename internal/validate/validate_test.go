package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tubeshelf/tubeshelf-go/internal/model"
)

func TestMap_ValidStruct(t *testing.T) {
	req := model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "long-enough-password",
	}
	assert.Nil(t, Map(req))
}

func TestMap_ReportsJSONFieldNames(t *testing.T) {
	req := model.RegisterRequest{
		Username: "al",
		Email:    "not-an-email",
		Password: "short",
	}

	errs := Map(req)
	assert.Len(t, errs, 3)
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Equal(t, "must be a valid email address", errs["email"])
}

func TestMap_UserCreateRequest(t *testing.T) {
	req := model.UserCreateRequest{
		Username: "curator",
		Email:    "curator@example.com",
		Password: "long-enough-password",
		IsAdmin:  true,
	}
	assert.Nil(t, Map(req))

	req.Password = "short"
	errs := Map(req)
	assert.Contains(t, errs, "password")
}

func TestMap_RatingBounds(t *testing.T) {
	assert.Nil(t, Map(model.RatingRequest{Score: 1}))
	assert.Nil(t, Map(model.RatingRequest{Score: 5}))

	errs := Map(model.RatingRequest{Score: 6})
	assert.Contains(t, errs, "score")

	// zero score trips "required"
	errs = Map(model.RatingRequest{})
	assert.Contains(t, errs, "score")
}

func TestMap_FrequencyOneOf(t *testing.T) {
	req := model.WatchedChannelRequest{
		ChannelID: "UCuAXFkgsw1L7xaCfnd5JJOw",
		Frequency: "hourly",
	}

	errs := Map(req)
	assert.Equal(t, "must be one of: daily weekly", errs["frequency"])

	req.Frequency = "weekly"
	assert.Nil(t, Map(req))
}
