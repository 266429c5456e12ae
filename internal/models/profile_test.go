package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfile_ExerciseTypesRoundTrip(t *testing.T) {
	t.Parallel()

	p := &Profile{UserID: "user-1"}
	assert.Empty(t, p.GetExerciseTypes())

	p.SetExerciseTypes([]string{"cardio", "strength", "yoga"})
	assert.Equal(t, []string{"cardio", "strength", "yoga"}, p.GetExerciseTypes())
}

func TestProfile_SecondaryGoalsRoundTrip(t *testing.T) {
	t.Parallel()

	p := &Profile{UserID: "user-1"}
	p.SetSecondaryGoals([]string{"endurance"})
	assert.Equal(t, []string{"endurance"}, p.GetSecondaryGoals())
}

func TestProfile_JSONShape(t *testing.T) {
	t.Parallel()

	p := &Profile{
		UserID:       "user-1",
		Age:          "29",
		FitnessLevel: "intermediate",
	}
	p.SetExerciseTypes([]string{"cardio"})

	data, err := json.Marshal(p)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "user-1", decoded["userId"])
	assert.Equal(t, "29", decoded["age"])
	assert.Equal(t, "intermediate", decoded["fitnessLevel"])
	assert.Equal(t, []interface{}{"cardio"}, decoded["exerciseTypes"])

	// Unset optional fields stay out of the payload.
	_, present := decoded["medicalConditions"]
	assert.False(t, present)
}
