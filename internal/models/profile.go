package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Profile is the one-to-one fitness-intake extension of a User. The user ID
// doubles as primary key, so a user can never own two profiles, and the FK
// cascade removes the profile with its user. Every intake field is optional.
type Profile struct {
	UserID    string    `gorm:"type:uuid;primaryKey" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Physical stats
	Age    string `gorm:"size:10" json:"age,omitempty"`
	Height string `gorm:"size:20" json:"height,omitempty"`
	Weight string `gorm:"size:20" json:"weight,omitempty"`
	Gender string `gorm:"size:50" json:"gender,omitempty"`

	// Emergency contact
	EmergencyName         string `gorm:"size:255" json:"emergencyName,omitempty"`
	EmergencyPhone        string `gorm:"size:20" json:"emergencyPhone,omitempty"`
	EmergencyRelationship string `gorm:"size:100" json:"emergencyRelationship,omitempty"`

	// Medical history
	MedicalConditions string `json:"medicalConditions,omitempty"`
	Medications       string `json:"medications,omitempty"`
	InjuriesSurgeries string `json:"injuriesSurgeries,omitempty"`
	Allergies         string `json:"allergies,omitempty"`

	// Fitness background
	FitnessLevel     string         `gorm:"size:100" json:"fitnessLevel,omitempty"`
	WorkedOutBefore  string         `json:"workedOutBefore,omitempty"`
	ExerciseTypes    datatypes.JSON `gorm:"type:jsonb" json:"exerciseTypes,omitempty"`
	EquipmentAccess  string         `json:"equipmentAccess,omitempty"`

	// Goals
	PrimaryGoal    string         `json:"primaryGoal,omitempty"`
	SecondaryGoals datatypes.JSON `gorm:"type:jsonb" json:"secondaryGoals,omitempty"`
	TargetTimeline string         `gorm:"size:100" json:"targetTimeline,omitempty"`

	// Schedule preferences
	SessionsPerWeek   string `gorm:"size:50" json:"sessionsPerWeek,omitempty"`
	FavoriteExercises string `json:"favoriteExercises,omitempty"`
	ExercisesToAvoid  string `json:"exercisesToAvoid,omitempty"`
	PreferredSchedule string `json:"preferredSchedule,omitempty"`

	// Lifestyle
	DietaryRestrictions string `json:"dietaryRestrictions,omitempty"`
	ActivityLevel       string `gorm:"size:100" json:"activityLevel,omitempty"`
	SleepAverage        string `gorm:"size:20" json:"sleepAverage,omitempty"`
	DaysPerWeek         string `gorm:"size:50" json:"daysPerWeek,omitempty"`
	SessionsPerMonth    string `gorm:"size:50" json:"sessionsPerMonth,omitempty"`
}

// GetExerciseTypes decodes the JSONB exercise types into a string slice.
func (p *Profile) GetExerciseTypes() []string {
	var types []string
	if len(p.ExerciseTypes) > 0 {
		_ = json.Unmarshal(p.ExerciseTypes, &types)
	}
	return types
}

// SetExerciseTypes encodes the slice into the JSONB column.
func (p *Profile) SetExerciseTypes(types []string) {
	data, _ := json.Marshal(types)
	p.ExerciseTypes = datatypes.JSON(data)
}

// GetSecondaryGoals decodes the JSONB secondary goals into a string slice.
func (p *Profile) GetSecondaryGoals() []string {
	var goals []string
	if len(p.SecondaryGoals) > 0 {
		_ = json.Unmarshal(p.SecondaryGoals, &goals)
	}
	return goals
}

// SetSecondaryGoals encodes the slice into the JSONB column.
func (p *Profile) SetSecondaryGoals(goals []string) {
	data, _ := json.Marshal(goals)
	p.SecondaryGoals = datatypes.JSON(data)
}
