package repositories

import (
	"encoding/json"
	"errors"
	"time"

	"fitcoach_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
)

// ProfilePatch is the partial-update shape of the intake profile: every
// field optional, only non-nil fields are written.
type ProfilePatch struct {
	Age    *string `json:"age"`
	Height *string `json:"height"`
	Weight *string `json:"weight"`
	Gender *string `json:"gender"`

	EmergencyName         *string `json:"emergencyName"`
	EmergencyPhone        *string `json:"emergencyPhone"`
	EmergencyRelationship *string `json:"emergencyRelationship"`

	MedicalConditions *string `json:"medicalConditions"`
	Medications       *string `json:"medications"`
	InjuriesSurgeries *string `json:"injuriesSurgeries"`
	Allergies         *string `json:"allergies"`

	FitnessLevel    *string   `json:"fitnessLevel"`
	WorkedOutBefore *string   `json:"workedOutBefore"`
	ExerciseTypes   *[]string `json:"exerciseTypes"`
	EquipmentAccess *string   `json:"equipmentAccess"`

	PrimaryGoal    *string   `json:"primaryGoal"`
	SecondaryGoals *[]string `json:"secondaryGoals"`
	TargetTimeline *string   `json:"targetTimeline"`

	SessionsPerWeek   *string `json:"sessionsPerWeek"`
	FavoriteExercises *string `json:"favoriteExercises"`
	ExercisesToAvoid  *string `json:"exercisesToAvoid"`
	PreferredSchedule *string `json:"preferredSchedule"`

	DietaryRestrictions *string `json:"dietaryRestrictions"`
	ActivityLevel       *string `json:"activityLevel"`
	SleepAverage        *string `json:"sleepAverage"`
	DaysPerWeek         *string `json:"daysPerWeek"`
	SessionsPerMonth    *string `json:"sessionsPerMonth"`
}

// Fields translates present keys into an update column map. List-shaped
// fields encode to JSONB.
func (p ProfilePatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}

	set := func(column string, value *string) {
		if value != nil {
			fields[column] = *value
		}
	}

	set("age", p.Age)
	set("height", p.Height)
	set("weight", p.Weight)
	set("gender", p.Gender)
	set("emergency_name", p.EmergencyName)
	set("emergency_phone", p.EmergencyPhone)
	set("emergency_relationship", p.EmergencyRelationship)
	set("medical_conditions", p.MedicalConditions)
	set("medications", p.Medications)
	set("injuries_surgeries", p.InjuriesSurgeries)
	set("allergies", p.Allergies)
	set("fitness_level", p.FitnessLevel)
	set("worked_out_before", p.WorkedOutBefore)
	set("equipment_access", p.EquipmentAccess)
	set("primary_goal", p.PrimaryGoal)
	set("target_timeline", p.TargetTimeline)
	set("sessions_per_week", p.SessionsPerWeek)
	set("favorite_exercises", p.FavoriteExercises)
	set("exercises_to_avoid", p.ExercisesToAvoid)
	set("preferred_schedule", p.PreferredSchedule)
	set("dietary_restrictions", p.DietaryRestrictions)
	set("activity_level", p.ActivityLevel)
	set("sleep_average", p.SleepAverage)
	set("days_per_week", p.DaysPerWeek)
	set("sessions_per_month", p.SessionsPerMonth)

	if p.ExerciseTypes != nil {
		data, _ := json.Marshal(*p.ExerciseTypes)
		fields["exercise_types"] = datatypes.JSON(data)
	}
	if p.SecondaryGoals != nil {
		data, _ := json.Marshal(*p.SecondaryGoals)
		fields["secondary_goals"] = datatypes.JSON(data)
	}

	return fields
}

// Apply writes the patch onto an in-memory profile. Used by the repository
// after a successful update and by tests.
func (p ProfilePatch) Apply(profile *models.Profile) {
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	apply(&profile.Age, p.Age)
	apply(&profile.Height, p.Height)
	apply(&profile.Weight, p.Weight)
	apply(&profile.Gender, p.Gender)
	apply(&profile.EmergencyName, p.EmergencyName)
	apply(&profile.EmergencyPhone, p.EmergencyPhone)
	apply(&profile.EmergencyRelationship, p.EmergencyRelationship)
	apply(&profile.MedicalConditions, p.MedicalConditions)
	apply(&profile.Medications, p.Medications)
	apply(&profile.InjuriesSurgeries, p.InjuriesSurgeries)
	apply(&profile.Allergies, p.Allergies)
	apply(&profile.FitnessLevel, p.FitnessLevel)
	apply(&profile.WorkedOutBefore, p.WorkedOutBefore)
	apply(&profile.EquipmentAccess, p.EquipmentAccess)
	apply(&profile.PrimaryGoal, p.PrimaryGoal)
	apply(&profile.TargetTimeline, p.TargetTimeline)
	apply(&profile.SessionsPerWeek, p.SessionsPerWeek)
	apply(&profile.FavoriteExercises, p.FavoriteExercises)
	apply(&profile.ExercisesToAvoid, p.ExercisesToAvoid)
	apply(&profile.PreferredSchedule, p.PreferredSchedule)
	apply(&profile.DietaryRestrictions, p.DietaryRestrictions)
	apply(&profile.ActivityLevel, p.ActivityLevel)
	apply(&profile.SleepAverage, p.SleepAverage)
	apply(&profile.DaysPerWeek, p.DaysPerWeek)
	apply(&profile.SessionsPerMonth, p.SessionsPerMonth)

	if p.ExerciseTypes != nil {
		profile.SetExerciseTypes(*p.ExerciseTypes)
	}
	if p.SecondaryGoals != nil {
		profile.SetSecondaryGoals(*p.SecondaryGoals)
	}
}

type ProfileRepository interface {
	Create(profile *models.Profile) error
	FindByUserID(userID string) (*models.Profile, error)
	Update(userID string, patch ProfilePatch) (*models.Profile, error)
	DeleteByUserID(userID string) error
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) Create(profile *models.Profile) error {
	var existing models.Profile
	if err := r.db.Where("user_id = ?", profile.UserID).First(&existing).Error; err == nil {
		return ErrProfileAlreadyExists
	}

	return r.db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindByUserID(userID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Update applies a partial merge. An empty patch returns the profile
// unchanged.
func (r *ProfileRepositoryImpl) Update(userID string, patch ProfilePatch) (*models.Profile, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		return r.FindByUserID(userID)
	}
	fields["updated_at"] = time.Now()

	result := r.db.Model(&models.Profile{}).Where("user_id = ?", userID).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrProfileNotFound
	}

	return r.FindByUserID(userID)
}

func (r *ProfileRepositoryImpl) DeleteByUserID(userID string) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.Profile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
