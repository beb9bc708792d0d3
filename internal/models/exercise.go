// ABOUTME: Exercise catalog model with muscle group and equipment enums.
// ABOUTME: Includes the seed catalog loaded when no exercises are stored yet.
package models

import (
	"strings"

	"github.com/google/uuid"
)

// MuscleGroup is the primary muscle group an exercise trains.
// The stored value is the French label; Name gives the CLI spelling.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "Pectoraux"
	MuscleBack      MuscleGroup = "Dos"
	MuscleLegs      MuscleGroup = "Jambes"
	MuscleShoulders MuscleGroup = "Epaules"
	MuscleArms      MuscleGroup = "Bras"
	MuscleCore      MuscleGroup = "Abdos"
)

// AllMuscleGroups lists muscle groups in display order.
var AllMuscleGroups = []MuscleGroup{
	MuscleChest, MuscleBack, MuscleLegs, MuscleShoulders, MuscleArms, MuscleCore,
}

var muscleGroupNames = map[MuscleGroup]string{
	MuscleChest:     "chest",
	MuscleBack:      "back",
	MuscleLegs:      "legs",
	MuscleShoulders: "shoulders",
	MuscleArms:      "arms",
	MuscleCore:      "core",
}

// Name returns the lowercase English name used on the command line.
func (m MuscleGroup) Name() string {
	if n, ok := muscleGroupNames[m]; ok {
		return n
	}
	return string(m)
}

// ParseMuscleGroup accepts either the English name or the stored label.
func ParseMuscleGroup(s string) (MuscleGroup, bool) {
	for _, mg := range AllMuscleGroups {
		if strings.EqualFold(s, mg.Name()) || strings.EqualFold(s, string(mg)) {
			return mg, true
		}
	}
	return "", false
}

// Equipment is the implement an exercise is performed with.
type Equipment string

const (
	EquipmentBarbell  Equipment = "Barre"
	EquipmentDumbbell Equipment = "Haltère"
	EquipmentMachine  Equipment = "Machine"
)

// AllEquipment lists equipment kinds in display order.
var AllEquipment = []Equipment{EquipmentBarbell, EquipmentDumbbell, EquipmentMachine}

var equipmentNames = map[Equipment]string{
	EquipmentBarbell:  "barbell",
	EquipmentDumbbell: "dumbbell",
	EquipmentMachine:  "machine",
}

// Name returns the lowercase English name used on the command line.
func (e Equipment) Name() string {
	if n, ok := equipmentNames[e]; ok {
		return n
	}
	return string(e)
}

// ParseEquipment accepts either the English name or the stored label.
func ParseEquipment(s string) (Equipment, bool) {
	for _, eq := range AllEquipment {
		if strings.EqualFold(s, eq.Name()) || strings.EqualFold(s, string(eq)) {
			return eq, true
		}
	}
	return "", false
}

// Exercise is a movement in the catalog.
type Exercise struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	MuscleGroup MuscleGroup `json:"muscleGroup" yaml:"muscle_group"`
	Equipment   Equipment   `json:"equipment" yaml:"equipment"`
	IsCustom    bool        `json:"isCustom,omitempty" yaml:"is_custom,omitempty"`
	IsArchived  bool        `json:"isArchived,omitempty" yaml:"is_archived,omitempty"`
}

// NewCustomExercise creates a user-defined exercise with a fresh identifier.
func NewCustomExercise(name string, mg MuscleGroup, eq Equipment) *Exercise {
	return &Exercise{
		ID:          NewID(CustomExercisePrefix),
		Name:        name,
		MuscleGroup: mg,
		Equipment:   eq,
		IsCustom:    true,
	}
}

// PlaceholderExerciseID marks a freestyle slot whose exercise is not chosen yet.
const PlaceholderExerciseID = "placeholder"

// UnknownExerciseLabel is shown for references that no longer resolve.
const UnknownExerciseLabel = "Unknown exercise"

// Identifier prefixes.
const (
	CustomExercisePrefix = "ex_custom_"
	TemplatePrefix       = "template_"
	SessionPrefix        = "session_"
)

// NewID returns a collision-resistant identifier with the given prefix.
func NewID(prefix string) string {
	return prefix + uuid.NewString()
}

// DefaultExercises returns the seed catalog.
func DefaultExercises() []Exercise {
	return []Exercise{
		{ID: "ex1", Name: "Développé couché", MuscleGroup: MuscleChest, Equipment: EquipmentBarbell},
		{ID: "ex2", Name: "Squat", MuscleGroup: MuscleLegs, Equipment: EquipmentBarbell},
		{ID: "ex3", Name: "Soulevé de terre", MuscleGroup: MuscleBack, Equipment: EquipmentBarbell},
		{ID: "ex4", Name: "Développé militaire", MuscleGroup: MuscleShoulders, Equipment: EquipmentBarbell},
		{ID: "ex5", Name: "Curl Biceps", MuscleGroup: MuscleArms, Equipment: EquipmentDumbbell},
		{ID: "ex6", Name: "Planche", MuscleGroup: MuscleCore, Equipment: EquipmentMachine},
		{ID: "ex7", Name: "Tractions", MuscleGroup: MuscleBack, Equipment: EquipmentMachine},
		{ID: "ex8", Name: "Presse à cuisses", MuscleGroup: MuscleLegs, Equipment: EquipmentMachine},
		{ID: "ex9", Name: "Écarté avec haltères", MuscleGroup: MuscleChest, Equipment: EquipmentDumbbell},
		{ID: "ex10", Name: "Extension Triceps", MuscleGroup: MuscleArms, Equipment: EquipmentMachine},
	}
}
