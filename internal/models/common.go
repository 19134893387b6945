package models

// DifficultyLevel is the categorical difficulty shared by all skill-module tests.
type DifficultyLevel string

const (
	DifficultyEasy         DifficultyLevel = "Easy"
	DifficultyIntermediate DifficultyLevel = "Intermediate"
	DifficultyHard         DifficultyLevel = "Hard"
)

// SkillModule names one of the four independent content modules.
type SkillModule string

const (
	ModuleSpeaking  SkillModule = "speaking"
	ModuleReading   SkillModule = "reading"
	ModuleWriting   SkillModule = "writing"
	ModuleListening SkillModule = "listening"
)
