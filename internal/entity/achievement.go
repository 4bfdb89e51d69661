package entity

import "time"

type Achievement struct {
	ID                     int       `json:"id"`
	StudentID              string    `json:"student_id"`
	TeacherID              string    `json:"teacher_id"`
	AchievementType        string    `json:"achievement_type"`
	EventName              string    `json:"event_name"`
	AchievementDate        time.Time `json:"achievement_date"`
	Organizer              string    `json:"organizer"`
	Position               string    `json:"position"`
	AchievementDescription string    `json:"achievement_description,omitempty"`
	CertificatePath        *string   `json:"certificate_path,omitempty"`
	SymposiumTheme         string    `json:"symposium_theme,omitempty"`
	ProgrammingLanguage    string    `json:"programming_language,omitempty"`
	CodingPlatform         string    `json:"coding_platform,omitempty"`
	PaperTitle             string    `json:"paper_title,omitempty"`
	JournalName            string    `json:"journal_name,omitempty"`
	ConferenceLevel        string    `json:"conference_level,omitempty"`
	ConferenceRole         string    `json:"conference_role,omitempty"`
	TeamSize               *int      `json:"team_size,omitempty"`
	ProjectTitle           string    `json:"project_title,omitempty"`
	DatabaseType           string    `json:"database_type,omitempty"`
	DifficultyLevel        string    `json:"difficulty_level,omitempty"`
	OtherDescription       string    `json:"other_description,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
}
