package models

import "time"

// FermiQuestion is a bank question reusable across quizzes. A question may
// carry a second accepted answer; scoring takes the closer one.
type FermiQuestion struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Text           string    `gorm:"type:text;not null" json:"text"`
	CorrectAnswer  *float64  `json:"correct_answer,omitempty"`
	CorrectAnswer2 *float64  `json:"correct_answer2,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// FermiQuiz: at most one per session.
type FermiQuiz struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID uint      `gorm:"not null;uniqueIndex" json:"session_id"`
	CreatedAt time.Time `json:"created_at"`

	Session   Session             `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
	Questions []FermiQuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Responses []FermiResponse     `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"responses,omitempty"`
}

type FermiQuizQuestion struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	QuizID     uint `gorm:"not null;uniqueIndex:idx_fermi_quiz_question" json:"quiz_id"`
	QuestionID uint `gorm:"not null;uniqueIndex:idx_fermi_quiz_question" json:"question_id"`
	Order      int  `gorm:"column:order_num;not null" json:"order"`

	Question FermiQuestion `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

// FermiResponse: immutable once created, one per (participant, quiz).
type FermiResponse struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ParticipantID uint      `gorm:"not null;uniqueIndex:idx_fermi_response_pair" json:"participant_id"`
	QuizID        uint      `gorm:"not null;uniqueIndex:idx_fermi_response_pair" json:"quiz_id"`
	SubmittedAt   time.Time `gorm:"not null" json:"submitted_at"`

	Participant User          `gorm:"foreignKey:ParticipantID" json:"participant,omitempty"`
	Answers     []FermiAnswer `gorm:"foreignKey:ResponseID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

type FermiAnswer struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	ResponseID uint    `gorm:"not null;uniqueIndex:idx_fermi_answer" json:"response_id"`
	QuestionID uint    `gorm:"not null;uniqueIndex:idx_fermi_answer" json:"question_id"`
	Answer     float64 `gorm:"not null" json:"answer"`
}
