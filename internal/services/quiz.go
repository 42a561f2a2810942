package services

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/smp-team-2025/smp-backend/internal/models"

	"gorm.io/gorm"
)

const (
	// A quiz always runs with exactly this many questions and answers.
	fermiQuizSize = 10
	// Missing or wildly-off answers score the maximum penalty.
	fermiMaxPenalty = 8.0
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

func (s *QuizService) ListQuestions() ([]models.FermiQuestion, error) {
	var questions []models.FermiQuestion
	err := s.db.Order("id ASC").Find(&questions).Error
	return questions, err
}

func (s *QuizService) CreateQuestion(text string, correct, correct2 *float64) (*models.FermiQuestion, error) {
	question := models.FermiQuestion{
		Text:           text,
		CorrectAnswer:  correct,
		CorrectAnswer2: correct2,
	}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuizService) UpdateQuestion(id uint, text string, correct, correct2 *float64) (*models.FermiQuestion, error) {
	var question models.FermiQuestion
	if err := s.db.First(&question, id).Error; err != nil {
		return nil, ErrQuestionNotFound
	}

	question.Text = text
	question.CorrectAnswer = correct
	question.CorrectAnswer2 = correct2
	if err := s.db.Save(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuizService) DeleteQuestion(id uint) error {
	res := s.db.Delete(&models.FermiQuestion{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

// CreateQuiz attaches a quiz of exactly ten questions to a session; a
// session never has more than one quiz.
func (s *QuizService) CreateQuiz(sessionID uint, questionIDs []uint) (*models.FermiQuiz, error) {
	if len(questionIDs) != fermiQuizSize {
		return nil, ErrWrongQuestionCount
	}

	if err := s.db.First(&models.Session{}, sessionID).Error; err != nil {
		return nil, ErrSessionNotFound
	}

	quiz := models.FermiQuiz{SessionID: sessionID}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}
		for i, questionID := range questionIDs {
			link := models.FermiQuizQuestion{
				QuizID:     quiz.ID,
				QuestionID: questionID,
				Order:      i + 1,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrQuizAlreadyExists
		}
		return nil, err
	}

	return s.getQuiz(quiz.ID)
}

// UpdateQuiz replaces the question set of an existing quiz.
func (s *QuizService) UpdateQuiz(quizID uint, questionIDs []uint) (*models.FermiQuiz, error) {
	if len(questionIDs) != fermiQuizSize {
		return nil, ErrWrongQuestionCount
	}

	if err := s.db.First(&models.FermiQuiz{}, quizID).Error; err != nil {
		return nil, ErrQuizNotFound
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.FermiQuizQuestion{}).Error; err != nil {
			return err
		}
		for i, questionID := range questionIDs {
			link := models.FermiQuizQuestion{
				QuizID:     quizID,
				QuestionID: questionID,
				Order:      i + 1,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.getQuiz(quizID)
}

func (s *QuizService) DeleteQuiz(quizID uint) error {
	res := s.db.Delete(&models.FermiQuiz{}, quizID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQuizNotFound
	}
	return nil
}

func (s *QuizService) GetBySession(sessionID uint) (*models.FermiQuiz, error) {
	var quiz models.FermiQuiz
	if err := s.db.Where("session_id = ?", sessionID).First(&quiz).Error; err != nil {
		return nil, ErrQuizNotFound
	}
	return s.getQuiz(quiz.ID)
}

func (s *QuizService) getQuiz(quizID uint) (*models.FermiQuiz, error) {
	var quiz models.FermiQuiz
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Question").
		First(&quiz, quizID).Error
	if err != nil {
		return nil, ErrQuizNotFound
	}
	return &quiz, nil
}

type FermiAnswerInput struct {
	QuestionID uint    `json:"question_id" binding:"required"`
	Answer     float64 `json:"answer"`
}

// Submit records a participant's one response to a quiz. Responses are
// immutable; the unique (participant, quiz) index rejects a second attempt.
func (s *QuizService) Submit(participantID, quizID uint, answers []FermiAnswerInput) (*models.FermiResponse, error) {
	if len(answers) != fermiQuizSize {
		return nil, ErrWrongAnswerCount
	}

	var participant models.User
	err := s.db.First(&participant, participantID).Error
	if err != nil || !participant.IsParticipant() {
		return nil, ErrInvalidParticipant
	}

	if err := s.db.First(&models.FermiQuiz{}, quizID).Error; err != nil {
		return nil, ErrQuizNotFound
	}

	response := models.FermiResponse{
		ParticipantID: participantID,
		QuizID:        quizID,
		SubmittedAt:   time.Now(),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&response).Error; err != nil {
			return err
		}
		for _, a := range answers {
			answer := models.FermiAnswer{
				ResponseID: response.ID,
				QuestionID: a.QuestionID,
				Answer:     a.Answer,
			}
			if err := tx.Create(&answer).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySubmitted
		}
		return nil, err
	}
	return &response, nil
}

func (s *QuizService) Results(quizID uint) (*models.FermiQuiz, error) {
	var quiz models.FermiQuiz
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Question").
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("submitted_at ASC")
		}).
		Preload("Responses.Participant").
		Preload("Responses.Answers").
		First(&quiz, quizID).Error
	if err != nil {
		return nil, ErrQuizNotFound
	}
	return &quiz, nil
}

type QuestionStatistics struct {
	QuestionID    uint     `json:"question_id"`
	QuestionText  string   `json:"question_text"`
	CorrectAnswer *float64 `json:"correct_answer,omitempty"`
	Count         int      `json:"count"`
	Mean          *float64 `json:"mean,omitempty"`
	Median        *float64 `json:"median,omitempty"`
	Min           *float64 `json:"min,omitempty"`
	Max           *float64 `json:"max,omitempty"`
}

// Statistics aggregates the submitted answers per question.
func (s *QuizService) Statistics(quizID uint) ([]QuestionStatistics, error) {
	quiz, err := s.Results(quizID)
	if err != nil {
		return nil, err
	}

	answersByQuestion := make(map[uint][]float64)
	for _, response := range quiz.Responses {
		for _, a := range response.Answers {
			answersByQuestion[a.QuestionID] = append(answersByQuestion[a.QuestionID], a.Answer)
		}
	}

	stats := make([]QuestionStatistics, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		entry := QuestionStatistics{
			QuestionID:    q.QuestionID,
			QuestionText:  q.Question.Text,
			CorrectAnswer: q.Question.CorrectAnswer,
		}

		answers := answersByQuestion[q.QuestionID]
		if len(answers) > 0 {
			sorted := append([]float64(nil), answers...)
			sort.Float64s(sorted)

			sum := 0.0
			for _, v := range sorted {
				sum += v
			}
			mean := sum / float64(len(sorted))

			var median float64
			if len(sorted)%2 == 0 {
				median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
			} else {
				median = sorted[len(sorted)/2]
			}

			entry.Count = len(sorted)
			entry.Mean = &mean
			entry.Median = &median
			entry.Min = &sorted[0]
			entry.Max = &sorted[len(sorted)-1]
		}
		stats = append(stats, entry)
	}
	return stats, nil
}

type LeaderboardQuestionScore struct {
	QuestionID uint     `json:"question_id"`
	Answer     *float64 `json:"answer"`
	Score      float64  `json:"score"`
}

type LeaderboardEntry struct {
	Rank             int                        `json:"rank"`
	ParticipantID    uint                       `json:"participant_id"`
	ParticipantName  string                     `json:"participant_name"`
	ParticipantEmail string                     `json:"participant_email"`
	TotalScore       float64                    `json:"total_score"`
	QuestionScores   []LeaderboardQuestionScore `json:"question_scores"`
	SubmittedAt      time.Time                  `json:"submitted_at"`
}

// Leaderboard scores each response: per question the distance to the closer
// of the accepted answers, capped at the maximum penalty; missing answers
// take the full penalty. Lower totals rank higher.
func (s *QuizService) Leaderboard(quizID uint) ([]LeaderboardEntry, error) {
	quiz, err := s.Results(quizID)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(quiz.Responses))
	for _, response := range quiz.Responses {
		answerByQuestion := make(map[uint]float64, len(response.Answers))
		for _, a := range response.Answers {
			answerByQuestion[a.QuestionID] = a.Answer
		}

		entry := LeaderboardEntry{
			ParticipantID:    response.ParticipantID,
			ParticipantName:  response.Participant.Name,
			ParticipantEmail: response.Participant.Email,
			SubmittedAt:      response.SubmittedAt,
		}

		for _, q := range quiz.Questions {
			answer, answered := answerByQuestion[q.QuestionID]
			if !answered {
				entry.QuestionScores = append(entry.QuestionScores, LeaderboardQuestionScore{
					QuestionID: q.QuestionID,
					Score:      fermiMaxPenalty,
				})
				entry.TotalScore += fermiMaxPenalty
				continue
			}

			score := 0.0
			if q.Question.CorrectAnswer != nil {
				score = math.Abs(answer - *q.Question.CorrectAnswer)
				if q.Question.CorrectAnswer2 != nil {
					score = math.Min(score, math.Abs(answer-*q.Question.CorrectAnswer2))
				}
			}
			score = math.Min(score, fermiMaxPenalty)

			answerCopy := answer
			entry.QuestionScores = append(entry.QuestionScores, LeaderboardQuestionScore{
				QuestionID: q.QuestionID,
				Answer:     &answerCopy,
				Score:      score,
			})
			entry.TotalScore += score
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalScore < entries[j].TotalScore
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
