package handlers

import (
	"net/http"

	"github.com/smp-team-2025/smp-backend/internal/middleware"
	"github.com/smp-team-2025/smp-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

type QuestionRequest struct {
	Text           string   `json:"text" binding:"required"`
	CorrectAnswer  *float64 `json:"correct_answer"`
	CorrectAnswer2 *float64 `json:"correct_answer_2"`
}

// ListQuestions godoc
// @Summary      Question pool
// @Tags         quiz
// @Produce      json
// @Success      200 {array} models.FermiQuestion
// @Security     BearerAuth
// @Router       /api/fermi/questions [get]
func (h *QuizHandler) ListQuestions(c *gin.Context) {
	questions, err := h.quizService.ListQuestions()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// CreateQuestion godoc
// @Summary      Add a question to the pool
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        request body QuestionRequest true "Question data"
// @Success      201 {object} models.FermiQuestion
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/fermi/questions [post]
func (h *QuizHandler) CreateQuestion(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.quizService.CreateQuestion(req.Text, req.CorrectAnswer, req.CorrectAnswer2)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion godoc
// @Summary      Update a pool question
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        id path int true "Question ID"
// @Param        request body QuestionRequest true "Question data"
// @Success      200 {object} models.FermiQuestion
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/fermi/questions/{id} [put]
func (h *QuizHandler) UpdateQuestion(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.quizService.UpdateQuestion(id, req.Text, req.CorrectAnswer, req.CorrectAnswer2)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary      Remove a pool question
// @Tags         quiz
// @Produce      json
// @Param        id path int true "Question ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/fermi/questions/{id} [delete]
func (h *QuizHandler) DeleteQuestion(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.quizService.DeleteQuestion(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "question deleted"})
}

type QuizRequest struct {
	SessionID   uint   `json:"session_id" binding:"required"`
	QuestionIDs []uint `json:"question_ids" binding:"required"`
}

// CreateQuiz godoc
// @Summary      Attach a quiz to a session
// @Description  Exactly ten questions, one quiz per session
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        request body QuizRequest true "Session and question set"
// @Success      201 {object} models.FermiQuiz
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/fermi/quizzes [post]
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.CreateQuiz(req.SessionID, req.QuestionIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

type QuizUpdateRequest struct {
	QuestionIDs []uint `json:"question_ids" binding:"required"`
}

// UpdateQuiz godoc
// @Summary      Replace the question set of a quiz
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Param        request body QuizUpdateRequest true "New question set"
// @Success      200 {object} models.FermiQuiz
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/fermi/quizzes/{id} [put]
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req QuizUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.UpdateQuiz(id, req.QuestionIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// DeleteQuiz godoc
// @Summary      Delete a quiz
// @Tags         quiz
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/fermi/quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.quizService.DeleteQuiz(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "quiz deleted"})
}

// GetBySession godoc
// @Summary      Quiz of a session, with its ordered questions
// @Tags         quiz
// @Produce      json
// @Param        sessionId path int true "Session ID"
// @Success      200 {object} models.FermiQuiz
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/fermi/quizzes/session/{sessionId} [get]
func (h *QuizHandler) GetBySession(c *gin.Context) {
	sessionID, ok := paramUint(c, "sessionId")
	if !ok {
		return
	}

	quiz, err := h.quizService.GetBySession(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

type SubmitRequest struct {
	Answers []services.FermiAnswerInput `json:"answers" binding:"required,dive"`
}

// Submit godoc
// @Summary      Submit own answers to a quiz
// @Description  Exactly ten answers, one submission per participant
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Param        request body SubmitRequest true "Answers"
// @Success      201 {object} models.FermiResponse
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/fermi/quizzes/{id}/submit [post]
func (h *QuizHandler) Submit(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	response, err := h.quizService.Submit(middleware.UserID(c), id, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// Results godoc
// @Summary      Raw responses of a quiz
// @Tags         quiz
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Success      200 {object} models.FermiQuiz
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/fermi/quizzes/{id}/results [get]
func (h *QuizHandler) Results(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	quiz, err := h.quizService.Results(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// Statistics godoc
// @Summary      Per-question answer statistics
// @Tags         quiz
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Success      200 {array} services.QuestionStatistics
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/fermi/quizzes/{id}/statistics [get]
func (h *QuizHandler) Statistics(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	stats, err := h.quizService.Statistics(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Leaderboard godoc
// @Summary      Ranked leaderboard of a quiz
// @Description  Lower total distance is better
// @Tags         quiz
// @Produce      json
// @Param        id path int true "Quiz ID"
// @Success      200 {array} services.LeaderboardEntry
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/fermi/quizzes/{id}/leaderboard [get]
func (h *QuizHandler) Leaderboard(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	entries, err := h.quizService.Leaderboard(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
