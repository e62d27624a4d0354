package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"habit-tracker/internal/model"
	"habit-tracker/internal/service"
)

// habitResponse is the wire shape of a habit. The completion history is
// projected back into the two legacy collections the clients expect: plain
// completedDates and commented completions. time.Time marshals as RFC3339,
// which round-trips instants with their offset.
type habitResponse struct {
	ID             uint                 `json:"id"`
	Name           string               `json:"name"`
	Frequency      model.Frequency      `json:"frequency"`
	Importance     int                  `json:"importance"`
	AllowComments  bool                 `json:"allowComments"`
	Archived       bool                 `json:"archived"`
	Completed      bool                 `json:"completed"`
	LastCompleted  *time.Time           `json:"lastCompleted,omitempty"`
	CompletedDates []time.Time          `json:"completedDates"`
	Completions    []completionResponse `json:"completions"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

type completionResponse struct {
	Date    time.Time `json:"date"`
	Comment string    `json:"comment"`
}

func toHabitResponse(h *model.Habit, status service.HabitStatus) habitResponse {
	dates, commented := model.SplitHistory(h.Completions)
	resp := habitResponse{
		ID:             h.ID,
		Name:           h.Name,
		Frequency:      h.Frequency,
		Importance:     h.Importance,
		AllowComments:  h.AllowComments,
		Archived:       h.Archived,
		Completed:      status.Completed,
		LastCompleted:  status.LastCompleted,
		CompletedDates: make([]time.Time, 0, len(dates)),
		Completions:    make([]completionResponse, 0, len(commented)),
		CreatedAt:      h.CreatedAt,
		UpdatedAt:      h.UpdatedAt,
	}
	resp.CompletedDates = append(resp.CompletedDates, dates...)
	for _, c := range commented {
		resp.Completions = append(resp.Completions, completionResponse{Date: c.Date, Comment: c.Comment})
	}
	return resp
}

// statusQuery reads the optional reference instant and zone read endpoints
// evaluate completion against; the instant defaults to the server clock.
func statusQuery(c *gin.Context) (time.Time, string, bool) {
	reference := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid date, expected RFC3339"})
			return time.Time{}, "", false
		}
		reference = parsed
	}
	return reference, c.Query("timezone"), true
}

func (s *Server) respondHabit(c *gin.Context, status int, habit *model.Habit, reference time.Time, timeZone string) {
	evaluated, err := s.habits.Evaluate(habit, reference, timeZone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, toHabitResponse(habit, evaluated))
}

type createHabitRequest struct {
	Name          string `json:"name"`
	Frequency     string `json:"frequency"`
	Importance    int    `json:"importance"`
	AllowComments bool   `json:"allowComments"`
}

func (s *Server) handleCreateHabit(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	habit, err := s.habits.Create(c.Request.Context(), caller(c), service.HabitInput{
		Name:          req.Name,
		Frequency:     model.Frequency(req.Frequency),
		Importance:    req.Importance,
		AllowComments: req.AllowComments,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondHabit(c, http.StatusCreated, habit, time.Now(), "")
}

func (s *Server) handleListHabits(c *gin.Context) {
	reference, timeZone, ok := statusQuery(c)
	if !ok {
		return
	}

	habits, err := s.habits.List(c.Request.Context(), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]habitResponse, 0, len(habits))
	for i := range habits {
		status, err := s.habits.Evaluate(&habits[i], reference, timeZone)
		if err != nil {
			respondError(c, err)
			return
		}
		resp = append(resp, toHabitResponse(&habits[i], status))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetHabit(c *gin.Context) {
	id, ok := habitID(c)
	if !ok {
		return
	}
	reference, timeZone, ok := statusQuery(c)
	if !ok {
		return
	}
	habit, err := s.habits.Get(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondHabit(c, http.StatusOK, habit, reference, timeZone)
}

// handleCalendar returns the days of a civil month that have any recorded
// completion, for the calendar view.
func (s *Server) handleCalendar(c *gin.Context) {
	id, ok := habitID(c)
	if !ok {
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid month"})
		return
	}

	days, err := s.habits.CompletedDays(c.Request.Context(), caller(c), id, year, time.Month(month), c.Query("timezone"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "month": month, "days": days})
}

type toggleRequest struct {
	Date     time.Time `json:"date" binding:"required"`
	Comment  string    `json:"comment"`
	TimeZone string    `json:"timezone"`
}

func (s *Server) handleToggleHabit(c *gin.Context) {
	id, ok := habitID(c)
	if !ok {
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: date is required"})
		return
	}

	habit, action, err := s.habits.Toggle(c.Request.Context(), caller(c), id, service.ToggleInput{
		Date:     req.Date,
		Comment:  req.Comment,
		TimeZone: req.TimeZone,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	status, err := s.habits.Evaluate(habit, req.Date, req.TimeZone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"action": action, "habit": toHabitResponse(habit, status)})
}

func (s *Server) handleToggleArchive(c *gin.Context) {
	id, ok := habitID(c)
	if !ok {
		return
	}
	habit, err := s.habits.ToggleArchive(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondHabit(c, http.StatusOK, habit, time.Now(), "")
}

type editHabitRequest struct {
	Name          *string `json:"name"`
	Importance    *int    `json:"importance"`
	AllowComments *bool   `json:"allowComments"`
}

func (s *Server) handleEditHabit(c *gin.Context) {
	id, ok := habitID(c)
	if !ok {
		return
	}

	var req editHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	habit, err := s.habits.Edit(c.Request.Context(), caller(c), id, service.HabitUpdate{
		Name:          req.Name,
		Importance:    req.Importance,
		AllowComments: req.AllowComments,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	s.respondHabit(c, http.StatusOK, habit, time.Now(), "")
}

func (s *Server) handleDeleteHabit(c *gin.Context) {
	id, ok := habitID(c)
	if !ok {
		return
	}
	if err := s.habits.Delete(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func habitID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid habit id"})
		return 0, false
	}
	return uint(id), true
}
