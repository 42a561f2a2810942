package middleware

import (
	"net/http"

	"github.com/smp-team-2025/smp-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// policy is the single source of truth for who may do what. Actions are
// "resource.action" keys; an action missing from the table is denied for
// everyone. Endpoints with caller-dependent semantics (own record vs. any
// record) still do their ownership check in the service.
var policy = map[string][]models.UserRole{
	"attendance.scan":      {models.RoleHiwi},
	"attendance.manual":    {models.RoleOrganizer},
	"attendance.remove":    {models.RoleOrganizer},
	"attendance.me":        {models.RoleParticipant},
	"attendance.read":      {models.RoleOrganizer, models.RoleHiwi},
	"attendance.export":    {models.RoleOrganizer},
	"attendance.import":    {models.RoleOrganizer},
	"attendance.unmatched": {models.RoleOrganizer},
	"attendance.live":      {models.RoleOrganizer},

	"diploma.issue":       {models.RoleOrganizer},
	"diploma.eligibility": {models.RoleOrganizer, models.RoleParticipant},
	"diploma.read":        {models.RoleOrganizer, models.RoleParticipant},
	"diploma.list":        {models.RoleOrganizer},
	"diploma.revoke":      {models.RoleOrganizer},

	"event.read":   {models.RoleOrganizer, models.RoleHiwi, models.RoleParticipant},
	"event.manage": {models.RoleOrganizer},

	"session.read":   {models.RoleOrganizer, models.RoleHiwi, models.RoleParticipant},
	"session.manage": {models.RoleOrganizer},

	"registration.manage": {models.RoleOrganizer},
	"students.read":       {models.RoleOrganizer},

	"hiwi.manage": {models.RoleOrganizer},
	"hiwi.status": {models.RoleHiwi},

	"quiz.manage": {models.RoleOrganizer},
	"quiz.read":   {models.RoleOrganizer, models.RoleHiwi, models.RoleParticipant},
	"quiz.submit": {models.RoleParticipant},

	"announcement.read":    {models.RoleOrganizer, models.RoleHiwi, models.RoleParticipant},
	"announcement.write":   {models.RoleOrganizer, models.RoleHiwi},
	"announcement.comment": {models.RoleOrganizer, models.RoleHiwi},

	"user.me": {models.RoleOrganizer, models.RoleHiwi, models.RoleParticipant},
}

// Require allows the request through when the caller's role is listed for
// the action. Must run after JWTAuth.
func Require(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		for _, allowed := range policy[action] {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "FORBIDDEN"})
	}
}
