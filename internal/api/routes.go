package api

import (
	"net/http"

	"alcyxob/fitness-schedule/internal/domain"
	"alcyxob/fitness-schedule/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	scheduleService service.ScheduleService,
	workoutService service.WorkoutService,
	classService service.ClassService,
) {
	authHandler := NewAuthHandler(authService)
	scheduleHandler := NewScheduleHandler(scheduleService)
	workoutHandler := NewWorkoutHandler(workoutService)
	classHandler := NewClassHandler(classService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userID.String(), "role": role})
		})

		// --- Schedule (calendar grid + assignment) Routes ---
		scheduleGroup := protected.Group("/schedule")
		{
			// GET /api/v1/schedule/2025/5 - the month day-grid
			scheduleGroup.GET("/:year/:month", scheduleHandler.GetMonthGrid)

			// Mutations are keyed by date; after a success the client
			// re-fetches the grid.
			scheduleGroup.POST("/:date/workout", scheduleHandler.AssignWorkout)
			scheduleGroup.PUT("/:date/workout", scheduleHandler.ReplaceWorkout)
			scheduleGroup.DELETE("/:date/workout", scheduleHandler.RemoveWorkout)
			scheduleGroup.POST("/:date/workout/complete", scheduleHandler.CompleteWorkout)

			scheduleGroup.POST("/:date/class", scheduleHandler.AssignClass)
			scheduleGroup.PUT("/:date/class", scheduleHandler.ReplaceClass)
			scheduleGroup.DELETE("/:date/class", scheduleHandler.RemoveClass)
		}

		// --- Workout Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			// Reads are open to any authenticated user; members browse the
			// library when picking what to schedule.
			workoutGroup.GET("", workoutHandler.GetTrainerWorkouts)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.GET("/:id/media-url", workoutHandler.GetMediaDownloadURL)

			workoutGroup.POST("", RoleMiddleware(domain.RoleTrainer), workoutHandler.CreateWorkout)
			workoutGroup.PUT("/:id", RoleMiddleware(domain.RoleTrainer), workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", RoleMiddleware(domain.RoleTrainer), workoutHandler.DeleteWorkout)
			workoutGroup.POST("/:id/media-url", RoleMiddleware(domain.RoleTrainer), workoutHandler.RequestMediaUploadURL)
			workoutGroup.POST("/:id/media-confirm", RoleMiddleware(domain.RoleTrainer), workoutHandler.ConfirmMediaUpload)
		}

		// --- Class Routes ---
		classGroup := protected.Group("/classes")
		{
			classGroup.GET("", classHandler.GetTrainerClasses)
			classGroup.GET("/:id", classHandler.GetClass)

			classGroup.POST("", RoleMiddleware(domain.RoleTrainer), classHandler.CreateClass)
			classGroup.PUT("/:id", RoleMiddleware(domain.RoleTrainer), classHandler.UpdateClass)
			classGroup.DELETE("/:id", RoleMiddleware(domain.RoleTrainer), classHandler.DeleteClass)
		}
	}
}
