package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jubilut/academia/internal/app/controllers"
	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl *controllers.Controllers, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	// --- Public routes ---
	api.POST("/login", ctrl.Auth.Login)

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/logout", ctrl.Auth.Logout)
		authenticated.GET("/me", ctrl.Auth.Me)
	}

	// --- Admin routes ---
	admin := authenticated.Group("/admin")
	admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		students := admin.Group("/students")
		{
			students.GET("", ctrl.Student.ListStudents)
			students.POST("", ctrl.Student.CreateStudent)
			students.GET("/:id", ctrl.Student.GetStudent)
			students.PUT("/:id", ctrl.Student.UpdateStudent)
			students.DELETE("/:id", ctrl.Student.DeleteStudent)

			students.GET("/:id/courses", ctrl.Enrollment.GetStudentCourses)
			students.POST("/:id/courses", ctrl.Enrollment.EnrollStudent)
			students.DELETE("/:id/courses/:course", ctrl.Enrollment.UnenrollStudent)
		}

		professors := admin.Group("/professors")
		{
			professors.GET("", ctrl.Professor.GetAllProfessors)
			professors.POST("", ctrl.Professor.CreateProfessor)
			professors.GET("/:id", ctrl.Professor.GetProfessorByID)
			professors.PUT("/:id", ctrl.Professor.UpdateProfessor)
			professors.DELETE("/:id", ctrl.Professor.DeleteProfessor)
		}

		courses := admin.Group("/courses")
		{
			courses.GET("", ctrl.Course.ListCourses)
			courses.POST("", ctrl.Course.CreateCourse)
			courses.GET("/:id", ctrl.Course.GetCourse)
			courses.PUT("/:id", ctrl.Course.UpdateCourse)
			courses.DELETE("/:id", ctrl.Course.DeleteCourse)
		}

		subjects := admin.Group("/subjects")
		{
			subjects.GET("", ctrl.Subject.GetAllSubjects)
			subjects.POST("", ctrl.Subject.CreateSubject)
			subjects.GET("/:id", ctrl.Subject.GetSubject)
			subjects.PUT("/:id", ctrl.Subject.UpdateSubject)
			subjects.DELETE("/:id", ctrl.Subject.DeleteSubject)
		}

		admin.GET("/reports/intelligence", ctrl.Report.Intelligence)
	}

	// --- Student routes ---
	student := authenticated.Group("/student")
	student.Use(authMiddleware.RoleRequired(models.RoleStudent))
	{
		student.GET("/courses", ctrl.Enrollment.GetMyCourses)
		student.GET("/profile", ctrl.Profile.GetProfile)
		student.PUT("/profile", ctrl.Profile.UpdateProfile)
	}
}
