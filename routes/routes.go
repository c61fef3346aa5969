package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hostel-backend/controllers"
	"hostel-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controller instances into the route tree. Mutating
// admin routes sit behind the JWT middleware; the deadline-check POST is
// guarded by its own bearer token so the external scheduler can call it.
func SetupRouter(
	ac *controllers.AuthController,
	hc *controllers.HostelController,
	rc *controllers.RoomController,
	alc *controllers.AllocationController,
	pc *controllers.PaymentController,
	sc *controllers.SettingsController,
	stc *controllers.StudentController,
	apc *controllers.ApplicationController,
	dc *controllers.DeadlineController,
	pub *controllers.PublishController,
	ec *controllers.ExportController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())
	r.Static("/public", "./public")

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", ac.Login)
		}

		hostels := api.Group("/hostels")
		{
			hostels.GET("", hc.GetHostels)
			hostels.GET("/:id", hc.GetHostelByID)

			admin := hostels.Group("", middleware.AdminRequired())
			{
				admin.POST("", hc.CreateHostel)
				admin.PUT("/:id", hc.UpdateHostel)
				admin.DELETE("/:id", hc.DeleteHostel)
				admin.POST("/:id/floors", hc.AddFloor)
				admin.DELETE("/:id/floors/:floorId", hc.RemoveFloor)
				admin.POST("/:id/floors/:floorId/rooms", hc.AddRoom)
				admin.POST("/:id/floors/:floorId/rooms/range", hc.AddRoomsInRange)
				admin.DELETE("/:id/rooms/:roomId", hc.RemoveRoom)
			}
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("/available", rc.GetAvailableRooms)
			rooms.POST("/:roomId/reserve", middleware.AdminRequired(), rc.ReserveRoom)
			rooms.POST("/:roomId/unreserve", middleware.AdminRequired(), rc.UnreserveRoom)
		}

		allocations := api.Group("/allocations")
		{
			allocations.POST("", alc.AllocateRoom)
			allocations.GET("", alc.GetAllocations)
			allocations.GET("/:id", alc.GetAllocationByID)
			allocations.GET("/:id/room-details", alc.GetAllocationRoomDetails)
			allocations.DELETE("/:id", alc.RevokeAllocation)
			allocations.POST("/:id/transfer", middleware.AdminRequired(), alc.TransferAllocation)
			allocations.POST("/remove-occupant", middleware.AdminRequired(), alc.RemoveOccupant)
		}

		payments := api.Group("/payments")
		{
			payments.POST("", pc.SubmitPayment)
			payments.GET("", pc.GetPayments)
			payments.GET("/pending", pc.GetPendingPayments)
			payments.GET("/allocation/:allocationId", pc.GetAllocationPayment)
			payments.GET("/student/:regNumber", pc.GetStudentPayments)
			payments.GET("/:id", pc.GetPaymentByID)
			payments.PUT("/:id", pc.UpdatePayment)
			payments.POST("/:id/attachments", pc.UploadReceipt)

			admin := payments.Group("", middleware.AdminRequired())
			{
				admin.POST("/admin", pc.AddAdminPayment)
				admin.POST("/:id/approve", pc.ApprovePayment)
				admin.POST("/:id/reject", pc.RejectPayment)
				admin.DELETE("/:id", pc.DeletePayment)
			}
		}

		settings := api.Group("/settings")
		{
			settings.GET("", sc.GetSettings)
			settings.PUT("", middleware.AdminRequired(), sc.UpdateSettings)
		}

		students := api.Group("/students")
		{
			students.GET("", stc.GetStudents)
			students.GET("/stats", stc.GetStudentStats)
			students.GET("/:regNumber", stc.GetStudentByRegNumber)
		}

		applications := api.Group("/applications")
		{
			applications.GET("", apc.GetApplications)
			applications.PUT("/:regNumber/status", middleware.AdminRequired(), apc.UpdateApplicationStatus)
		}

		api.POST("/published-lists", middleware.AdminRequired(), pub.PublishLists)
		api.GET("/exports/allocations", middleware.AdminRequired(), ec.ExportAllocations)
		api.GET("/reports/payment-status/:regNumber", pc.GetDerivedStatus)

		api.GET("/check-payment-deadlines", dc.GetDeadlineStatus)
		api.POST("/check-payment-deadlines", middleware.PaymentCheckAuth(), dc.RunDeadlineCheck)
	}

	return r
}
