package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-booking/controllers"
	"hotel-booking/middleware"
	"hotel-booking/utils"
)

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		if origin != "" {
			out = append(out, origin)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// SetupRouter wires every controller under /api.
func SetupRouter(
	ac *controllers.AuthController,
	bc *controllers.BookingController,
	rc *controllers.RoomController,
	pc *controllers.PaymentController,
	wc *controllers.WishlistController,
	rvc *controllers.ReviewController,
	corsOrigins []string,
) *gin.Engine {
	utils.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := normalizeOrigins(corsOrigins)
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
		ExposeHeaders:    []string{"Content-Length"},
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
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
			auth.POST("/change-password", ac.ChangePassword)
			auth.PUT("/update-profile", ac.UpdateProfile)
			auth.GET("/users", ac.GetUsers)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBooking)
			bookings.PUT("/:id", bc.UpdateBooking)
			bookings.POST("/:id/cancel", bc.CancelBooking)
			bookings.DELETE("/:id", bc.DeleteBooking)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.POST("", rc.CreateRoom)
			rooms.GET("/:id", rc.GetRoom)
		}

		payments := api.Group("/payments")
		{
			payments.GET("/methods", pc.GetMethods)
			payments.POST("", pc.RecordPayment)
		}

		wishlist := api.Group("/wishlist")
		{
			wishlist.POST("", wc.AddToWishlist)
			wishlist.GET("/:userId", wc.GetWishlist)
		}

		reviews := api.Group("/reviews")
		{
			reviews.POST("", rvc.CreateReview)
			reviews.GET("/:roomId", rvc.GetReviews)
		}
	}

	return r
}
