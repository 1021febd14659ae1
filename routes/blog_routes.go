package routes

import (
	"github.com/anjiri1684/car_rental/handlers"
	"github.com/anjiri1684/car_rental/middleware"
	"github.com/gofiber/fiber/v2"
)

func BlogRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	blogs := api.Group("/blogs")
	blogs.Get("", handlers.GetBlogs)
	blogs.Get("/:blogId", handlers.ViewBlog)
	blogs.Post("", middleware.Protected(), middleware.AdminRequired(), handlers.CreateBlog)
	blogs.Post("/:blogId/comments", middleware.Protected(), handlers.CommentOnBlog)
	blogs.Patch("/comments/:commentId", middleware.Protected(), handlers.UpdateComment)
}
