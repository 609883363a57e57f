package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/vnkhanh/e-learning-backend/controllers"
	"github.com/vnkhanh/e-learning-backend/middleware"
	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/services"
	"github.com/vnkhanh/e-learning-backend/store"
	"github.com/vnkhanh/e-learning-backend/ws"
)

// Options carries what the router needs beyond the store.
type Options struct {
	Log      logrus.FieldLogger
	Hub      *ws.Hub
	Registry *prometheus.Registry
}

// SetupRouter registers every route on r. Services are built here from db.
func SetupRouter(r *gin.Engine, db *store.DB, opts Options) (*gin.Engine, error) {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.Hub == nil {
		opts.Hub = ws.NewHub(opts.Log)
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	metrics, err := middleware.NewHTTPMetrics(opts.Registry)
	if err != nil {
		return nil, err
	}
	r.Use(middleware.Logger(opts.Log), metrics.Handler())

	deps := services.Deps{DB: db, Publisher: opts.Hub, Log: opts.Log}
	contributions := services.NewContributionService(deps)

	health := controllers.NewHealthController(db, opts.Hub)
	r.GET("/", controllers.Home)
	r.GET("/health", health.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	r.GET("/ws", opts.Hub.HandleGlobal)
	r.GET("/ws/:collection", opts.Hub.HandleCollection)

	category := controllers.NewCategoryController(services.NewCategoryService(deps))
	categorias := r.Group("/categoria")
	{
		categorias.GET("", category.List)
		categorias.GET("/:id", category.Get)
		categorias.GET("/:id/basic", category.GetBasic)
		categorias.POST("", category.Create)
		categorias.PUT("/:id", category.Update)
		categorias.DELETE("/:id", category.Delete)
	}

	route := controllers.NewRouteController(services.NewRouteService(deps))
	rutas := r.Group("/rutas")
	{
		rutas.GET("", route.List)
		rutas.GET("/:id", route.Get)
		rutas.GET("/:id/basic", route.GetBasic)
		rutas.POST("", route.Create)
		rutas.PUT("/:id", route.Update)
		rutas.DELETE("/:id", route.Delete)
	}

	course := controllers.NewCourseController(services.NewCourseService(deps))
	cursos := r.Group("/cursos")
	{
		cursos.GET("", course.List)
		cursos.GET("/clases/:id", course.ClassView)
		cursos.GET("/:id", course.Get)
		cursos.GET("/:id/basic", course.GetBasic)
		cursos.POST("", course.Create)
		cursos.PUT("/:id", course.Update)
		cursos.DELETE("/:id", course.Delete)
	}

	class := controllers.NewClassController(services.NewClassService(deps))
	clases := r.Group("/clases")
	{
		clases.GET("", class.List)
		clases.GET("/:id/basic", class.GetBasic)
		clases.GET("/:id/:class", class.Get)
		clases.POST("", class.Create)
		clases.PUT("/:id", class.Update)
		clases.DELETE("/:id", class.Delete)
	}

	comment := controllers.NewCommentController(contributions)
	comentarios := r.Group("/comentarios")
	{
		comentarios.GET("", comment.List)
		comentarios.GET("/:id", comment.Get)
		comentarios.GET("/:id/basic", comment.GetBasic)
		comentarios.POST("", comment.Create)
		comentarios.PUT("/:id", comment.Update)
		comentarios.DELETE("/:id", comment.Delete)
	}

	for prefix, kind := range map[string]models.ContributionKind{
		"/blogs":      models.KindBlog,
		"/foros":      models.KindForum,
		"/tutoriales": models.KindTutorial,
	} {
		post := controllers.NewPostController(contributions, kind)
		g := r.Group(prefix)
		g.GET("", post.List)
		g.GET("/:id", post.Get)
		g.GET("/:id/basic", post.GetBasic)
		g.POST("", post.Create)
		g.PUT("/:id", post.Update)
		g.DELETE("/:id", post.Delete)
	}

	teacher := controllers.NewTeacherController(services.NewTeacherService(deps))
	profesores := r.Group("/profesores")
	{
		profesores.GET("", teacher.List)
		profesores.GET("/:id", teacher.Get)
	}

	return r, nil
}
