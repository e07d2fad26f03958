package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/relieflink/donations-api/docs"
	v1 "github.com/relieflink/donations-api/internal/api/handler/v1"
	"github.com/relieflink/donations-api/internal/api/middleware"
	"github.com/relieflink/donations-api/internal/config"
	"github.com/relieflink/donations-api/internal/repository"
	"github.com/relieflink/donations-api/internal/repository/dao"
	"github.com/relieflink/donations-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	campaignHandler := s.initCampaignHandler(db)
	donationHandler := s.initDonationHandler(db)
	statsHandler := s.initStatsHandler(db)
	s.MountHandlers(authHandler, userHandler, campaignHandler, donationHandler, statsHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initCampaignHandler(db *gorm.DB) *v1.CampaignHandler {
	campaignDAO := dao.NewCampaignDAO(db)
	repo := repository.NewCampaignRepository(campaignDAO)
	svc := service.NewCampaignService(repo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewCampaignHandler(svc, uSvc)

	return handler
}

func (s *Server) initDonationHandler(db *gorm.DB) *v1.DonationHandler {
	donationDAO := dao.NewDonationDAO(db)
	repo := repository.NewDonationRepository(donationDAO)
	campaignRepo := repository.NewCampaignRepository(dao.NewCampaignDAO(db))
	svc := service.NewDonationService(repo, campaignRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewDonationHandler(svc, uSvc)

	return handler
}

func (s *Server) initStatsHandler(db *gorm.DB) *v1.StatsHandler {
	donationDAO := dao.NewDonationDAO(db)
	repo := repository.NewDonationRepository(donationDAO)
	campaignRepo := repository.NewCampaignRepository(dao.NewCampaignDAO(db))
	svc := service.NewDonationService(repo, campaignRepo)
	handler := v1.NewStatsHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	campaignHandler *v1.CampaignHandler,
	donationHandler *v1.DonationHandler,
	statsHandler *v1.StatsHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)

		public.GET("/campaigns", campaignHandler.HandleListCampaigns)
		public.GET("/donations", donationHandler.HandleListDonations)
		public.GET("/donations/top-donors", donationHandler.HandleTopDonors)
		public.GET("/stats", statsHandler.HandleGetStats)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/:userID", userHandler.HandleGetUser)

		authed.POST("/campaigns", campaignHandler.HandleCreateCampaign)
		authed.POST("/campaigns/:campaignID", campaignHandler.HandleUpdateCampaign)
		authed.DELETE("/campaigns/:campaignID", campaignHandler.HandleDeleteCampaign)

		authed.POST("/donations", donationHandler.HandleCreateDonation)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Relief donations API"
	docs.SwaggerInfo.Description = "Donation ledger and campaign aggregation API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
