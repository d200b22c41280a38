package container

import (
	"github.com/joshua-takyi/skillswap/internal/config"
	"github.com/joshua-takyi/skillswap/internal/connect"
	"github.com/joshua-takyi/skillswap/internal/helpers"
	"github.com/joshua-takyi/skillswap/internal/middleware"
	"github.com/joshua-takyi/skillswap/internal/models"
	"github.com/joshua-takyi/skillswap/internal/services"
	"go.uber.org/zap"
)

// Repos are the store implementations the services run on.
type Repos struct {
	Profiles models.ProfileRepo
	Auth     models.AuthRepo
	Swaps    models.SwapRepo
	Photos   models.PhotoStore
}

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	TokenValidator helpers.TokenValidator
	SwapRepo       models.SwapRepo

	AuthService    *services.AuthService
	ProfileService *services.ProfileService
	SwapService    *services.SwapService
	AdminService   *services.AdminService
}

func NewContainer(cfg *config.Config, logger *zap.Logger, validator helpers.TokenValidator, repos Repos) *Container {
	swapService := services.NewSwapService(repos.Swaps, repos.Profiles, logger.Named("swaps"))
	swapService.SetEventRecorder(middleware.RecordSwapEvent)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		TokenValidator: validator,
		SwapRepo:       repos.Swaps,
		AuthService:    services.NewAuthService(repos.Auth, repos.Profiles, logger.Named("auth")),
		ProfileService: services.NewProfileService(repos.Profiles, repos.Photos, logger.Named("profiles")),
		SwapService:    swapService,
		AdminService:   services.NewAdminService(repos.Profiles, repos.Swaps, logger.Named("admin")),
	}
}

// ReposFromClients builds the production repositories on top of the
// connected clients.
func ReposFromClients(cfg *config.Config, clients *connect.Clients) Repos {
	supa := models.SupabaseNewRepo(clients.Supabase, cfg.SupabaseURL, cfg.SupabaseAnonKey)
	mongo := models.MongodbNewRepo(clients.MongoDB, cfg.MongoDBDatabase)

	repos := Repos{
		Profiles: supa,
		Auth:     supa,
		Swaps:    mongo,
	}
	// leave the interface nil, not a typed nil, when photos are disabled
	if clients.Cloudinary != nil {
		repos.Photos = models.NewCloudinaryStore(clients.Cloudinary)
	}
	return repos
}
