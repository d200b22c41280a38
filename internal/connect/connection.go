package connect

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/skillswap/internal/config"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// Clients holds the connections to the backing services. Cloudinary is nil
// when it is not configured.
type Clients struct {
	Supabase   *supabase.Client
	MongoDB    *mongo.Client
	Cloudinary *cloudinary.Cloudinary
}

// supabase init
func InitSupabase(cfg *config.Config) (*supabase.Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}
	return client, nil
}

// mongoURI fills the <password> placeholder used in Atlas connection strings.
func mongoURI(uri, password string) string {
	if password == "" {
		return uri
	}
	return strings.Replace(uri, "<password>", password, 1)
}

func MongoDBConnect(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(mongoURI(cfg.MongoDBURI, cfg.MongoDBPassword)).
		SetAppName("skillswap")

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

func CloudinaryCredentials(cfg *config.Config) (*cloudinary.Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return cld, nil
}

// Open connects every configured backing service.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Clients, error) {
	supa, err := InitSupabase(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to Supabase successfully")

	mongoClient, err := MongoDBConnect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to MongoDB successfully", zap.String("database", cfg.MongoDBDatabase))

	clients := &Clients{Supabase: supa, MongoDB: mongoClient}

	if !cfg.HasCloudinary() {
		logger.Warn("Cloudinary is not configured, photo uploads are disabled")
		return clients, nil
	}
	cld, err := CloudinaryCredentials(cfg)
	if err != nil {
		_ = clients.Close(ctx)
		return nil, err
	}
	clients.Cloudinary = cld
	logger.Info("Connected to Cloudinary successfully")

	return clients, nil
}

func (cl *Clients) Close(ctx context.Context) error {
	if cl.MongoDB == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := cl.MongoDB.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %w", err)
	}
	cl.MongoDB = nil
	return nil
}
