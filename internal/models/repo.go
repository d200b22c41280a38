package models

import (
	"context"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

// ProfileRepo is the profile store.
type ProfileRepo interface {
	CreateProfile(ctx context.Context, profile *Profile) error
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	ListProfiles(ctx context.Context) ([]*Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*Profile, error)
}

// AuthRepo is the identity provider.
type AuthRepo interface {
	SignUp(ctx context.Context, email, password, name string) (uuid.UUID, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// SwapRepo is the swap record store. The mutating methods are conditional on
// the state the caller checked, so a lost race surfaces as a failed
// transition instead of an overwrite.
type SwapRepo interface {
	CreateSwap(ctx context.Context, swap *SwapRequest) (*SwapRequest, error)
	GetSwap(ctx context.Context, id primitive.ObjectID) (*SwapRequest, error)
	ListSwapsWhere(ctx context.Context, field, value string) ([]*SwapRequest, error)
	ListSwaps(ctx context.Context) ([]*SwapRequest, error)
	TransitionSwap(ctx context.Context, id primitive.ObjectID, from, to SwapStatus) (*SwapRequest, error)
	AttachSwapFeedback(ctx context.Context, id primitive.ObjectID, rating int, feedback string) (*SwapRequest, error)
	DeletePendingSwap(ctx context.Context, id primitive.ObjectID) error
	EnsureSwapIndexes(ctx context.Context) error
}

// PhotoStore keeps profile photos.
type PhotoStore interface {
	UploadPhoto(ctx context.Context, key string, file io.Reader) (string, error)
	DeletePhoto(ctx context.Context, key string) error
}

type Session struct {
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresIn    int       `json:"expires_in"`
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
}

type accessTokenKey struct{}

// WithAccessToken attaches the caller's token so profile queries run under
// the caller's row-level security policies.
func WithAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, accessTokenKey{}, token)
}

func AccessTokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenKey{}).(string)
	return token
}

type SupabaseRepo struct {
	supabaseClient *supabase.Client
	url            string
	key            string
}

func SupabaseNewRepo(supabaseClient *supabase.Client, url, key string) *SupabaseRepo {
	return &SupabaseRepo{
		supabaseClient: supabaseClient,
		url:            url,
		key:            key,
	}
}

// GetAuthenticatedClient returns a Supabase client with the given access token
func (su *SupabaseRepo) GetAuthenticatedClient(accessToken string) (*supabase.Client, error) {
	if su.url == "" || su.key == "" {
		return su.supabaseClient, nil
	}

	options := &supabase.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + accessToken,
		},
	}

	return supabase.NewClient(su.url, su.key, options)
}

func (su *SupabaseRepo) clientFor(ctx context.Context) (*supabase.Client, error) {
	token := AccessTokenFrom(ctx)
	if token == "" {
		return su.supabaseClient, nil
	}
	client, err := su.GetAuthenticatedClient(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}
	return client, nil
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) GetCollection(colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(mdb.dbName).Collection(colName), nil
}
