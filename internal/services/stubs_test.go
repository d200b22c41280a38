package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/skillswap/internal/apperrors"
	"github.com/joshua-takyi/skillswap/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*models.Profile
	order    []uuid.UUID
	err      error
}

func newStubProfileRepo(profiles ...*models.Profile) *stubProfileRepo {
	r := &stubProfileRepo{profiles: make(map[uuid.UUID]*models.Profile)}
	for _, p := range profiles {
		r.profiles[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r
}

func (r *stubProfileRepo) CreateProfile(ctx context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.profiles[profile.ID]; ok {
		return apperrors.New(apperrors.CodeValidation, "profile already exists")
	}
	r.profiles[profile.ID] = profile
	r.order = append(r.order, profile.ID)
	return nil
}

func (r *stubProfileRepo) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.profiles[id]
	if !ok {
		return nil, apperrors.Newf(apperrors.CodeNotFound, "profile %s not found", id)
	}
	cp := *p
	return &cp, nil
}

func (r *stubProfileRepo) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*models.Profile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.profiles[id])
	}
	return out, nil
}

func (r *stubProfileRepo) UpdateProfile(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.profiles[id]
	if !ok {
		return nil, apperrors.Newf(apperrors.CodeNotFound, "profile %s not found", id)
	}
	for k, v := range fields {
		switch k {
		case "location":
			p.Location = v.(string)
		case "availability":
			p.Availability = v.(string)
		case "skills_offered":
			p.SkillsOffered = v.([]string)
		case "skills_wanted":
			p.SkillsWanted = v.([]string)
		case "is_public":
			public := v.(bool)
			p.IsPublic = &public
		case "banned":
			p.Banned = v.(bool)
		case "photo_url":
			p.PhotoURL = v.(string)
		case "updated_at":
			p.UpdatedAt = v.(time.Time)
		default:
			return nil, errors.New("unexpected column " + k)
		}
	}
	cp := *p
	return &cp, nil
}

// stubSwapRepo applies the same conditional semantics as the Mongo repo.
type stubSwapRepo struct {
	mu      sync.Mutex
	swaps   map[primitive.ObjectID]*models.SwapRequest
	err     error
	listErr error
	// beforeWrite runs inside conditional writes, before the condition is checked.
	beforeWrite func(s *models.SwapRequest)
}

func newStubSwapRepo() *stubSwapRepo {
	return &stubSwapRepo{swaps: make(map[primitive.ObjectID]*models.SwapRequest)}
}

func (r *stubSwapRepo) put(s *models.SwapRequest) *models.SwapRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = s.BeforeCreate()
	r.swaps[s.ID] = s
	return s
}

func (r *stubSwapRepo) CreateSwap(ctx context.Context, swap *models.SwapRequest) (*models.SwapRequest, error) {
	if r.err != nil {
		return nil, r.err
	}
	if err := models.Validate.Struct(swap); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeValidation, "invalid swap")
	}
	cp := *swap
	r.put(&cp)
	return &cp, nil
}

func (r *stubSwapRepo) GetSwap(ctx context.Context, id primitive.ObjectID) (*models.SwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.swaps[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "swap not found")
	}
	cp := *s
	return &cp, nil
}

func (r *stubSwapRepo) sorted(keep func(*models.SwapRequest) bool) []*models.SwapRequest {
	out := make([]*models.SwapRequest, 0)
	for _, s := range r.swaps {
		if keep(s) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *stubSwapRepo) ListSwapsWhere(ctx context.Context, field, value string) ([]*models.SwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.sorted(func(s *models.SwapRequest) bool {
		switch field {
		case models.SwapFieldFromUser:
			return s.FromUserID == value
		case models.SwapFieldToUser:
			return s.ToUserID == value
		case models.SwapFieldStatus:
			return string(s.Status) == value
		}
		return false
	}), nil
}

func (r *stubSwapRepo) ListSwaps(ctx context.Context) ([]*models.SwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.sorted(func(*models.SwapRequest) bool { return true }), nil
}

func (r *stubSwapRepo) conditional(id primitive.ObjectID, ok func(*models.SwapRequest) bool, apply func(*models.SwapRequest)) (*models.SwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, found := r.swaps[id]
	if found && r.beforeWrite != nil {
		r.beforeWrite(s)
	}
	if !found || !ok(s) {
		return nil, apperrors.New(apperrors.CodeInvalidTransition, "swap changed concurrently")
	}
	apply(s)
	s.UpdatedAt = time.Now().UTC()
	cp := *s
	return &cp, nil
}

func (r *stubSwapRepo) TransitionSwap(ctx context.Context, id primitive.ObjectID, from, to models.SwapStatus) (*models.SwapRequest, error) {
	return r.conditional(id,
		func(s *models.SwapRequest) bool { return s.Status == from },
		func(s *models.SwapRequest) { s.Status = to },
	)
}

func (r *stubSwapRepo) AttachSwapFeedback(ctx context.Context, id primitive.ObjectID, rating int, feedback string) (*models.SwapRequest, error) {
	return r.conditional(id,
		func(s *models.SwapRequest) bool { return s.Status == models.SwapAccepted && s.Rating == nil },
		func(s *models.SwapRequest) {
			s.Rating = &rating
			s.Feedback = &feedback
		},
	)
}

func (r *stubSwapRepo) DeletePendingSwap(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.swaps[id]
	if ok && r.beforeWrite != nil {
		r.beforeWrite(s)
	}
	if !ok || s.Status != models.SwapPending {
		return apperrors.New(apperrors.CodeInvalidTransition, "swap changed concurrently")
	}
	delete(r.swaps, id)
	return nil
}

func (r *stubSwapRepo) EnsureSwapIndexes(ctx context.Context) error { return nil }

func (r *stubSwapRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.swaps)
}

type stubAuthRepo struct {
	signedUp  map[string]uuid.UUID
	signUpErr error
	session   *models.Session
	signInErr error
	signedOut []string
}

func (a *stubAuthRepo) SignUp(ctx context.Context, email, password, name string) (uuid.UUID, error) {
	if a.signUpErr != nil {
		return uuid.Nil, a.signUpErr
	}
	if a.signedUp == nil {
		a.signedUp = make(map[string]uuid.UUID)
	}
	if _, ok := a.signedUp[email]; ok {
		return uuid.Nil, apperrors.New(apperrors.CodeValidation, "email already in use")
	}
	id := uuid.New()
	a.signedUp[email] = id
	return id, nil
}

func (a *stubAuthRepo) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	if a.signInErr != nil {
		return nil, a.signInErr
	}
	return a.session, nil
}

func (a *stubAuthRepo) Refresh(ctx context.Context, refreshToken string) (*models.Session, error) {
	if a.signInErr != nil {
		return nil, a.signInErr
	}
	return a.session, nil
}

func (a *stubAuthRepo) SignOut(ctx context.Context, accessToken string) error {
	a.signedOut = append(a.signedOut, accessToken)
	return nil
}

type stubPhotoStore struct {
	uploaded map[string][]byte
	deleted  []string
	err      error
}

func (s *stubPhotoStore) UploadPhoto(ctx context.Context, key string, file io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	if s.uploaded == nil {
		s.uploaded = make(map[string][]byte)
	}
	s.uploaded[key] = data
	return "https://cdn.example.com/avatars/" + key, nil
}

func (s *stubPhotoStore) DeletePhoto(ctx context.Context, key string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, key)
	return nil
}

func newProfile(name string, public bool) *models.Profile {
	p := models.NewProfile(uuid.New(), name+"@example.com", name)
	p.IsPublic = &public
	return p
}
