package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/joshua-takyi/skillswap/internal/apperrors"
	"github.com/joshua-takyi/skillswap/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	StatusFilterAll   = "all"
	maxFeedbackLength = 1000
)

// SwapEventFunc is notified after every successful lifecycle mutation with
// one of "created", "accepted", "rejected", "deleted" or "rated".
type SwapEventFunc func(event string)

type SwapService struct {
	swapRepo    models.SwapRepo
	profileRepo models.ProfileRepo
	logger      *zap.Logger
	onEvent     SwapEventFunc
}

func NewSwapService(swapRepo models.SwapRepo, profileRepo models.ProfileRepo, logger *zap.Logger) *SwapService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SwapService{
		swapRepo:    swapRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

func (ss *SwapService) SetEventRecorder(fn SwapEventFunc) {
	ss.onEvent = fn
}

func (ss *SwapService) record(event string, swap *models.SwapRequest, actor *models.Profile) {
	ss.logger.Info("swap "+event,
		zap.String("swap_id", swap.ID.Hex()),
		zap.String("actor_id", actor.ID.String()),
		zap.String("status", string(swap.Status)),
	)
	if ss.onEvent != nil {
		ss.onEvent(event)
	}
}

func parseSwapID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, apperrors.Newf(apperrors.CodeNotFound, "swap %q not found", id)
	}
	return oid, nil
}

// CreateRequest opens a pending swap from sender to the recipient. Duplicate
// pending requests between the same pair are allowed.
func (ss *SwapService) CreateRequest(ctx context.Context, sender *models.Profile, recipientID uuid.UUID) (*models.SwapRequest, error) {
	if sender == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if recipientID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeInvalidTarget, "recipient does not exist")
	}
	if recipientID == sender.ID {
		return nil, apperrors.New(apperrors.CodeInvalidTarget, "cannot request a swap with yourself")
	}

	recipient, err := ss.profileRepo.GetProfile(ctx, recipientID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.New(apperrors.CodeInvalidTarget, "recipient does not exist")
	}
	if err != nil {
		return nil, err
	}
	if !recipient.Public() {
		return nil, apperrors.New(apperrors.CodeInvalidTarget, "recipient profile is not public")
	}

	swap := &models.SwapRequest{
		FromUserID:   sender.ID.String(),
		ToUserID:     recipient.ID.String(),
		FromUserName: sender.Name,
		ToUserName:   recipient.Name,
		Status:       models.SwapPending,
	}

	created, err := ss.swapRepo.CreateSwap(ctx, swap)
	if err != nil {
		return nil, err
	}
	ss.record("created", created, sender)
	return created, nil
}

// GetRequest returns a single swap to one of its participants or an admin.
func (ss *SwapService) GetRequest(ctx context.Context, id string, actor *models.Profile) (*models.SwapRequest, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	oid, err := parseSwapID(id)
	if err != nil {
		return nil, err
	}
	swap, err := ss.swapRepo.GetSwap(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !swap.Involves(actor.ID.String()) && !actor.IsAdmin() {
		return nil, apperrors.New(apperrors.CodeForbidden, "not a participant of this swap")
	}
	return swap, nil
}

// SetStatus lets the recipient accept or reject a pending request.
func (ss *SwapService) SetStatus(ctx context.Context, id string, newStatus models.SwapStatus, actor *models.Profile) (*models.SwapRequest, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if newStatus != models.SwapAccepted && newStatus != models.SwapRejected {
		return nil, apperrors.Newf(apperrors.CodeInvalidTransition, "cannot move a swap to %q", newStatus)
	}

	oid, err := parseSwapID(id)
	if err != nil {
		return nil, err
	}
	swap, err := ss.swapRepo.GetSwap(ctx, oid)
	if err != nil {
		return nil, err
	}
	if swap.Status != models.SwapPending {
		return nil, apperrors.Newf(apperrors.CodeInvalidTransition, "swap is already %s", swap.Status)
	}
	if swap.ToUserID != actor.ID.String() {
		return nil, apperrors.New(apperrors.CodeInvalidTransition, "only the recipient can answer a swap request")
	}

	updated, err := ss.swapRepo.TransitionSwap(ctx, oid, models.SwapPending, newStatus)
	if err != nil {
		return nil, err
	}
	ss.record(string(newStatus), updated, actor)
	return updated, nil
}

// DeleteRequest lets the sender withdraw a request that is still pending.
func (ss *SwapService) DeleteRequest(ctx context.Context, id string, actor *models.Profile) error {
	if actor == nil {
		return apperrors.ErrUnauthenticated
	}

	oid, err := parseSwapID(id)
	if err != nil {
		return err
	}
	swap, err := ss.swapRepo.GetSwap(ctx, oid)
	if err != nil {
		return err
	}
	if swap.Status != models.SwapPending {
		return apperrors.Newf(apperrors.CodeInvalidTransition, "cannot delete a swap that is %s", swap.Status)
	}
	if swap.FromUserID != actor.ID.String() {
		return apperrors.New(apperrors.CodeInvalidTransition, "only the sender can delete a swap request")
	}

	if err := ss.swapRepo.DeletePendingSwap(ctx, oid); err != nil {
		return err
	}
	ss.record("deleted", swap, actor)
	return nil
}

// AttachFeedback records the sender's one-time rating of an accepted swap.
func (ss *SwapService) AttachFeedback(ctx context.Context, id string, actor *models.Profile, rating int, feedback string) (*models.SwapRequest, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if rating < models.MinRating || rating > models.MaxRating {
		return nil, apperrors.Newf(apperrors.CodeOutOfRange, "rating must be between %d and %d", models.MinRating, models.MaxRating)
	}
	feedback = strings.TrimSpace(feedback)
	if utf8.RuneCountInString(feedback) > maxFeedbackLength {
		return nil, apperrors.Newf(apperrors.CodeValidation, "feedback must be at most %d characters", maxFeedbackLength)
	}

	oid, err := parseSwapID(id)
	if err != nil {
		return nil, err
	}
	swap, err := ss.swapRepo.GetSwap(ctx, oid)
	if err != nil {
		return nil, err
	}
	if swap.Status != models.SwapAccepted {
		return nil, apperrors.Newf(apperrors.CodeInvalidTransition, "cannot rate a swap that is %s", swap.Status)
	}
	if swap.HasRating() {
		return nil, apperrors.New(apperrors.CodeInvalidTransition, "swap has already been rated")
	}
	if swap.FromUserID != actor.ID.String() {
		return nil, apperrors.New(apperrors.CodeInvalidTransition, "only the sender can rate a swap")
	}

	updated, err := ss.swapRepo.AttachSwapFeedback(ctx, oid, rating, feedback)
	if err != nil {
		return nil, err
	}
	ss.record("rated", updated, actor)
	return updated, nil
}

// ParseStatusFilter accepts "", "all" or a swap status.
func ParseStatusFilter(raw string) (models.SwapStatus, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == StatusFilterAll {
		return "", nil
	}
	status := models.SwapStatus(raw)
	if !status.Valid() {
		return "", apperrors.Newf(apperrors.CodeValidation, "unknown status filter %q", raw)
	}
	return status, nil
}

// LoadSwapView fetches the caller's incoming and outgoing requests
// concurrently and projects both through statusFilter. The two reads are
// independent; there is no snapshot guarantee between them.
func (ss *SwapService) LoadSwapView(ctx context.Context, caller *models.Profile, statusFilter string) (*models.SwapView, error) {
	if caller == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	status, err := ParseStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}

	callerID := caller.ID.String()
	var incoming, outgoing []*models.SwapRequest

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		incoming, err = ss.swapRepo.ListSwapsWhere(gctx, models.SwapFieldToUser, callerID)
		return err
	})
	g.Go(func() error {
		var err error
		outgoing, err = ss.swapRepo.ListSwapsWhere(gctx, models.SwapFieldFromUser, callerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.SwapView{
		Incoming: projectSwaps(incoming, status),
		Outgoing: projectSwaps(outgoing, status),
	}, nil
}

// projectSwaps drops self-addressed records and, when status is set, the
// records in any other status.
func projectSwaps(swaps []*models.SwapRequest, status models.SwapStatus) []*models.SwapRequest {
	out := make([]*models.SwapRequest, 0, len(swaps))
	for _, s := range swaps {
		if s.FromUserID == s.ToUserID {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		out = append(out, s)
	}
	return out
}
